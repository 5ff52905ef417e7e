package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thebtf/promptdeck/internal/history"
	"github.com/thebtf/promptdeck/pkg/models"
)

func newHistoryCmd(opts *globalOptions) *cobra.Command {
	var (
		window   string
		category string
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "history [query]",
		Short: "Show prompt history",
		Long: `Show recorded prompts, newest first.

A query matches the topic or any suggestion, ignoring case.

Examples:
  promptdeck history
  promptdeck history rocket --window week
  promptdeck history --category programming --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := history.ParseWindow(window)
			if err != nil {
				return err
			}
			q := history.Query{Window: w, Limit: limit}
			if len(args) > 0 {
				q.Text = args[0]
			}
			if category != "" && category != "all" {
				c, ok := models.ParseCategory(category)
				if !ok {
					return fmt.Errorf("unknown category %q", category)
				}
				q.Category = c
			}

			sess, err := opts.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			records := sess.engine.Filter(sess.list, q)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No prompts found.")
				return nil
			}
			printRecords(out, records)
			fmt.Fprintf(out, "\nShowing %d of %d prompt(s)\n", len(records), len(sess.list))
			return nil
		},
	}

	cmd.Flags().StringVar(&window, "window", "all", "Time window: all, today, week or month")
	cmd.Flags().StringVar(&category, "category", "", "Only show one category")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of prompts to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print records as JSON")

	cmd.AddCommand(newHistoryRemoveCmd(opts), newHistoryClearCmd(opts))
	return cmd
}

func newHistoryRemoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove one prompt from history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[0])
			}

			sess, err := opts.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			rec, ok := history.Find(sess.list, id)
			if !ok {
				return fmt.Errorf("no prompt with id %d", id)
			}
			if _, err := sess.engine.Delete(cmd.Context(), sess.list, id); err != nil {
				return fmt.Errorf("remove prompt: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d (%s)\n", id, rec.Text)
			return nil
		},
	}
}

func newHistoryClearCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every prompt from history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := opts.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			n := len(sess.list)
			if _, err := sess.engine.Clear(cmd.Context(), sess.list); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d prompt(s)\n", n)
			return nil
		},
	}
}

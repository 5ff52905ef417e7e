package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thebtf/promptdeck/internal/catalog"
	"github.com/thebtf/promptdeck/pkg/models"
)

func newCatalogCmd(opts *globalOptions) *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "catalog [query]",
		Short: "Browse the sample prompt catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" && category != "all" {
				if _, ok := models.ParseCategory(category); !ok {
					return fmt.Errorf("unknown category %q", category)
				}
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			reg, err := catalog.Load(cfg.CatalogPath)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			records := reg.Search(time.Now(), query, category)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No samples found.")
				return nil
			}
			printRecords(out, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "all", "Only show one category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print samples as JSON")
	return cmd
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thebtf/promptdeck/internal/suggest"
	"github.com/thebtf/promptdeck/pkg/models"
)

type generateResult struct {
	ID            int64           `json:"id,omitempty"`
	Text          string          `json:"text"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	Family        suggest.Family  `json:"family"`
	Category      models.Category `json:"category"`
	CategoryLabel string          `json:"categoryLabel"`
	Suggestions   []string        `json:"suggestions"`
	Tokens        []int           `json:"tokens,omitempty"`
}

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var (
		noSave bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate <topic...>",
		Short: "Generate five prompt suggestions for a topic",
		Long: `Generate five creative prompt suggestions for a topic, classify the
topic and record it in history.

Examples:
  promptdeck generate space exploration
  promptdeck generate --no-save "learn python"
  promptdeck generate --json digital art`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("topic is empty")
			}

			sess, err := opts.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer sess.Close()

			p := sess.engine.Preview(text)
			res := generateResult{
				Text:          text,
				Family:        p.Family,
				Category:      p.Category,
				CategoryLabel: p.Category.Label(),
				Suggestions:   p.Suggestions,
			}

			if !noSave {
				_, rec, err := sess.engine.Submit(cmd.Context(), sess.list, text)
				if err != nil {
					return fmt.Errorf("save prompt: %w", err)
				}
				res.ID = rec.ID
				res.CreatedAt = rec.CreatedAt
				res.Suggestions = rec.Suggestions
				res.Category = rec.Category
				res.CategoryLabel = rec.Category.Label()
			}
			res.Tokens = tokenCounts(res.Suggestions)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}

			fmt.Fprintf(out, "%s  [%s]\n", res.Text, res.CategoryLabel)
			printSuggestions(out, res.Suggestions, res.Tokens)
			if res.ID != 0 {
				fmt.Fprintf(out, "Saved as #%d\n", res.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record the prompt in history")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

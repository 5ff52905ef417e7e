package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thebtf/promptdeck/internal/classify"
	"github.com/thebtf/promptdeck/pkg/models"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List prompt categories and the keywords that select them",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			keywords := make(map[models.Category][]string)
			for _, r := range classify.Rules() {
				keywords[r.Category] = r.Keywords
			}

			out := cmd.OutOrStdout()
			for _, c := range models.Categories {
				kw := "(default)"
				if k, ok := keywords[c.Value]; ok {
					kw = strings.Join(k, ", ")
				}
				fmt.Fprintf(out, "%-18s %-18s %s\n", c.Value, c.Label, kw)
			}
		},
	}
}

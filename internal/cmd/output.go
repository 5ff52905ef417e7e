package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/promptdeck/internal/suggest"
	"github.com/thebtf/promptdeck/pkg/models"
)

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSuggestions writes a numbered list, with token estimates when known.
func printSuggestions(w io.Writer, suggestions []string, tokens []int) {
	for i, s := range suggestions {
		if i < len(tokens) {
			fmt.Fprintf(w, "  %d. %s (%d tokens)\n", i+1, s, tokens[i])
			continue
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, s)
	}
}

func printRecords(w io.Writer, list models.HistoryList) {
	for _, r := range list {
		fmt.Fprintf(w, "#%d  %s  [%s]  %s\n", r.ID, r.CreatedAt, r.Category.Label(), r.Text)
		printSuggestions(w, r.Suggestions, nil)
	}
}

func tokenCounts(suggestions []string) []int {
	counts, err := suggest.TokenCounts(suggestions)
	if err != nil {
		log.Debug().Err(err).Msg("Token counting unavailable")
		return nil
	}
	return counts
}

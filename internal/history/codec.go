package history

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/promptdeck/pkg/models"
)

// errMalformed marks slot contents that do not decode to a valid history.
var errMalformed = errors.New("malformed history")

// storedRecord is the slot representation. Category is optional in
// older data and normalized on decode.
type storedRecord struct {
	Category    *string  `json:"category,omitempty"`
	Text        string   `json:"text"`
	CreatedAt   string   `json:"createdAt"`
	Suggestions []string `json:"suggestions"`
	ID          int64    `json:"id"`
}

// Encode serializes list as a JSON array. A nil list encodes as [].
// Strings must be valid UTF-8: invalid bytes are written as U+FFFD and do
// not decode back to the original text.
func Encode(list models.HistoryList) ([]byte, error) {
	if list == nil {
		list = models.HistoryList{}
	}
	return json.Marshal(list)
}

// Decode parses slot contents. Empty input decodes to an empty list.
// Any record without a positive id, with empty text, or without exactly
// five suggestions makes the whole value malformed.
func Decode(data []byte) (models.HistoryList, error) {
	if len(data) == 0 {
		return models.HistoryList{}, nil
	}

	var stored []storedRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if stored == nil {
		// literal null
		return nil, fmt.Errorf("%w: not an array", errMalformed)
	}

	list := make(models.HistoryList, 0, len(stored))
	seen := make(map[int64]struct{}, len(stored))
	for i, s := range stored {
		if s.ID <= 0 || s.Text == "" || len(s.Suggestions) != models.SuggestionCount {
			return nil, fmt.Errorf("%w: record %d is incomplete", errMalformed, i)
		}
		if _, dup := seen[s.ID]; dup {
			log.Warn().Int64("id", s.ID).Msg("Dropping duplicate history record")
			continue
		}
		seen[s.ID] = struct{}{}

		category := models.CategoryGeneral
		if s.Category != nil {
			c, ok := models.ParseCategory(*s.Category)
			if !ok {
				log.Debug().Str("category", *s.Category).Int64("id", s.ID).Msg("Unknown category, using general")
			}
			category = c
		}

		list = append(list, models.PromptRecord{
			ID:          s.ID,
			Text:        s.Text,
			CreatedAt:   s.CreatedAt,
			Suggestions: s.Suggestions,
			Category:    category,
		})
	}
	return list, nil
}

// countRecords returns the number of array elements in data, or -1 when
// data is not a JSON array.
func countRecords(data []byte) int {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return -1
	}
	return len(raw)
}

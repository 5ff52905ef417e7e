// Package models contains domain models for promptdeck.
package models

import (
	"strings"
	"time"
)

// SuggestionCount is the number of suggestions attached to every prompt record.
const SuggestionCount = 5

// TimestampLayout is the ISO-8601 layout used for CreatedAt (millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// PromptRecord is one generated prompt event.
// Records are created once and never edited; only delete and clear remove them.
type PromptRecord struct {
	ID          int64    `json:"id"`
	Text        string   `json:"text"`
	CreatedAt   string   `json:"createdAt"`
	Suggestions []string `json:"suggestions"`
	Category    Category `json:"category"`
}

// NewPromptRecord builds a record stamped with the given creation time.
func NewPromptRecord(id int64, text string, suggestions []string, category Category, createdAt time.Time) PromptRecord {
	s := make([]string, len(suggestions))
	copy(s, suggestions)
	return PromptRecord{
		ID:          id,
		Text:        text,
		CreatedAt:   FormatTimestamp(createdAt),
		Suggestions: s,
		Category:    category,
	}
}

// CreatedTime parses CreatedAt.
func (r PromptRecord) CreatedTime() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, r.CreatedAt)
}

// Matches reports whether query occurs, case-insensitively, in the text or any suggestion.
// An empty query matches everything.
func (r PromptRecord) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Text), q) {
		return true
	}
	for _, s := range r.Suggestions {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// HistoryList is an ordered list of prompt records, newest first.
type HistoryList []PromptRecord

// IDs returns the record ids in list order.
func (l HistoryList) IDs() []int64 {
	ids := make([]int64, len(l))
	for i, r := range l {
		ids[i] = r.ID
	}
	return ids
}

// MaxID returns the largest id in the list, or 0 for an empty list.
func (l HistoryList) MaxID() int64 {
	var max int64
	for _, r := range l {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}

// FormatTimestamp renders t in TimestampLayout, always in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

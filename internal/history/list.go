// Package history owns the prompt history list and its persistence.
//
// Callers hold the current HistoryList and pass it into every operation;
// nothing here keeps an ambient copy.
package history

import "github.com/thebtf/promptdeck/pkg/models"

// Add returns a new list with rec prepended. An older record with the same id
// is dropped so ids stay unique.
func Add(list models.HistoryList, rec models.PromptRecord) models.HistoryList {
	out := make(models.HistoryList, 0, len(list)+1)
	out = append(out, rec)
	for _, r := range list {
		if r.ID != rec.ID {
			out = append(out, r)
		}
	}
	return out
}

// Remove returns a new list without the record matching id.
// A missing id is not an error; the result equals the input.
func Remove(list models.HistoryList, id int64) models.HistoryList {
	out := make(models.HistoryList, 0, len(list))
	for _, r := range list {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// Clear returns an empty list.
func Clear() models.HistoryList {
	return models.HistoryList{}
}

// Find returns the record with the given id.
func Find(list models.HistoryList, id int64) (models.PromptRecord, bool) {
	for _, r := range list {
		if r.ID == id {
			return r, true
		}
	}
	return models.PromptRecord{}, false
}

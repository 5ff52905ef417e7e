package history

import (
	"fmt"
	"time"

	"github.com/thebtf/promptdeck/pkg/models"
)

// Window restricts history to records created within a trailing period.
type Window string

const (
	WindowAll   Window = "all"
	WindowToday Window = "today"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// ParseWindow validates a window name; empty means WindowAll.
func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case "":
		return WindowAll, nil
	case WindowAll, WindowToday, WindowWeek, WindowMonth:
		return w, nil
	default:
		return "", fmt.Errorf("unknown time window %q (want all, today, week or month)", s)
	}
}

// Span returns the trailing duration covered by w; zero for WindowAll.
func (w Window) Span() time.Duration {
	switch w {
	case WindowToday:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	case WindowMonth:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// Query selects a subset of history.
type Query struct {
	Text     string          // case-insensitive substring of text or any suggestion
	Window   Window          // empty or WindowAll disables
	Category models.Category // empty disables
	Limit    int             // <= 0 disables
}

// Filter returns the records matching q in list order. Records whose
// createdAt cannot be parsed are excluded by any bounded window.
func Filter(list models.HistoryList, q Query, now time.Time) models.HistoryList {
	var cutoff time.Time
	span := q.Window.Span()
	if span > 0 {
		cutoff = now.Add(-span)
	}

	out := make(models.HistoryList, 0, len(list))
	for _, r := range list {
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		if !r.Matches(q.Text) {
			continue
		}
		if q.Category != "" && r.Category != q.Category {
			continue
		}
		if span > 0 {
			created, err := r.CreatedTime()
			if err != nil || created.Before(cutoff) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

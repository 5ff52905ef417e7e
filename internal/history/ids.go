package history

import (
	"sync"
	"time"

	"github.com/thebtf/promptdeck/pkg/models"
)

// IDGenerator hands out strictly increasing record ids. Ids track wall-clock
// milliseconds but never repeat, even for records created within one tick.
type IDGenerator struct {
	now  func() time.Time
	last int64
	mu   sync.Mutex
}

// NewIDGenerator creates a generator; a nil clock uses time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a new id greater than every id returned or observed before.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe advances the generator past every id in list, so ids stay unique
// against history written by earlier runs or other processes.
func (g *IDGenerator) Observe(list models.HistoryList) {
	maxID := list.MaxID()
	g.mu.Lock()
	if maxID > g.last {
		g.last = maxID
	}
	g.mu.Unlock()
}

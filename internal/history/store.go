package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/thebtf/promptdeck/internal/slot"
	"github.com/thebtf/promptdeck/pkg/models"
)

// DefaultSlotName is the slot holding the serialized history.
const DefaultSlotName = "promptHistory"

// Store persists HistoryLists to a single slot. Every mutating call writes
// the full list before returning; on a failed write the input list is
// returned unchanged together with the error.
type Store struct {
	slot slot.Slot
	name string
	mu   sync.Mutex
}

// NewStore creates a Store over the named slot.
func NewStore(s slot.Slot, name string) *Store {
	if name == "" {
		name = DefaultSlotName
	}
	return &Store{slot: s, name: name}
}

// SlotName returns the slot the store reads and writes.
func (s *Store) SlotName() string {
	return s.name
}

// Load reads the slot. Absent or malformed contents yield an empty list and
// no error; only backend failures are reported.
func (s *Store) Load(ctx context.Context) (models.HistoryList, error) {
	data, ok, err := s.slot.Get(ctx, s.name)
	if err != nil {
		return models.HistoryList{}, fmt.Errorf("read history slot: %w", err)
	}
	if !ok {
		return models.HistoryList{}, nil
	}

	list, err := Decode(data)
	if err != nil {
		// The next mutation overwrites the slot, so the discarded contents are lost.
		log.Warn().
			Err(err).
			Str("slot", s.name).
			Int("records", countRecords(data)).
			Int("bytes", len(data)).
			Msg("Ignoring malformed history; the next write will replace it")
		return models.HistoryList{}, nil
	}
	return list, nil
}

// Save overwrites the slot with list.
func (s *Store) Save(ctx context.Context, list models.HistoryList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, list)
}

func (s *Store) save(ctx context.Context, list models.HistoryList) error {
	data, err := Encode(list)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.slot.Put(ctx, s.name, data); err != nil {
		return fmt.Errorf("write history slot: %w", err)
	}
	log.Debug().Str("slot", s.name).Int("records", len(list)).Msg("History saved")
	return nil
}

// Add prepends rec and persists the result.
func (s *Store) Add(ctx context.Context, list models.HistoryList, rec models.PromptRecord) (models.HistoryList, error) {
	return s.mutate(ctx, list, Add(list, rec))
}

// Remove deletes the record matching id and persists the result, even when
// id was not present.
func (s *Store) Remove(ctx context.Context, list models.HistoryList, id int64) (models.HistoryList, error) {
	return s.mutate(ctx, list, Remove(list, id))
}

// Clear persists and returns an empty list. When the write fails the
// caller's list is still the persisted one.
func (s *Store) Clear(ctx context.Context) (models.HistoryList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Clear()
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *Store) mutate(ctx context.Context, prev, next models.HistoryList) (models.HistoryList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(ctx, next); err != nil {
		return prev, err
	}
	return next, nil
}

// Close closes the underlying slot.
func (s *Store) Close() error {
	return s.slot.Close()
}

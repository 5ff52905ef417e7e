package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotStore implements slot storage on top of the slots table.
type SlotStore struct {
	store *Store
}

// NewSlotStore creates a slot store. Closing it closes the underlying Store.
func NewSlotStore(store *Store) *SlotStore {
	return &SlotStore{store: store}
}

// Get returns the value of the named slot; ok is false when no row exists.
func (s *SlotStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if name == "" {
		return nil, false, errors.New("empty slot name")
	}
	var row SlotRow
	err := s.store.DB.WithContext(ctx).
		Where("name = ?", name).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get slot %s: %w", name, err)
	}
	return row.Data, true, nil
}

// Put upserts the named slot.
func (s *SlotStore) Put(ctx context.Context, name string, data []byte) error {
	if name == "" {
		return errors.New("empty slot name")
	}
	if data == nil {
		data = []byte{}
	}
	row := SlotRow{Name: name, Data: data}
	err := s.store.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at", "updated_at_epoch"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("put slot %s: %w", name, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SlotStore) Close() error {
	return s.store.Close()
}

package gorm

import (
	"time"

	"gorm.io/gorm"
)

// SlotRow holds one named slot value.
type SlotRow struct {
	Name           string `gorm:"primaryKey;type:varchar(255)"`
	Data           []byte `gorm:"not null"`
	UpdatedAt      string `gorm:"not null"`
	UpdatedAtEpoch int64  `gorm:"index:idx_slots_updated,sort:desc;not null"`
}

func (SlotRow) TableName() string { return "slots" }

// BeforeSave stamps the row on every write.
func (r *SlotRow) BeforeSave(tx *gorm.DB) error {
	now := time.Now()
	r.UpdatedAt = now.Format(time.RFC3339)
	r.UpdatedAtEpoch = now.UnixMilli()
	return nil
}

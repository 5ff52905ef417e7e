package gorm

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// runMigrations runs all database migrations using gormigrate.
func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		// Migration 001: slot table
		{
			ID: "001_slots",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&SlotRow{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("slots")
			},
		},
	})
	return m.Migrate()
}

// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"testing"

	"github.com/consultoria/portal/internal/config"
	"github.com/consultoria/portal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory SQLite database with foreign keys on.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := models.Open(&config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, logger.Silent)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	// every pooled connection to :memory: would be a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Package testutil provides test helpers for setting up key-value stores,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"expensetracker/internal/kv"
	"expensetracker/internal/models"
)

// dbCounter gives every test database its own shared-cache name.
var dbCounter atomic.Int64

// SetupTestDB creates an in-memory SQLite database with the kv_entries
// table migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// SetupGormStore returns a SQL-backed store that is closed with the test.
func SetupGormStore(t *testing.T) *kv.Gorm {
	t.Helper()
	db := SetupTestDB(t)
	t.Cleanup(func() { TeardownTestDB(t, db) })
	return kv.NewGorm(db)
}

// SetupMemoryStore returns an empty in-memory store.
func SetupMemoryStore(t *testing.T) *kv.Memory {
	t.Helper()
	return kv.NewMemory()
}

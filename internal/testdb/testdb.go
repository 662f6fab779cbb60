// Package testdb opens throwaway SQLite catalog databases for tests.
package testdb

import (
	"path/filepath"
	"testing"

	"musicapp/config"
	"musicapp/db"

	"gorm.io/gorm"
)

// New returns a migrated catalog database backed by a file in t.TempDir().
// The connection is closed when the test finishes.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "catalog.db"),
		LogLevel: "error",
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(gdb); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return gdb
}

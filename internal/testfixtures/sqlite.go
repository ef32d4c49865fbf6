package testfixtures

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/example/recurrence-preview/internal/persistence"
	"github.com/example/recurrence-preview/internal/persistence/sqlite"
	"github.com/example/recurrence-preview/internal/persistence/sqlite/migration"
)

// SQLiteHarness provides repository access backed by a migrated SQLite file
// in a per-test temporary directory.
type SQLiteHarness struct {
	Storage        *sqlite.Storage
	Configurations persistence.ConfigurationRepository
	Translations   persistence.TranslationRepository
	Path           string

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness opens and migrates a fresh database. Close is registered
// with tb.Cleanup, so callers only need it to release the file early.
func NewSQLiteHarness(tb testing.TB, logger *slog.Logger) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "preview.db")
	ctx := context.Background()

	storage, err := sqlite.Open(ctx, migration.TempFileTestSQLiteConfig(path), logger)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}
	if err := storage.Migrate(ctx); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Storage:        storage,
		Configurations: storage,
		Translations:   storage,
		Path:           path,
		cleanup: func() {
			_ = storage.Close()
		},
	}
	tb.Cleanup(harness.Close)
	return harness
}

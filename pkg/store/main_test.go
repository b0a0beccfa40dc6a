package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quillault/glossolalia/pkg/ngram"
)

// setupFileStore creates a FileStore over a temporary directory.
func setupFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "models"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return s
}

// setupSQLStore creates a SQLStore over a fresh SQLite database.
// It uses t.Cleanup to ensure resources are released.
func setupSQLStore(t *testing.T) (*sql.DB, *SQLStore) {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", dbFile+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	s, err := NewSQLStore(db)
	if err != nil {
		t.Fatalf("NewSQLStore() error = %v", err)
	}
	t.Cleanup(s.Close)

	return db, s
}

// eachStore runs fn against both store implementations.
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("FileStore", func(t *testing.T) {
		fn(t, setupFileStore(t))
	})
	t.Run("SQLStore", func(t *testing.T) {
		_, s := setupSQLStore(t)
		fn(t, s)
	})
}

// testSnapshot returns the snapshot of a small trained model.
func testSnapshot(t *testing.T) *ngram.Snapshot {
	t.Helper()
	m, err := ngram.New(ngram.Config{Order: 2, Smoothing: 0.5})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.Train([][]string{
		ngram.Wrap([]string{"one", "fish", "two", "fish"}),
		ngram.Wrap([]string{"red", "fish", "blue", "fish"}),
	})
	return m.Snapshot()
}

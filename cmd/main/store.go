package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quillault/glossolalia/pkg/store"
)

// openStore picks the snapshot store from the flags: --db selects the
// SQLite-backed store, otherwise snapshots live as JSON files under
// --data-dir. The returned func releases whatever the store holds open.
func openStore(logger *slog.Logger) (store.Store, func() error, error) {
	if dbPath == "" {
		fs, err := store.NewFileStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open file store: %w", err)
		}
		return fs, func() error { return nil }, nil
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("could not create database directory: %w", err)
		}
	}

	db, err := openDB(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open database: %w", err)
	}
	if err = store.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("could not set up database schema: %w", err)
	}

	s, err := store.NewSQLStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	s.SetLogger(logger)

	cleanup := func() error {
		s.Close()
		return db.Close()
	}
	return s, cleanup, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/quillault/glossolalia/pkg/ngram"
)

// SetupSchema initializes the tables the SQLStore needs in the provided
// database. This function should be called once on a new database before
// any other operations are performed. It is idempotent and safe to call on
// an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const (
		schemaModels = `
CREATE TABLE IF NOT EXISTS ngram_models (
    model_id INTEGER PRIMARY KEY,
    model_name TEXT NOT NULL UNIQUE,
    model_order INTEGER NOT NULL,
    smoothing REAL NOT NULL,
    sampling TEXT NOT NULL,
    temperature REAL NOT NULL,
    top_k INTEGER NOT NULL
);
`
		schemaCounts = `
CREATE TABLE IF NOT EXISTS ngram_counts (
    model_id INTEGER NOT NULL,
    context TEXT NOT NULL,
    next_token TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (model_id, context, next_token)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaModels); err != nil {
		return fmt.Errorf("could not create models schema: %w", err)
	}
	if _, err = tx.Exec(schemaCounts); err != nil {
		return fmt.Errorf("could not create counts schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// SQLStore keeps model snapshots in a SQLite database, one row per model
// plus one row per context and next token pair. It holds prepared SQL
// statements for the hot paths and should be closed when no longer needed.
type SQLStore struct {
	db               *sql.DB
	stmtGetModel     *sql.Stmt
	stmtGetModels    *sql.Stmt
	stmtUpsertModel  *sql.Stmt
	stmtDeleteModel  *sql.Stmt
	stmtDeleteCounts *sql.Stmt
	stmtGetCounts    *sql.Stmt
	logger           *slog.Logger
}

// NewSQLStore creates a store over db. It pre-compiles all necessary SQL
// statements, returning an error if any preparation fails. The schema must
// already be in place, see SetupSchema.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	stmtGetModel, err := db.Prepare(`SELECT model_id, model_order, smoothing, sampling, temperature, top_k FROM ngram_models WHERE model_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtGetModels, err := db.Prepare(`SELECT model_name FROM ngram_models ORDER BY model_name;`)
	if err != nil {
		return nil, err
	}

	stmtUpsertModel, err := db.Prepare(`INSERT INTO ngram_models (model_name, model_order, smoothing, sampling, temperature, top_k) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(model_name) DO UPDATE SET model_order=excluded.model_order, smoothing=excluded.smoothing, sampling=excluded.sampling, temperature=excluded.temperature, top_k=excluded.top_k RETURNING model_id;`)
	if err != nil {
		return nil, err
	}

	stmtDeleteModel, err := db.Prepare(`DELETE FROM ngram_models WHERE model_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtDeleteCounts, err := db.Prepare(`DELETE FROM ngram_counts WHERE model_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtGetCounts, err := db.Prepare(`SELECT context, next_token, count FROM ngram_counts WHERE model_id = ?;`)
	if err != nil {
		return nil, err
	}

	return &SQLStore{
		db:               db,
		stmtGetModel:     stmtGetModel,
		stmtGetModels:    stmtGetModels,
		stmtUpsertModel:  stmtUpsertModel,
		stmtDeleteModel:  stmtDeleteModel,
		stmtDeleteCounts: stmtDeleteCounts,
		stmtGetCounts:    stmtGetCounts,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared SQL statements held by the store.
func (s *SQLStore) Close() {
	_ = s.stmtGetModel.Close()
	_ = s.stmtGetModels.Close()
	_ = s.stmtUpsertModel.Close()
	_ = s.stmtDeleteModel.Close()
	_ = s.stmtDeleteCounts.Close()
	_ = s.stmtGetCounts.Close()
}

// SetLogger sets the logger for the store. By default, all logs are
// discarded. Providing a `log/slog.Logger` will enable logging for save,
// load and delete operations.
func (s *SQLStore) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Save stores the snapshot under name, replacing any previous configuration
// and counts for the same model. The whole write happens in one
// transaction.
func (s *SQLStore) Save(ctx context.Context, name string, snap *ngram.Snapshot) error {
	if err := ngram.ValidateSnapshot(snap); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction for save: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	cfg := snap.Config
	var modelID int
	err = tx.StmtContext(ctx, s.stmtUpsertModel).
		QueryRowContext(ctx, name, cfg.Order, cfg.Smoothing, string(cfg.Sampling), cfg.Temperature, cfg.TopK).
		Scan(&modelID)
	if err != nil {
		return fmt.Errorf("failed to upsert model '%s': %w", name, err)
	}

	if _, err = tx.StmtContext(ctx, s.stmtDeleteCounts).ExecContext(ctx, modelID); err != nil {
		return fmt.Errorf("failed to clear old counts for model '%s': %w", name, err)
	}

	stmtInsertCount, err := tx.PrepareContext(ctx, `INSERT INTO ngram_counts (model_id, context, next_token, count) VALUES (?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare count insert statement: %w", err)
	}
	defer func(stmtInsertCount *sql.Stmt) {
		_ = stmtInsertCount.Close()
	}(stmtInsertCount)

	var saved int
	for key, inner := range snap.Counts {
		for next, count := range inner {
			if _, err = stmtInsertCount.ExecContext(ctx, modelID, key, next, count); err != nil {
				return fmt.Errorf("failed to insert count (%q -> %q): %w", key, next, err)
			}
			saved++
		}
	}

	s.logger.InfoContext(ctx, "Model saved",
		slog.String("model_name", name),
		slog.Int("model_id", modelID),
		slog.Int("counts_saved", saved),
	)

	return tx.Commit()
}

// Load reads the snapshot saved under name. Unknown names yield
// ErrNotFound; stored data that fails snapshot validation yields an error
// wrapping ngram.ErrBadSnapshot.
func (s *SQLStore) Load(ctx context.Context, name string) (*ngram.Snapshot, error) {
	var modelID, order, topK int
	var smoothing, temperature float64
	var sampling string
	err := s.stmtGetModel.QueryRowContext(ctx, name).
		Scan(&modelID, &order, &smoothing, &sampling, &temperature, &topK)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query model '%s': %w", name, err)
	}

	snap := &ngram.Snapshot{
		Config: ngram.Config{
			Order:       order,
			Smoothing:   smoothing,
			Sampling:    ngram.Sampling(sampling),
			Temperature: temperature,
			TopK:        topK,
		},
		Counts: make(map[string]map[string]int),
	}

	rows, err := s.stmtGetCounts.QueryContext(ctx, modelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query counts for model '%s': %w", name, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var key, next string
		var count int
		if err := rows.Scan(&key, &next, &count); err != nil {
			return nil, err
		}
		inner := snap.Counts[key]
		if inner == nil {
			inner = make(map[string]int)
			snap.Counts[key] = inner
		}
		inner[next] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := ngram.ValidateSnapshot(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// List returns the names of all saved models in sorted order.
func (s *SQLStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.stmtGetModels.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the model and all of its counts from the database. The
// operation is performed within a transaction.
func (s *SQLStore) Delete(ctx context.Context, name string) error {
	var modelID int
	err := s.db.QueryRowContext(ctx, "SELECT model_id FROM ngram_models WHERE model_name = ?", name).Scan(&modelID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to query model '%s': %w", name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction for delete: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.StmtContext(ctx, s.stmtDeleteCounts).ExecContext(ctx, modelID); err != nil {
		return fmt.Errorf("failed to remove counts for model %d: %w", modelID, err)
	}
	if _, err = tx.StmtContext(ctx, s.stmtDeleteModel).ExecContext(ctx, modelID); err != nil {
		return fmt.Errorf("failed to remove model %d: %w", modelID, err)
	}

	s.logger.InfoContext(ctx, "Model removed",
		slog.String("model_name", name),
		slog.Int("model_id", modelID),
	)

	return tx.Commit()
}

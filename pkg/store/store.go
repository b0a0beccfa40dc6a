// Package store persists n-gram model snapshots under stable names. Two
// implementations are provided: FileStore keeps one JSON document per model
// in a directory, SQLStore keeps all models in a SQLite database.
package store

import (
	"context"
	"errors"

	"github.com/quillault/glossolalia/pkg/ngram"
)

// ErrNotFound indicates that no model is saved under the requested name.
var ErrNotFound = errors.New("model not found")

// Store is the contract for persisting model snapshots by name. Save
// overwrites any existing snapshot under the same name. Load returns
// ErrNotFound for unknown names and an error wrapping ngram.ErrBadSnapshot
// for stored data that fails validation; it never returns a partially
// decoded snapshot.
type Store interface {
	Save(ctx context.Context, name string, snap *ngram.Snapshot) error
	Load(ctx context.Context, name string) (*ngram.Snapshot, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

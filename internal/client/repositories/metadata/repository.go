// Package metadata is the local key/value table the client keeps its
// session tokens in.
package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authdemo/internal/dbx"
)

// Repository reads and writes rows of the metadata table. Get returns
// (nil, nil) for a key that is not stored.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Factory binds a Repository to a connection or to an open transaction.
type Factory func(db dbx.DBTX) Repository

type sqliteRepository struct {
	db dbx.DBTX
}

// NewSQLite is the Factory for the SQLite table.
func NewSQLite(db dbx.DBTX) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("metadata get %q: %w", key, err)
	}
	return value, nil
}

func (r *sqliteRepository) Put(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, `REPLACE INTO metadata (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("metadata put %q: %w", key, err)
	}
	return nil
}

// Delete removes every listed key in one statement. Missing keys are not an
// error.
func (r *sqliteRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	q := `DELETE FROM metadata WHERE key IN (?` + strings.Repeat(`, ?`, len(keys)-1) + `)`

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("metadata delete %q: %w", keys, err)
	}
	return nil
}

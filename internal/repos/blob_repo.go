package repos

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
)

// BlobStore keeps opaque values under fixed names.
type BlobStore interface {
	// Get reports ok=false when nothing was ever stored under key.
	Get(key string) (value []byte, ok bool, err error)
	Put(key string, value []byte) error
	// PutAll writes every entry or none of them.
	PutAll(values map[string][]byte) error
	Close() error
}

type SQLiteBlobs struct{ db *sqlx.DB }

func NewSQLiteBlobs(db *sqlx.DB) *SQLiteBlobs { return &SQLiteBlobs{db: db} }

func (r *SQLiteBlobs) Get(key string) ([]byte, bool, error) {
	var v []byte
	err := r.db.Get(&v, `SELECT value FROM blobs WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

const upsertBlob = `
	INSERT INTO blobs(key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`

// Put overwrites the whole value.
func (r *SQLiteBlobs) Put(key string, value []byte) error {
	_, err := r.db.Exec(upsertBlob, key, value)
	return err
}

func (r *SQLiteBlobs) PutAll(values map[string][]byte) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, k := range sortedKeys(values) {
		if _, err := tx.Exec(upsertBlob, k, values[k]); err != nil {
			return fmt.Errorf("put %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteBlobs) Close() error { return r.db.Close() }

func sortedKeys(values map[string][]byte) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package repos

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// PebbleBlobs implements BlobStore on a local pebble directory.
type PebbleBlobs struct {
	db *pebble.DB
}

func NewPebbleBlobs(dir string) (*PebbleBlobs, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleBlobs{db: d}, nil
}

func (p *PebbleBlobs) Get(key string) ([]byte, bool, error) {
	v, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()
	return append([]byte(nil), v...), true, nil
}

// Put syncs each write; the state is small and written once per change.
func (p *PebbleBlobs) Put(key string, value []byte) error {
	return p.db.Set([]byte(key), value, pebble.Sync)
}

// PutAll applies every entry in one synced batch.
func (p *PebbleBlobs) PutAll(values map[string][]byte) error {
	b := p.db.NewBatch()
	defer b.Close()
	for _, k := range sortedKeys(values) {
		if err := b.Set([]byte(k), values[k], nil); err != nil {
			return fmt.Errorf("batch %s: %w", k, err)
		}
	}
	return b.Commit(pebble.Sync)
}

func (p *PebbleBlobs) Close() error { return p.db.Close() }

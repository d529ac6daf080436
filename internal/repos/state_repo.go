package repos

import (
	"encoding/json"
	"fmt"
	"log"

	"agripoultry/internal/domain"
)

// Keys the state is stored under.
const (
	KeyProducts = "chickens"
	KeyOrders   = "orders"
	KeySettings = "settings"
)

// StateRepo serialises the catalog, the ledger and the settings as JSON
// blobs. A key that was never written loads as seed data.
type StateRepo struct {
	blobs BlobStore
}

func NewStateRepo(blobs BlobStore) *StateRepo { return &StateRepo{blobs: blobs} }

func (r *StateRepo) LoadProducts() ([]domain.Product, error) {
	var out []domain.Product
	found, err := r.load(KeyProducts, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Println("[seed] no stored catalog, using default products")
		return SeedProducts(), nil
	}
	return out, nil
}

func (r *StateRepo) LoadOrders() ([]domain.Order, error) {
	var out []domain.Order
	found, err := r.load(KeyOrders, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Println("[seed] no stored ledger, using default orders")
		return SeedOrders(), nil
	}
	return out, nil
}

func (r *StateRepo) LoadSettings() (domain.Settings, error) {
	var s domain.Settings
	if _, err := r.load(KeySettings, &s); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

// SaveState writes the catalog and the ledger together, so a failed write
// never leaves stock taken by an order that was not stored. An empty list is
// written as [] so that an emptied collection does not reload as seed data.
func (r *StateRepo) SaveState(ps []domain.Product, orders []domain.Order) error {
	if ps == nil {
		ps = []domain.Product{}
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	values := make(map[string][]byte, 2)
	for key, v := range map[string]any{KeyProducts: ps, KeyOrders: orders} {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		values[key] = b
	}
	if err := r.blobs.PutAll(values); err != nil {
		return fmt.Errorf("store state: %w", err)
	}
	return nil
}

func (r *StateRepo) SaveSettings(s domain.Settings) error { return r.save(KeySettings, s) }

func (r *StateRepo) load(key string, dst any) (bool, error) {
	b, ok, err := r.blobs.Get(key)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	// a stored JSON null counts as missing, like an absent key
	if !ok || string(b) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *StateRepo) save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.blobs.Put(key, b); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

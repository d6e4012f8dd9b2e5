package cart

import (
	"context"
	"encoding/json"
	"fmt"
)

// Storage keys for the two per-visitor snapshots.
const (
	CartKeyPrefix    = "cart:"
	ProfileKeyPrefix = "profile:"
)

// SnapshotStore persists raw JSON snapshots under fixed keys. Get returns
// (nil, nil) for an absent key; corrupt payloads are the decoder's problem,
// not the store's.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// Encode serialises the full cart as a JSON array of line items.
func (c *Cart) Encode() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot rehydrates a cart from a persisted payload. Missing,
// corrupt or non-array payloads yield an empty cart: a bad snapshot must
// never take the storefront down, so there is no error to return.
func DecodeSnapshot(payload []byte) *Cart {
	if len(payload) == 0 {
		return New()
	}

	var items []LineItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return New()
	}

	c := New()
	for _, li := range items {
		if li.ProductID == "" || li.Size == "" || li.Color == "" {
			continue
		}
		if li.Quantity < 1 {
			li.Quantity = 1
		}
		if li.Key == "" {
			li.Key = LineKey(li.ProductID, li.Size, li.Color)
		}
		c.items = append(c.items, li)
	}
	return c
}

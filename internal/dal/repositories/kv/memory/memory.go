package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// KVRepository is an in-process key-value bridge. It is the default storage
// driver and the one service tests run against.
type KVRepository struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewKVRepository creates an empty in-memory key-value repository.
func NewKVRepository() *KVRepository {
	return &KVRepository{
		items: make(map[string][]byte),
	}
}

// Read decodes the value stored under key into out. Missing and corrupt values
// read as absent; corrupt values are removed so the failure does not repeat.
func (r *KVRepository) Read(_ context.Context, key string, out any) bool {
	r.mu.Lock()
	raw, ok := r.items[key]
	r.mu.Unlock()
	if !ok {
		return false
	}

	if err := json.Unmarshal(raw, out); err != nil {
		slog.Warn("Corrupt session state value, clearing", "key", key, "error", err)
		r.mu.Lock()
		delete(r.items, key)
		r.mu.Unlock()

		return false
	}

	return true
}

// Write stores the JSON encoding of value under key.
func (r *KVRepository) Write(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode session state value: %w", err)
	}

	r.mu.Lock()
	r.items[key] = raw
	r.mu.Unlock()

	return nil
}

// Remove deletes the value stored under key.
func (r *KVRepository) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.items, key)
	r.mu.Unlock()

	return nil
}

// SetRaw stores raw bytes verbatim, bypassing JSON encoding. Tests use it to
// plant corrupt values.
func (r *KVRepository) SetRaw(key string, raw []byte) {
	r.mu.Lock()
	r.items[key] = append([]byte(nil), raw...)
	r.mu.Unlock()
}

package ikvbridge

import "context"

// Storage keys used by the session services.
const (
	KeyCart      = "cart"
	KeyUser      = "user"
	KeyFavorites = "favorites"
)

// IKVBridge persists JSON-encoded session state under fixed keys.
type IKVBridge interface {
	// Read decodes the value stored under key into out. It reports false when
	// the key is absent or the stored value is corrupt; corrupt values are
	// removed on detection so the failure does not repeat.
	Read(ctx context.Context, key string, out any) bool

	// Write stores the JSON encoding of value under key.
	Write(ctx context.Context, key string, value any) error

	// Remove deletes the value stored under key, if any.
	Remove(ctx context.Context, key string) error
}

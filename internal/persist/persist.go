// Package persist is the state store's persistence side-channel: one
// JSON-serialized value per key per customer, read once at rehydration and
// rewritten in full after every mutation of the owning collection.
package persist

import "context"

// Key names one persisted slice of customer state.
type Key string

const (
	KeyAccount       Key = "account"
	KeyCart          Key = "cart"
	KeyOrders        Key = "orders"
	KeyStats         Key = "stats"
	KeyWallet        Key = "wallet"
	KeyNotifications Key = "notifications"
	KeyTheme         Key = "theme"
)

// AllKeys in rehydration order.
var AllKeys = []Key{
	KeyAccount, KeyCart, KeyOrders, KeyStats, KeyWallet, KeyNotifications, KeyTheme,
}

// Persister stores raw JSON blobs. Load returns (nil, nil) when a key has
// never been written; a malformed stored value is the caller's problem and
// falls back to the default state rather than propagating.
type Persister interface {
	Save(ctx context.Context, userID uint, key Key, value []byte) error
	Load(ctx context.Context, userID uint, key Key) ([]byte, error)
	Delete(ctx context.Context, userID uint, key Key) error
	Close() error
}

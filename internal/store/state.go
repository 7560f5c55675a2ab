package store

import (
	"encoding/json"
	"fmt"

	"github.com/exoticflavors/exotic-storefront/internal/checkout"
	"github.com/exoticflavors/exotic-storefront/internal/model"
	"github.com/exoticflavors/exotic-storefront/internal/notify"
	"github.com/exoticflavors/exotic-storefront/internal/persist"
)

// State is everything the app holds for one customer. Child views receive
// read-only snapshots of it; all mutation goes through Store methods.
type State struct {
	Account       model.Account
	Cart          []model.CartLine
	Orders        []model.Order
	Stats         model.CustomerStats
	Wallet        int64
	Notifications []notify.Notification
	Theme         string

	// Checkout is the in-progress flow, if any. It is transient and not
	// persisted: an interrupted checkout starts over.
	Checkout *checkout.Flow
}

func defaultState() *State {
	return &State{
		Cart:          []model.CartLine{},
		Orders:        []model.Order{},
		Notifications: []notify.Notification{},
		Theme:         "light",
	}
}

// snapshot serializes the collection owned by key. Every mutation rewrites
// its key in full; there are no partial updates.
func (st *State) snapshot(key persist.Key) ([]byte, error) {
	switch key {
	case persist.KeyAccount:
		return json.Marshal(st.Account)
	case persist.KeyCart:
		return json.Marshal(st.Cart)
	case persist.KeyOrders:
		return json.Marshal(st.Orders)
	case persist.KeyStats:
		return json.Marshal(st.Stats)
	case persist.KeyWallet:
		return json.Marshal(st.Wallet)
	case persist.KeyNotifications:
		return json.Marshal(st.Notifications)
	case persist.KeyTheme:
		return json.Marshal(st.Theme)
	}
	return nil, fmt.Errorf("store: unknown persistence key %q", key)
}

// restore loads one key's raw value into the state. A malformed value is
// reported but leaves the default in place; the storage fallback contract is
// an empty collection, never an error surfaced to the core.
func (st *State) restore(key persist.Key, raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	switch key {
	case persist.KeyAccount:
		return json.Unmarshal(raw, &st.Account)
	case persist.KeyCart:
		return json.Unmarshal(raw, &st.Cart)
	case persist.KeyOrders:
		return json.Unmarshal(raw, &st.Orders)
	case persist.KeyStats:
		return json.Unmarshal(raw, &st.Stats)
	case persist.KeyWallet:
		return json.Unmarshal(raw, &st.Wallet)
	case persist.KeyNotifications:
		return json.Unmarshal(raw, &st.Notifications)
	case persist.KeyTheme:
		return json.Unmarshal(raw, &st.Theme)
	}
	return fmt.Errorf("store: unknown persistence key %q", key)
}

// CartView is the outbound snapshot the drawer and badge render from.
type CartView struct {
	Lines     []model.CartLine `json:"lines"`
	Subtotal  int64            `json:"subtotal"`
	ItemCount int              `json:"item_count"`
}

// CheckoutView is the outbound snapshot of the active checkout flow. Fee and
// totals are recomputed on every read.
type CheckoutView struct {
	Step        checkout.Step     `json:"step"`
	Fields      checkout.Fields   `json:"fields"`
	Errors      map[string]string `json:"errors"`
	Subtotal    int64             `json:"subtotal"`
	DeliveryFee int64             `json:"delivery_fee"`
	GrandTotal  int64             `json:"grand_total"`
}

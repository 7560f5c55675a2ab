// Package store holds the canonical per-customer application state: cart,
// account, order history, stats, wallet, notifications and theme. Views get
// snapshots, mutations run behind a per-customer lock so rapid events
// serialize in arrival order, and every mutation mirrors the owning
// collection to the persistence adapter.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/exoticflavors/exotic-storefront/internal/cart"
	"github.com/exoticflavors/exotic-storefront/internal/checkout"
	"github.com/exoticflavors/exotic-storefront/internal/loyalty"
	"github.com/exoticflavors/exotic-storefront/internal/model"
	"github.com/exoticflavors/exotic-storefront/internal/notify"
	"github.com/exoticflavors/exotic-storefront/internal/persist"
)

var (
	ErrNoActiveCheckout = errors.New("store: no active checkout")
	ErrCartEmpty        = errors.New("store: cart is empty")
	ErrOrderNotFound    = errors.New("store: order not found")
	ErrInvalidAmount    = errors.New("store: amount must be positive")
	ErrInvalidTheme     = errors.New("store: theme must be light or dark")
)

const createdAtLayout = "Jan 2, 2006 3:04 PM"

// Store owns one State per customer.
type Store struct {
	mu        sync.Mutex
	customers map[uint]*customer
	persister persist.Persister
}

type customer struct {
	mu    sync.Mutex
	state *State
}

func New(p persist.Persister) *Store {
	return &Store{
		customers: make(map[uint]*customer),
		persister: p,
	}
}

// get returns the customer's state holder, rehydrating it from the persister
// on first access. Malformed stored values fall back to defaults.
func (s *Store) get(ctx context.Context, userID uint) *customer {
	s.mu.Lock()
	c, ok := s.customers[userID]
	if !ok {
		c = &customer{state: defaultState()}
		s.customers[userID] = c
		c.mu.Lock() // hold while rehydrating so no mutation sees a half-loaded state
		defer c.mu.Unlock()
		s.mu.Unlock()

		for _, key := range persist.AllKeys {
			raw, err := s.persister.Load(ctx, userID, key)
			if err != nil {
				log.Printf("WARN: could not load %s for user %d: %v", key, userID, err)
				continue
			}
			if err := c.state.restore(key, raw); err != nil {
				log.Printf("WARN: discarding malformed %s for user %d: %v", key, userID, err)
			}
		}
		return c
	}
	s.mu.Unlock()
	return c
}

// save mirrors one key synchronously. Persistence is fire-and-forget: a
// failed write is logged, never surfaced.
func (s *Store) save(ctx context.Context, userID uint, st *State, keys ...persist.Key) {
	for _, key := range keys {
		raw, err := st.snapshot(key)
		if err != nil {
			log.Printf("WARN: could not serialize %s for user %d: %v", key, userID, err)
			continue
		}
		if err := s.persister.Save(ctx, userID, key, raw); err != nil {
			log.Printf("WARN: could not persist %s for user %d: %v", key, userID, err)
		}
	}
}

// --- Account ---

func (s *Store) Account(ctx context.Context, userID uint) model.Account {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Account
}

func (s *Store) SetAccount(ctx context.Context, userID uint, account model.Account) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Account = account
	s.save(ctx, userID, c.state, persist.KeyAccount)
}

// Logout drops the in-memory state and the persisted account key. History,
// stats and the rest stay persisted for the next login.
func (s *Store) Logout(ctx context.Context, userID uint) {
	s.mu.Lock()
	delete(s.customers, userID)
	s.mu.Unlock()
	if err := s.persister.Delete(ctx, userID, persist.KeyAccount); err != nil {
		log.Printf("WARN: could not delete account key for user %d: %v", userID, err)
	}
}

// --- Cart ---

func (s *Store) Cart(ctx context.Context, userID uint) CartView {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return cartView(c.state.Cart)
}

func cartView(lines []model.CartLine) CartView {
	cp := make([]model.CartLine, len(lines))
	copy(cp, lines)
	return CartView{
		Lines:     cp,
		Subtotal:  cart.Subtotal(lines),
		ItemCount: cart.ItemCount(lines),
	}
}

func (s *Store) AddToCart(ctx context.Context, userID uint, dish model.CartLine) CartView {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Cart = cart.AddItem(c.state.Cart, dish)
	s.save(ctx, userID, c.state, persist.KeyCart)
	return cartView(c.state.Cart)
}

func (s *Store) ChangeQuantity(ctx context.Context, userID uint, name string, delta int) CartView {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Cart = cart.ChangeQuantity(c.state.Cart, name, delta)
	s.save(ctx, userID, c.state, persist.KeyCart)
	return cartView(c.state.Cart)
}

func (s *Store) RemoveFromCart(ctx context.Context, userID uint, name string) CartView {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Cart = cart.RemoveItem(c.state.Cart, name)
	s.save(ctx, userID, c.state, persist.KeyCart)
	return cartView(c.state.Cart)
}

func (s *Store) ClearCart(ctx context.Context, userID uint) CartView {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Cart = cart.Clear()
	s.save(ctx, userID, c.state, persist.KeyCart)
	return cartView(c.state.Cart)
}

// --- Checkout ---

// BeginCheckout starts a fresh flow. The empty-cart and authentication
// guards belong to the caller; a finished or abandoned flow is replaced.
func (s *Store) BeginCheckout(ctx context.Context, userID uint) (CheckoutView, error) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.state.Cart) == 0 {
		return CheckoutView{}, ErrCartEmpty
	}
	c.state.Checkout = checkout.New()
	return checkoutView(c.state), nil
}

func (s *Store) CheckoutState(ctx context.Context, userID uint) (CheckoutView, error) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Checkout == nil {
		return CheckoutView{}, ErrNoActiveCheckout
	}
	return checkoutView(c.state), nil
}

func (s *Store) SetCheckoutField(ctx context.Context, userID uint, name, value string) (CheckoutView, error) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Checkout == nil {
		return CheckoutView{}, ErrNoActiveCheckout
	}
	if err := c.state.Checkout.SetField(name, value); err != nil {
		return CheckoutView{}, err
	}
	return checkoutView(c.state), nil
}

// AdvanceCheckout validates the current step and moves forward. On a
// validation failure the returned view carries the field errors and the step
// is unchanged.
func (s *Store) AdvanceCheckout(ctx context.Context, userID uint) (CheckoutView, error) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Checkout == nil {
		return CheckoutView{}, ErrNoActiveCheckout
	}
	err := c.state.Checkout.Advance()
	return checkoutView(c.state), err
}

func (s *Store) CheckoutBack(ctx context.Context, userID uint) (CheckoutView, error) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Checkout == nil {
		return CheckoutView{}, ErrNoActiveCheckout
	}
	c.state.Checkout.Back()
	return checkoutView(c.state), nil
}

// SubmitCheckout drives the flow through Submitting into Confirmed and, on
// success, records the order: the single write path for history and stats.
// The cart is cleared and an order notification pushed in the same critical
// section, so no interleaved mutation can observe a half-placed order.
func (s *Store) SubmitCheckout(ctx context.Context, userID uint) (model.Order, error) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Checkout == nil {
		return model.Order{}, ErrNoActiveCheckout
	}
	if len(c.state.Cart) == 0 {
		return model.Order{}, ErrCartEmpty
	}

	var placed model.Order
	err := c.state.Checkout.Submit(ctx, func() {
		placed = s.recordOrder(ctx, userID, c.state, c.state.Checkout.DeliveryFee())
	})
	if err != nil {
		return model.Order{}, err
	}
	return placed, nil
}

// recordOrder freezes the cart into an immutable Order, prepends it to the
// history, bumps the cumulative stats and clears the cart. Caller holds the
// customer lock.
func (s *Store) recordOrder(ctx context.Context, userID uint, st *State, deliveryFee int64) model.Order {
	lines := make([]model.CartLine, len(st.Cart))
	copy(lines, st.Cart)

	now := time.Now()
	id := now.UnixMilli()
	if len(st.Orders) > 0 && id <= st.Orders[0].ID {
		id = st.Orders[0].ID + 1 // two orders inside one millisecond
	}

	subtotal := cart.Subtotal(lines)
	order := model.Order{
		ID:          id,
		Reference:   uuid.New().String(),
		CreatedAt:   now.Format(createdAtLayout),
		Lines:       lines,
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Total:       subtotal + deliveryFee,
	}

	st.Orders = append([]model.Order{order}, st.Orders...)
	st.Stats.TotalOrders++
	st.Stats.TotalSpent += order.Total
	st.Cart = cart.Clear()
	st.Notifications = append([]notify.Notification{notify.OrderPlaced(order.ID)}, st.Notifications...)

	s.save(ctx, userID, st, persist.KeyOrders, persist.KeyStats, persist.KeyCart, persist.KeyNotifications)
	return order
}

func checkoutView(st *State) CheckoutView {
	subtotal := cart.Subtotal(st.Cart)
	return CheckoutView{
		Step:        st.Checkout.Step(),
		Fields:      st.Checkout.Fields(),
		Errors:      st.Checkout.Errors(),
		Subtotal:    subtotal,
		DeliveryFee: st.Checkout.DeliveryFee(),
		GrandTotal:  st.Checkout.GrandTotal(subtotal),
	}
}

// --- Orders & loyalty ---

func (s *Store) Orders(ctx context.Context, userID uint) []model.Order {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Order, len(c.state.Orders))
	copy(out, c.state.Orders)
	return out
}

// Reorder replays a historical order's lines through the cart engine: a
// non-empty cart merges by name, it is never overwritten.
func (s *Store) Reorder(ctx context.Context, userID uint, orderID int64) (CartView, error) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, o := range c.state.Orders {
		if o.ID == orderID {
			c.state.Cart = cart.Merge(c.state.Cart, o.Lines)
			s.save(ctx, userID, c.state, persist.KeyCart)
			return cartView(c.state.Cart), nil
		}
	}
	return CartView{}, ErrOrderNotFound
}

func (s *Store) Stats(ctx context.Context, userID uint) (model.CustomerStats, loyalty.Status) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Stats, loyalty.ComputeTier(c.state.Stats.TotalSpent)
}

// --- Wallet ---

func (s *Store) WalletBalance(ctx context.Context, userID uint) int64 {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Wallet
}

func (s *Store) AddFunds(ctx context.Context, userID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Wallet += amount
	s.save(ctx, userID, c.state, persist.KeyWallet)
	return c.state.Wallet, nil
}

// --- Notifications ---

func (s *Store) Notifications(ctx context.Context, userID uint) ([]notify.Notification, int) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]notify.Notification, len(c.state.Notifications))
	copy(out, c.state.Notifications)
	unread := 0
	for _, n := range out {
		if !n.Read {
			unread++
		}
	}
	return out, unread
}

func (s *Store) PushNotification(ctx context.Context, userID uint, n notify.Notification) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Notifications = append([]notify.Notification{n}, c.state.Notifications...)
	s.save(ctx, userID, c.state, persist.KeyNotifications)
}

func (s *Store) MarkNotificationRead(ctx context.Context, userID uint, id int64) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Notifications {
		if c.state.Notifications[i].ID == id {
			c.state.Notifications[i].Read = true
		}
	}
	s.save(ctx, userID, c.state, persist.KeyNotifications)
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uint) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Notifications {
		c.state.Notifications[i].Read = true
	}
	s.save(ctx, userID, c.state, persist.KeyNotifications)
}

func (s *Store) RemoveNotification(ctx context.Context, userID uint, id int64) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.state.Notifications[:0]
	for _, n := range c.state.Notifications {
		if n.ID != id {
			out = append(out, n)
		}
	}
	c.state.Notifications = out
	s.save(ctx, userID, c.state, persist.KeyNotifications)
}

func (s *Store) ClearNotifications(ctx context.Context, userID uint) {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Notifications = []notify.Notification{}
	s.save(ctx, userID, c.state, persist.KeyNotifications)
}

// --- Theme ---

func (s *Store) Theme(ctx context.Context, userID uint) string {
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Theme
}

func (s *Store) SetTheme(ctx context.Context, userID uint, theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	c := s.get(ctx, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Theme = theme
	s.save(ctx, userID, c.state, persist.KeyTheme)
	return nil
}

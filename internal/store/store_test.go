package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exoticflavors/exotic-storefront/internal/checkout"
	"github.com/exoticflavors/exotic-storefront/internal/loyalty"
	"github.com/exoticflavors/exotic-storefront/internal/model"
	"github.com/exoticflavors/exotic-storefront/internal/notify"
	"github.com/exoticflavors/exotic-storefront/internal/persist"
)

const testUser uint = 1

func suyaLine() model.CartLine {
	return model.CartLine{Name: "Suya Skewers (Beef)", UnitPrice: 3500}
}

func fillCheckout(t *testing.T, s *Store, ctx context.Context) {
	t.Helper()
	for name, value := range map[string]string{
		"full_name": "Adaeze Obi",
		"phone":     "08031234567",
		"whatsapp":  "08031234567",
	} {
		_, err := s.SetCheckoutField(ctx, testUser, name, value)
		require.NoError(t, err)
	}
	_, err := s.AdvanceCheckout(ctx, testUser)
	require.NoError(t, err)

	for name, value := range map[string]string{
		"street":   "12 Herbert Macaulay Way",
		"area":     "Yaba",
		"landmark": "Opposite the big mosque",
	} {
		_, err := s.SetCheckoutField(ctx, testUser, name, value)
		require.NoError(t, err)
	}
	_, err = s.AdvanceCheckout(ctx, testUser)
	require.NoError(t, err)
}

func TestFullOrderJourney(t *testing.T) {
	ctx := context.Background()
	s := New(persist.NewMemoryPersister())

	// Two taps on the same dish merge into one line.
	s.AddToCart(ctx, testUser, suyaLine())
	view := s.AddToCart(ctx, testUser, suyaLine())
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, int64(7000), view.Subtotal)

	cv, err := s.BeginCheckout(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, checkout.CollectingCustomerInfo, cv.Step)

	fillCheckout(t, s, ctx)

	cv, err = s.CheckoutState(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, checkout.CollectingDeliveryAndPayment, cv.Step)
	assert.Equal(t, int64(1500), cv.DeliveryFee) // Yaba
	assert.Equal(t, int64(8500), cv.GrandTotal)

	order, err := s.SubmitCheckout(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), order.Subtotal)
	assert.Equal(t, int64(1500), order.DeliveryFee)
	assert.Equal(t, int64(8500), order.Total)
	assert.NotEmpty(t, order.Reference)

	// Order placement is one transaction: history, stats, cart and the
	// notification all reflect it.
	orders := s.Orders(ctx, testUser)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	stats, status := s.Stats(ctx, testUser)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, int64(8500), stats.TotalSpent)
	assert.Equal(t, loyalty.Bronze, status.Tier)

	assert.Empty(t, s.Cart(ctx, testUser).Lines)

	notifications, unread := s.Notifications(ctx, testUser)
	require.NotEmpty(t, notifications)
	assert.Equal(t, notify.CategoryOrder, notifications[0].Category)
	assert.Equal(t, order.ID, notifications[0].OrderID)
	assert.Equal(t, 1, unread)
}

func TestBeginCheckoutRefusesEmptyCart(t *testing.T) {
	ctx := context.Background()
	s := New(persist.NewMemoryPersister())

	_, err := s.BeginCheckout(ctx, testUser)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestAdvanceKeepsStepOnValidationFailure(t *testing.T) {
	ctx := context.Background()
	s := New(persist.NewMemoryPersister())
	s.AddToCart(ctx, testUser, suyaLine())

	_, err := s.BeginCheckout(ctx, testUser)
	require.NoError(t, err)

	view, err := s.AdvanceCheckout(ctx, testUser)
	assert.ErrorIs(t, err, checkout.ErrFieldsRequired)
	assert.Equal(t, checkout.CollectingCustomerInfo, view.Step)
	assert.Contains(t, view.Errors, "full_name")
}

func TestSubmitWithoutCheckout(t *testing.T) {
	ctx := context.Background()
	s := New(persist.NewMemoryPersister())

	_, err := s.SubmitCheckout(ctx, testUser)
	assert.ErrorIs(t, err, ErrNoActiveCheckout)
}

func TestReorderMergesIntoCurrentCart(t *testing.T) {
	ctx := context.Background()
	s := New(persist.NewMemoryPersister())

	s.AddToCart(ctx, testUser, suyaLine())
	s.AddToCart(ctx, testUser, suyaLine())
	_, err := s.BeginCheckout(ctx, testUser)
	require.NoError(t, err)
	fillCheckout(t, s, ctx)
	order, err := s.SubmitCheckout(ctx, testUser)
	require.NoError(t, err)

	// Something new in the cart, then replay the old order on top of it.
	s.AddToCart(ctx, testUser, model.CartLine{Name: "Moi Moi", UnitPrice: 1800})
	view, err := s.Reorder(ctx, testUser, order.ID)
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	assert.Equal(t, int64(1800+7000), view.Subtotal)

	_, err = s.Reorder(ctx, testUser, 404)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	p := persist.NewMemoryPersister()

	s := New(p)
	s.AddToCart(ctx, testUser, suyaLine())
	_, err := s.AddFunds(ctx, testUser, 5000)
	require.NoError(t, err)
	require.NoError(t, s.SetTheme(ctx, testUser, "dark"))

	// A fresh store over the same persister stands in for a restart.
	s2 := New(p)
	view := s2.Cart(ctx, testUser)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, suyaLine().Name, view.Lines[0].Name)
	assert.Equal(t, int64(5000), s2.WalletBalance(ctx, testUser))
	assert.Equal(t, "dark", s2.Theme(ctx, testUser))
}

func TestMalformedPersistedValueFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	p := persist.NewMemoryPersister()
	require.NoError(t, p.Save(ctx, testUser, persist.KeyCart, []byte("{not json")))
	wallet, _ := json.Marshal(int64(2500))
	require.NoError(t, p.Save(ctx, testUser, persist.KeyWallet, wallet))

	s := New(p)
	assert.Empty(t, s.Cart(ctx, testUser).Lines)
	assert.Equal(t, int64(2500), s.WalletBalance(ctx, testUser))
}

func TestEveryCartMutationIsMirrored(t *testing.T) {
	ctx := context.Background()
	p := persist.NewMemoryPersister()
	s := New(p)

	s.AddToCart(ctx, testUser, suyaLine())
	raw, err := p.Load(ctx, testUser, persist.KeyCart)
	require.NoError(t, err)
	var lines []model.CartLine
	require.NoError(t, json.Unmarshal(raw, &lines))
	require.Len(t, lines, 1)

	s.RemoveFromCart(ctx, testUser, suyaLine().Name)
	raw, err = p.Load(ctx, testUser, persist.KeyCart)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &lines))
	assert.Empty(t, lines)
}

func TestLogoutKeepsHistoryButDropsProfile(t *testing.T) {
	ctx := context.Background()
	p := persist.NewMemoryPersister()
	s := New(p)

	s.SetAccount(ctx, testUser, model.Account{Name: "Adaeze Obi", Email: "adaeze@example.com"})
	_, err := s.AddFunds(ctx, testUser, 3000)
	require.NoError(t, err)

	s.Logout(ctx, testUser)

	s2 := New(p)
	assert.Empty(t, s2.Account(ctx, testUser).Name)
	assert.Equal(t, int64(3000), s2.WalletBalance(ctx, testUser))
}

func TestWalletRejectsNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()
	s := New(persist.NewMemoryPersister())

	_, err := s.AddFunds(ctx, testUser, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = s.AddFunds(ctx, testUser, -500)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	balance, err := s.AddFunds(ctx, testUser, 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), balance)
}

func TestNotificationReadFlow(t *testing.T) {
	ctx := context.Background()
	s := New(persist.NewMemoryPersister())

	welcome := notify.FirstOrderDiscount()
	welcome.ID = 1
	delivery := notify.FreeDelivery()
	delivery.ID = 2
	s.PushNotification(ctx, testUser, welcome)
	s.PushNotification(ctx, testUser, delivery)

	items, unread := s.Notifications(ctx, testUser)
	require.Len(t, items, 2)
	assert.Equal(t, 2, unread)

	s.MarkNotificationRead(ctx, testUser, items[0].ID)
	_, unread = s.Notifications(ctx, testUser)
	assert.Equal(t, 1, unread)

	s.MarkAllNotificationsRead(ctx, testUser)
	_, unread = s.Notifications(ctx, testUser)
	assert.Equal(t, 0, unread)

	s.RemoveNotification(ctx, testUser, welcome.ID)
	items, _ = s.Notifications(ctx, testUser)
	require.Len(t, items, 1)
	assert.Equal(t, delivery.ID, items[0].ID)

	s.ClearNotifications(ctx, testUser)
	items, _ = s.Notifications(ctx, testUser)
	assert.Empty(t, items)
}

func TestThemeValidation(t *testing.T) {
	ctx := context.Background()
	s := New(persist.NewMemoryPersister())

	assert.Equal(t, "light", s.Theme(ctx, testUser))
	assert.ErrorIs(t, s.SetTheme(ctx, testUser, "neon"), ErrInvalidTheme)
	require.NoError(t, s.SetTheme(ctx, testUser, "dark"))
	assert.Equal(t, "dark", s.Theme(ctx, testUser))
}

func TestCustomersAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := New(persist.NewMemoryPersister())

	s.AddToCart(ctx, 1, suyaLine())
	assert.Empty(t, s.Cart(ctx, 2).Lines)
	assert.Len(t, s.Cart(ctx, 1).Lines, 1)
}

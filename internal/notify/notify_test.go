package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderPlacedShape(t *testing.T) {
	n := OrderPlaced(42)

	assert.Equal(t, CategoryOrder, n.Category)
	assert.Equal(t, "Order #42 Confirmed", n.Title)
	assert.Equal(t, int64(42), n.OrderID)
	assert.True(t, n.ShowToast)
	assert.True(t, n.Actionable)
	assert.Equal(t, "Track Order", n.ActionText)
	assert.False(t, n.Read)
	assert.NotZero(t, n.Timestamp)
}

func TestCancelledIsSystemCategory(t *testing.T) {
	n := OrderCancelled(7)
	assert.Equal(t, CategorySystem, n.Category)
	assert.Equal(t, int64(7), n.OrderID)
}

func TestPromoConstructors(t *testing.T) {
	sale := FlashSale(30, "all rice dishes")
	assert.Equal(t, CategoryPromo, sale.Category)
	assert.Equal(t, "Flash Sale! 30% Off", sale.Title)
	assert.Contains(t, sale.Message, "all rice dishes")
	assert.False(t, sale.ShowToast)

	welcome := FirstOrderDiscount()
	assert.Contains(t, welcome.Message, "FIRST20")
	assert.True(t, welcome.Actionable)
}

func TestOutForDeliveryCarriesEta(t *testing.T) {
	n := OrderOutForDelivery(9, 25)
	assert.Contains(t, n.Message, "25 minutes")
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }

	tests := []struct {
		name string
		ts   int64
		want string
	}{
		{"seconds ago", at(30 * time.Second), "Just now"},
		{"one minute", at(90 * time.Second), "1 min ago"},
		{"minutes", at(5 * time.Minute), "5 mins ago"},
		{"one hour", at(time.Hour + time.Minute), "1 hour ago"},
		{"hours", at(6 * time.Hour), "6 hours ago"},
		{"days", at(3 * 24 * time.Hour), "3 days ago"},
		{"falls back to date", at(10 * 24 * time.Hour), "05/03/2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.ts, now))
		})
	}
}

// Package notify defines the customer notification feed. Categories form a
// closed set and every notification is built by one of the constructors
// below, so nothing outside those shapes can enter the feed.
package notify

import (
	"fmt"
	"time"
)

// Category tags a notification. The set is closed; constructors are the only
// write path.
type Category string

const (
	CategoryOrder        Category = "order"
	CategoryPromo        Category = "promo"
	CategoryAnnouncement Category = "announcement"
	CategoryNews         Category = "news"
	CategorySystem       Category = "system"
)

// Notification is one feed entry. ShowToast marks entries the client should
// also surface as a toast; Actionable entries carry a call-to-action label.
type Notification struct {
	ID         int64    `json:"id"`
	Category   Category `json:"category"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	ShowToast  bool     `json:"show_toast"`
	Actionable bool     `json:"actionable"`
	ActionText string   `json:"action_text,omitempty"`
	OrderID    int64    `json:"order_id,omitempty"` // set only for order-category entries
	Read       bool     `json:"read"`
	Timestamp  int64    `json:"timestamp"` // UnixMilli
}

func newNotification(cat Category, title, message string) Notification {
	return Notification{
		ID:        time.Now().UnixMilli(),
		Category:  cat,
		Title:     title,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	}
}

// --- Order status ---

func OrderPlaced(orderID int64) Notification {
	n := newNotification(CategoryOrder, fmt.Sprintf("Order #%d Confirmed", orderID),
		"Your order has been confirmed and is being prepared")
	n.ShowToast = true
	n.Actionable = true
	n.ActionText = "Track Order"
	n.OrderID = orderID
	return n
}

func OrderPreparing(orderID int64) Notification {
	n := newNotification(CategoryOrder, fmt.Sprintf("Order #%d is Being Prepared", orderID),
		"Our chefs are preparing your delicious meal")
	n.ShowToast = true
	n.OrderID = orderID
	return n
}

func OrderOutForDelivery(orderID int64, etaMinutes int) Notification {
	n := newNotification(CategoryOrder, fmt.Sprintf("Order #%d is On the Way", orderID),
		fmt.Sprintf("Your order will arrive in %d minutes", etaMinutes))
	n.ShowToast = true
	n.Actionable = true
	n.ActionText = "Track Delivery"
	n.OrderID = orderID
	return n
}

func OrderDelivered(orderID int64) Notification {
	n := newNotification(CategoryOrder, fmt.Sprintf("Order #%d Delivered", orderID),
		"Enjoy your meal!")
	n.ShowToast = true
	n.Actionable = true
	n.ActionText = "Rate Order"
	n.OrderID = orderID
	return n
}

func OrderCancelled(orderID int64) Notification {
	n := newNotification(CategorySystem, fmt.Sprintf("Order #%d Cancelled", orderID),
		"Your order has been cancelled. Refund will be processed within 24 hours")
	n.ShowToast = true
	n.OrderID = orderID
	return n
}

// --- Promotions ---

func FlashSale(discount int, items string) Notification {
	n := newNotification(CategoryPromo, fmt.Sprintf("Flash Sale! %d%% Off", discount),
		fmt.Sprintf("Get %d%% off on %s. Limited time only!", discount, items))
	n.Actionable = true
	n.ActionText = "Shop Now"
	return n
}

func LoyaltyReward(points int) Notification {
	n := newNotification(CategoryPromo, "Loyalty Rewards Earned!",
		fmt.Sprintf("You've earned %d points! Redeem them on your next order", points))
	n.ShowToast = true
	return n
}

func FirstOrderDiscount() Notification {
	n := newNotification(CategoryPromo, "Welcome! 20% Off Your First Order",
		"Use code FIRST20 at checkout")
	n.ShowToast = true
	n.Actionable = true
	n.ActionText = "Order Now"
	return n
}

func FreeDelivery() Notification {
	return newNotification(CategoryPromo, "Free Delivery Today!",
		"No minimum order required. Valid for 24 hours")
}

// --- Announcements & system ---

func NewMenuItems(items string) Notification {
	n := newNotification(CategoryAnnouncement, "New Menu Items Available",
		fmt.Sprintf("Check out our new %s on the menu", items))
	n.Actionable = true
	n.ActionText = "View Menu"
	return n
}

func MaintenanceMode(startTime, duration string) Notification {
	n := newNotification(CategorySystem, "Scheduled Maintenance",
		fmt.Sprintf("We'll be down for %s starting %s. Sorry for any inconvenience!", duration, startTime))
	n.ShowToast = true
	return n
}

func HolidayHours(date, hours string) Notification {
	return newNotification(CategoryAnnouncement, fmt.Sprintf("Special Hours on %s", date),
		fmt.Sprintf("We'll be open %s on %s", hours, date))
}

func AccountVerified() Notification {
	n := newNotification(CategorySystem, "Account Verified",
		"Your account has been successfully verified")
	n.ShowToast = true
	return n
}

// --- News ---

func SocialMedia(platform string) Notification {
	n := newNotification(CategoryNews, fmt.Sprintf("We're Now on %s!", platform),
		"Follow us @exoticflavors for exclusive deals and updates")
	n.Actionable = true
	n.ActionText = "Follow Us"
	return n
}

func Blog(title string) Notification {
	n := newNotification(CategoryNews, "New Blog Post", title)
	n.Actionable = true
	n.ActionText = "Read More"
	return n
}

// RelativeTime renders a timestamp the way the feed displays it.
func RelativeTime(unixMilli int64, now time.Time) string {
	diff := now.Sub(time.UnixMilli(unixMilli))
	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "min")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return time.UnixMilli(unixMilli).Format("02/01/2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

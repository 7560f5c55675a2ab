package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/exoticflavors/exotic-storefront/internal/notify"
	"github.com/exoticflavors/exotic-storefront/internal/store"
)

// NotificationHandler serves the in-app notification feed.
type NotificationHandler struct {
	State *store.Store
}

type notificationView struct {
	notify.Notification
	TimeAgo string `json:"timeAgo"`
}

// List returns the feed newest-first with a human-friendly relative time on
// each entry, plus the unread count for the bell badge.
func (h *NotificationHandler) List(c *gin.Context) {
	items, unread := h.State.Notifications(c.Request.Context(), currentUserID(c))

	now := time.Now()
	views := make([]notificationView, len(items))
	for i, n := range items {
		views[i] = notificationView{Notification: n, TimeAgo: notify.RelativeTime(n.Timestamp, now)}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": views, "unreadCount": unread})
}

// MarkRead flags a single notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid notification id."})
		return
	}

	h.State.MarkNotificationRead(c.Request.Context(), currentUserID(c), id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Remove deletes a single notification from the feed.
func (h *NotificationHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid notification id."})
		return
	}

	h.State.RemoveNotification(c.Request.Context(), currentUserID(c), id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllRead clears the unread badge in one go.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	h.State.MarkAllNotificationsRead(c.Request.Context(), currentUserID(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearAll empties the feed.
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	h.State.ClearNotifications(c.Request.Context(), currentUserID(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

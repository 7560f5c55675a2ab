package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/exoticflavors/exotic-storefront/internal/middleware"
	"github.com/exoticflavors/exotic-storefront/internal/store"
)

// OrderHandler exposes the order history.
type OrderHandler struct {
	State *store.Store
}

// ListOrders returns the history newest-first.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders := h.State.Orders(c.Request.Context(), currentUserID(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "count": len(orders)})
}

// Reorder loads a past order's lines back into the cart, merging with
// whatever is already there.
func (h *OrderHandler) Reorder(c *gin.Context) {
	success := false
	defer func() { middleware.RecordOperation("reorder", success) }()

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid order id."})
		return
	}

	view, err := h.State.Reorder(c.Request.Context(), currentUserID(c), orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not reorder."})
		return
	}

	success = true
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view, "newCartCount": view.ItemCount})
}

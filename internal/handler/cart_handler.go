package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exoticflavors/exotic-storefront/internal/database"
	"github.com/exoticflavors/exotic-storefront/internal/middleware"
	"github.com/exoticflavors/exotic-storefront/internal/model"
	"github.com/exoticflavors/exotic-storefront/internal/store"
)

// CartHandler exposes the shopping cart over the API.
type CartHandler struct {
	State *store.Store
}

// GetCart returns the current cart with its computed totals.
func (h *CartHandler) GetCart(c *gin.Context) {
	view := h.State.Cart(c.Request.Context(), currentUserID(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view})
}

// AddToCart puts one unit of a dish in the cart, merging with an existing line.
func (h *CartHandler) AddToCart(c *gin.Context) {
	success := false
	defer func() { middleware.RecordOperation("cart_add", success) }()

	var product model.Product
	result := database.DB.First(&product, "id = ?", c.Param("id"))
	if result.Error != nil || !product.InStock {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Dish not found or unavailable."})
		return
	}

	view := h.State.AddToCart(c.Request.Context(), currentUserID(c), model.LineFromProduct(product))
	success = true
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      product.Name + " added to cart!",
		"cart":         view,
		"newCartCount": view.ItemCount,
	})
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

// UpdateQuantity nudges a line's quantity by delta. Quantity never drops
// below one; removal is its own endpoint.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Delta == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "A non-zero delta is required."})
		return
	}

	view := h.State.ChangeQuantity(c.Request.Context(), currentUserID(c), c.Param("name"), req.Delta)
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view, "newCartCount": view.ItemCount})
}

// RemoveItem takes a line out of the cart. Removing a line that is not
// there is fine.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view := h.State.RemoveFromCart(c.Request.Context(), currentUserID(c), c.Param("name"))
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view, "newCartCount": view.ItemCount})
}

// ClearCart empties the cart in one go.
func (h *CartHandler) ClearCart(c *gin.Context) {
	view := h.State.ClearCart(c.Request.Context(), currentUserID(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": view, "newCartCount": 0})
}

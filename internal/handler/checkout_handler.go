package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exoticflavors/exotic-storefront/internal/checkout"
	"github.com/exoticflavors/exotic-storefront/internal/middleware"
	"github.com/exoticflavors/exotic-storefront/internal/store"
)

// CheckoutHandler drives the three-step checkout over the API.
type CheckoutHandler struct {
	State          *store.Store
	WhatsAppNumber string
}

// Start opens a fresh checkout for the current cart. An empty cart is
// refused before any step is shown.
func (h *CheckoutHandler) Start(c *gin.Context) {
	view, err := h.State.BeginCheckout(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, store.ErrCartEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Your cart is empty. Add something tasty first!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not start checkout."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "checkout": view})
}

// GetState returns the current step, entered fields, errors and running totals.
func (h *CheckoutHandler) GetState(c *gin.Context) {
	view, err := h.State.CheckoutState(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No checkout in progress."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "checkout": view})
}

// SetFields writes one or more form fields into the active checkout.
func (h *CheckoutHandler) SetFields(c *gin.Context) {
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)
	var view store.CheckoutView
	for name, value := range fields {
		var err error
		view, err = h.State.SetCheckoutField(ctx, userID, name, value)
		if err != nil {
			if errors.Is(err, store.ErrNoActiveCheckout) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No checkout in progress."})
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			}
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "checkout": view})
}

// Advance validates the current step and moves to the next one. Validation
// failures come back as 422 with per-field messages; the step stays put.
func (h *CheckoutHandler) Advance(c *gin.Context) {
	view, err := h.State.AdvanceCheckout(c.Request.Context(), currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoActiveCheckout):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No checkout in progress."})
		case errors.Is(err, checkout.ErrFieldsRequired):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "errors": view.Errors, "checkout": view})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "checkout": view})
}

// Back steps to the previous form without losing any entered data.
func (h *CheckoutHandler) Back(c *gin.Context) {
	view, err := h.State.CheckoutBack(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No checkout in progress."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "checkout": view})
}

// Submit places the order. On success the response carries the frozen order,
// a WhatsApp link with the order summary, and how long the client should
// show the confirmation before redirecting home.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	success := false
	defer func() { middleware.RecordOperation("order_submit", success) }()

	ctx := c.Request.Context()
	userID := currentUserID(c)

	view, err := h.State.CheckoutState(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No checkout in progress."})
		return
	}

	order, err := h.State.SubmitCheckout(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Your cart is empty."})
		case errors.Is(err, checkout.ErrWrongStep):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Finish the delivery step before placing the order."})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusRequestTimeout, gin.H{"success": false, "error": "Order was not placed. Please try again."})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	success = true
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"order":           order,
		"whatsappLink":    checkout.WhatsAppLink(h.WhatsAppNumber, order, view.Fields),
		"redirectAfterMs": checkout.ConfirmedRedirectDelay.Milliseconds(),
	})
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/exoticflavors/exotic-storefront/internal/model"
	"github.com/exoticflavors/exotic-storefront/internal/store"
)

// ProfileHandler covers the account page: profile, loyalty and wallet.
type ProfileHandler struct {
	State *store.Store
}

// GetProfile returns the profile together with the loyalty standing and
// wallet balance, everything the account screen shows.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	stats, loyaltyStatus := h.State.Stats(ctx, userID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"account": h.State.Account(ctx, userID),
		"stats":   stats,
		"loyalty": loyaltyStatus,
		"wallet":  h.State.WalletBalance(ctx, userID),
		"theme":   h.State.Theme(ctx, userID),
	})
}

// UpdateProfile saves the editable profile fields. Name, email, phone and
// address are required; the rest may stay blank.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var account model.Account
	if err := c.ShouldBindJSON(&account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	if strings.TrimSpace(account.Name) == "" || strings.TrimSpace(account.Email) == "" ||
		strings.TrimSpace(account.Phone) == "" || strings.TrimSpace(account.Address) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Name, email, phone and address are required."})
		return
	}

	ctx := c.Request.Context()
	userID := currentUserID(c)

	// Joined is set once at signup and never edited from the form.
	current := h.State.Account(ctx, userID)
	account.Joined = current.Joined
	h.State.SetAccount(ctx, userID, account)

	c.JSON(http.StatusOK, gin.H{"success": true, "account": account})
}

type fundsRequest struct {
	Amount int64 `json:"amount"`
}

// AddFunds tops up the wallet balance.
func (h *ProfileHandler) AddFunds(c *gin.Context) {
	var req fundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	balance, err := h.State.AddFunds(c.Request.Context(), currentUserID(c), req.Amount)
	if err != nil {
		if errors.Is(err, store.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Amount must be greater than zero."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not add funds."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "wallet": balance})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// SetTheme stores the light or dark preference.
func (h *ProfileHandler) SetTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	if err := h.State.SetTheme(c.Request.Context(), currentUserID(c), req.Theme); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Theme must be light or dark."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "theme": req.Theme})
}

package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/exoticflavors/exotic-storefront/internal/database"
	"github.com/exoticflavors/exotic-storefront/internal/model"
	"github.com/exoticflavors/exotic-storefront/internal/notify"
	"github.com/exoticflavors/exotic-storefront/internal/store"
)

const SessionName = "exotic-session"

// AuthHandler owns signup, login, logout and the session guard.
type AuthHandler struct {
	Store *sessions.CookieStore
	State *store.Store
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Signup creates a credential record and the initial customer profile, and
// logs the new customer in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please fill in all fields."})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not process password."})
		return
	}

	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}

	result := database.DB.Create(&user)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "unique constraint") || strings.Contains(result.Error.Error(), "duplicate key") {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "This email is already registered."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not create account."})
		}
		return
	}

	ctx := c.Request.Context()
	h.State.SetAccount(ctx, user.ID, model.Account{
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
		WhatsApp: user.Phone,
		Joined:   user.CreatedAt.Format("January 2006"),
	})
	h.State.PushNotification(ctx, user.ID, notify.FirstOrderDiscount())

	if err := h.saveSession(c, user.ID); err != nil {
		fmt.Printf("ERROR saving session after signup: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not start session."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "account": h.State.Account(ctx, user.ID)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and rehydrates the customer state.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body."})
		return
	}

	var user model.User
	result := database.DB.Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong. Try again."})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid email or password."})
		return
	}

	ctx := c.Request.Context()
	account := h.State.Account(ctx, user.ID)
	if account.Email == "" {
		// First login on this instance with nothing persisted: build the
		// profile from the credential record.
		account = model.Account{
			Name:     user.Name,
			Email:    user.Email,
			Phone:    user.Phone,
			WhatsApp: user.Phone,
			Joined:   user.CreatedAt.Format("January 2006"),
		}
		h.State.SetAccount(ctx, user.ID, account)
	}

	if err := h.saveSession(c, user.ID); err != nil {
		fmt.Printf("ERROR saving login session: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not start session."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "account": account})
}

// Logout drops the session cookie and this customer's in-memory state.
func (h *AuthHandler) Logout(c *gin.Context) {
	session, _ := h.Store.Get(c.Request, SessionName)
	if userID, ok := session.Values["userID"].(uint); ok {
		h.State.Logout(c.Request.Context(), userID)
	}

	session.Values["userID"] = nil
	session.Options.MaxAge = -1
	if err := session.Save(c.Request, c.Writer); err != nil {
		fmt.Printf("ERROR saving logout session: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not log out."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AuthRequired guards the API group: no valid session, no access.
func (h *AuthHandler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := h.Store.Get(c.Request, SessionName)
		userID, ok := session.Values["userID"].(uint)
		if !ok || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Login required."})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

func (h *AuthHandler) saveSession(c *gin.Context, userID uint) error {
	session, _ := h.Store.Get(c.Request, SessionName)
	session.Values["userID"] = userID
	return session.Save(c.Request, c.Writer)
}

// currentUserID reads the user set by AuthRequired.
func currentUserID(c *gin.Context) uint {
	userID, _ := c.Get("userID")
	id, _ := userID.(uint)
	return id
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/exoticflavors/exotic-storefront/internal/database"
	"github.com/exoticflavors/exotic-storefront/internal/handler"
	"github.com/exoticflavors/exotic-storefront/internal/middleware"
	"github.com/exoticflavors/exotic-storefront/internal/persist"
	"github.com/exoticflavors/exotic-storefront/internal/store"
)

// defaultWhatsAppNumber receives the order summary after checkout when
// WHATSAPP_NUMBER is not set.
const defaultWhatsAppNumber = "2348132791933"

func main() {
	err := godotenv.Load()
	if err != nil {
		fmt.Println("WARNING: .env file not found, relying on environment variables.")
	}

	database.ConnectDB()
	database.SeedMenu()

	persister := newPersister()
	defer persister.Close()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET not set")
	}
	sessionStore := sessions.NewCookieStore([]byte(sessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	}

	state := store.New(persister)

	whatsAppNumber := os.Getenv("WHATSAPP_NUMBER")
	if whatsAppNumber == "" {
		whatsAppNumber = defaultWhatsAppNumber
	}

	authHandler := &handler.AuthHandler{Store: sessionStore, State: state}
	menuHandler := &handler.MenuHandler{}
	cartHandler := &handler.CartHandler{State: state}
	checkoutHandler := &handler.CheckoutHandler{State: state, WhatsAppNumber: whatsAppNumber}
	orderHandler := &handler.OrderHandler{State: state}
	profileHandler := &handler.ProfileHandler{State: state}
	notificationHandler := &handler.NotificationHandler{State: state}

	router := gin.Default()
	router.Use(middleware.Prometheus())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/api/auth/signup", authHandler.Signup)
	router.POST("/api/auth/login", authHandler.Login)
	router.POST("/api/auth/logout", authHandler.Logout)

	router.GET("/api/menu", menuHandler.ListMenu)
	router.GET("/api/menu/:id", menuHandler.GetProduct)

	api := router.Group("/api", authHandler.AuthRequired())
	{
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart/items/:id", cartHandler.AddToCart)
		api.PATCH("/cart/items/:name", cartHandler.UpdateQuantity)
		api.DELETE("/cart/items/:name", cartHandler.RemoveItem)
		api.DELETE("/cart", cartHandler.ClearCart)

		api.POST("/checkout", checkoutHandler.Start)
		api.GET("/checkout", checkoutHandler.GetState)
		api.PUT("/checkout/fields", checkoutHandler.SetFields)
		api.POST("/checkout/advance", checkoutHandler.Advance)
		api.POST("/checkout/back", checkoutHandler.Back)
		api.POST("/checkout/submit", checkoutHandler.Submit)

		api.GET("/orders", orderHandler.ListOrders)
		api.POST("/orders/:id/reorder", orderHandler.Reorder)

		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.UpdateProfile)
		api.POST("/wallet/funds", profileHandler.AddFunds)
		api.PUT("/theme", profileHandler.SetTheme)

		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		api.POST("/notifications/:id/read", notificationHandler.MarkRead)
		api.DELETE("/notifications/:id", notificationHandler.Remove)
		api.DELETE("/notifications", notificationHandler.ClearAll)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Server running on port %s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}

// newPersister connects to Redis when REDIS_ADDR is set and otherwise keeps
// everything in memory, which is fine for local development.
func newPersister() persist.Persister {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		fmt.Println("WARNING: REDIS_ADDR not set, customer state will not survive restarts.")
		return persist.NewMemoryPersister()
	}

	p, err := persist.NewRedisPersister(context.Background(), addr, os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	fmt.Println("Connected to Redis.")
	return p
}

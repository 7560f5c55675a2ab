package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exoticflavors/exotic-storefront/internal/database"
	"github.com/exoticflavors/exotic-storefront/internal/model"
)

// MenuHandler serves the product catalog.
type MenuHandler struct{}

// ListMenu returns every dish on the menu, optionally filtered by category.
func (h *MenuHandler) ListMenu(c *gin.Context) {
	var products []model.Product

	query := database.DB.Order("category, name")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if result := query.Find(&products); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not load the menu."})
		return
	}

	var categories []string
	database.DB.Model(&model.Product{}).Distinct("category").Order("category").Pluck("category", &categories)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"products":   products,
		"categories": categories,
	})
}

// GetProduct returns a single dish by id.
func (h *MenuHandler) GetProduct(c *gin.Context) {
	var product model.Product
	if result := database.DB.First(&product, "id = ?", c.Param("id")); result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Dish not found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

package database

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/exoticflavors/exotic-storefront/internal/model"
)

// menuSeed is the launch menu. Prices are whole naira.
var menuSeed = []model.Product{
	{Name: "Spicy Jollof Rice", Description: "Authentic Nigerian jollof with grilled chicken & plantain", Price: 4500, Category: "Rice Dishes", ImageURL: "https://images.unsplash.com/photo-1625944527473-1c1c3cbb2f55?auto=format&fit=crop&w=800&q=80", InStock: true},
	{Name: "Coconut Fried Rice", Description: "Aromatic coconut rice with mixed vegetables & shrimp", Price: 5200, Category: "Rice Dishes", ImageURL: "https://images.unsplash.com/photo-1603133872878-684f208fb84b?auto=format&fit=crop&w=800&q=80", InStock: true},
	{Name: "Egusi Soup + Pounded Yam", Description: "Rich melon seed soup with assorted meats & soft pounded yam", Price: 6800, Category: "Soups & Swallows", ImageURL: "https://images.unsplash.com/photo-1627308594171-19a11611f31c?auto=format&fit=crop&w=800&q=80", InStock: true},
	{Name: "Okra Soup + Eba", Description: "Fresh okra stew with goat meat & garri eba", Price: 5500, Category: "Soups & Swallows", ImageURL: "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=800&q=80", InStock: true},
	{Name: "Efo Riro (Vegetable Soup) + Amala", Description: "Yoruba-style spinach stew with beef & yam flour swallow", Price: 6000, Category: "Soups & Swallows", ImageURL: "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?auto=format&fit=crop&w=800&q=80", InStock: true},
	{Name: "Suya Skewers (Beef)", Description: "Spicy peanut-crusted grilled beef with onions & tomatoes", Price: 3500, Category: "Grills & Street Favorites", ImageURL: "https://images.unsplash.com/photo-1598514983730-c6ab06ec6801?auto=format&fit=crop&w=800&q=80", InStock: true},
	{Name: "Grilled Salmon (Exotic Fusion)", Description: "Fresh salmon with African herbs, spices & lemon glaze", Price: 7200, Category: "Grills & Street Favorites", ImageURL: "https://images.unsplash.com/photo-1600891964599-f61ba0e24092?auto=format&fit=crop&w=800&q=80", InStock: true},
	{Name: "Asun (Peppered Goat Meat)", Description: "Smoky spicy goat meat stir-fry - very hot!", Price: 4800, Category: "Grills & Street Favorites", ImageURL: "https://images.unsplash.com/photo-1544025162-d766942659cb?auto=format&fit=crop&w=800&q=80", InStock: true},
	{Name: "Fried Plantain (Dodo)", Description: "Sweet ripe plantains fried to golden perfection", Price: 1500, Category: "Sides & Extras", ImageURL: "https://images.unsplash.com/photo-1589010588553-46e8e7c21788?auto=format&fit=crop&w=800&q=80", InStock: true},
	{Name: "Moi Moi", Description: "Steamed bean pudding with egg & fish", Price: 1800, Category: "Sides & Extras", ImageURL: "https://images.unsplash.com/photo-1626645738538-2f4e38d6d9f5?auto=format&fit=crop&w=800&q=80", InStock: true},
}

// SeedMenu inserts any launch dish that is not already in the products
// table. Existing rows are left alone so price edits survive restarts.
func SeedMenu() {
	for _, dish := range menuSeed {
		var existing model.Product
		result := DB.Where("name = ?", dish.Name).First(&existing)

		if result.Error != nil && errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := DB.Create(&dish).Error; err != nil {
				log.Fatalf("Failed to seed menu item %q: %v", dish.Name, err)
			}
			log.Printf("Seeded menu item: %s", dish.Name)
		}
	}
}

package model

import "time"

// Product is a dish on the menu, served from the products table.
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;size:100;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null" json:"price"` // whole naira, no kobo
	Category    string `gorm:"size:50;index" json:"category"`
	ImageURL    string `json:"image_url"`
	InStock     bool   `gorm:"default:true" json:"in_stock"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

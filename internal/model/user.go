package model

import "time"

// User is a credential record in the users table. Everything the app shows
// about a customer lives in Account, which is part of the customer state.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Phone        string `gorm:"size:20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Account is the customer-facing profile, kept in the state store and
// mirrored to the "account" persistence key.
type Account struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	WhatsApp        string `json:"whatsapp"`
	Address         string `json:"address"`
	OptionalAddress string `json:"optional_address"`
	Joined          string `json:"joined"`
}

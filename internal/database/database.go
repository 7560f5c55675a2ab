package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/exoticflavors/exotic-storefront/internal/model"
)

var DB *gorm.DB

// ConnectDB opens the catalog database from DATABASE_URL and runs the
// migrations. Fatal on failure: the storefront cannot serve a menu without
// its products table.
func ConnectDB() {
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set in environment or .env")
	}

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	fmt.Println("Database connection established.")

	fmt.Println("Running database migrations...")
	err = DB.AutoMigrate(
		&model.User{}, &model.Product{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	fmt.Println("Migrations completed.")
}

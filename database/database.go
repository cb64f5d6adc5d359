package database

import (
	"fmt"
	"log"
	"os"

	"github.com/slotswap/slotswap_backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect establishes a connection to the database
func Connect() {
	var err error

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		user = "postgres"
	}

	password := os.Getenv("DB_PASS")
	if password == "" {
		password = "postgres"
	}

	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "slotswap"
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, user, password, dbname, port)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")
}

// Migrate automatically migrates the database schema
func Migrate() {
	DB.AutoMigrate(&models.User{}, &models.Event{}, &models.SwapRequest{})
	log.Println("Database migration completed")
}

// Recover resets slots left LOCKED by a swap that was interrupted mid-commit.
// LOCKED is only ever set on a SWAPPABLE slot inside a swap transaction, so
// at startup no transaction can be in flight and any LOCKED row goes back to
// SWAPPABLE.
func Recover() {
	result := DB.Model(&models.Event{}).
		Where("status = ?", models.StatusLocked).
		Update("status", models.StatusSwappable)
	if result.Error != nil {
		log.Fatal("Failed to recover locked slots:", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Recovered %d slots left locked by an interrupted swap", result.RowsAffected)
	}
}

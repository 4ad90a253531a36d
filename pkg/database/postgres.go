package database

import (
	"log"

	"github.com/alxtravel/travel-booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Listing{}, &models.Booking{}, &models.Review{}, &models.Payment{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Unique index: prevents two concurrent initiations from both persisting
	// a payment for the same booking
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_payment_booking
		ON payments (booking_id)
	`)

	return db
}

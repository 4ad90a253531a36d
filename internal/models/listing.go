package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Listing struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Title         string          `gorm:"not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	Location      string          `gorm:"not null" json:"location"`
	PricePerNight decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_per_night"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateListingRequest struct {
	Title         string          `json:"title" validate:"required"`
	Description   string          `json:"description"`
	Location      string          `json:"location" validate:"required"`
	PricePerNight decimal.Decimal `json:"price_per_night" validate:"gte=0"`
}

type UpdateListingRequest struct {
	Title         string          `json:"title" validate:"required"`
	Description   string          `json:"description"`
	Location      string          `json:"location" validate:"required"`
	PricePerNight decimal.Decimal `json:"price_per_night" validate:"gte=0"`
}

type CreateBookingRequest struct {
	UserID    string    `json:"user_id" validate:"required"`
	UserEmail string    `json:"user_email" validate:"required,email"`
	ListingID uint      `json:"listing_id" validate:"required"`
	CheckIn   time.Time `json:"check_in" validate:"required"`
	CheckOut  time.Time `json:"check_out" validate:"required,gtfield=CheckIn"`
}

type CreateReviewRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

type InitiatePaymentRequest struct {
	UserID   string           `json:"user_id" validate:"required"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Currency string           `json:"currency,omitempty"`
}

type SendTestEmailRequest struct {
	BookingID uint   `json:"booking_id" validate:"required"`
	ToEmail   string `json:"to_email,omitempty"`
}

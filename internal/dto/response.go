package dto

import (
	"fmt"
	"time"

	"github.com/alxtravel/travel-booking-service/internal/models"
	"github.com/shopspring/decimal"
)

type ListingResponse struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	PriceDisplay  string          `json:"price_display"`
	CreatedAt     time.Time       `json:"created_at"`
}

type BookingResponse struct {
	ID           uint      `json:"id"`
	UserID       string    `json:"user_id"`
	UserEmail    string    `json:"user_email"`
	ListingID    uint      `json:"listing_id"`
	ListingTitle string    `json:"listing_title,omitempty"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	ListingID uint      `json:"listing_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type PaymentResponse struct {
	ID               uint                 `json:"id"`
	UserID           string               `json:"user_id"`
	BookingID        uint                 `json:"booking_id"`
	BookingReference string               `json:"booking_reference"`
	Amount           decimal.Decimal      `json:"amount"`
	TransactionID    string               `json:"transaction_id"`
	Status           models.PaymentStatus `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
}

type InitiatePaymentResponse struct {
	Payment     PaymentResponse `json:"payment"`
	CheckoutURL string          `json:"checkout_url"`
}

type VerifyPaymentResponse struct {
	Status  string          `json:"status"`
	Payment PaymentResponse `json:"payment"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToListingResponse(l *models.Listing) ListingResponse {
	return ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Location:      l.Location,
		PricePerNight: l.PricePerNight,
		PriceDisplay:  fmt.Sprintf("$%s per night", l.PricePerNight.StringFixed(2)),
		CreatedAt:     l.CreatedAt,
	}
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		UserEmail: b.UserEmail,
		ListingID: b.ListingID,
		CheckIn:   b.CheckIn,
		CheckOut:  b.CheckOut,
		CreatedAt: b.CreatedAt,
	}
	if b.Listing != nil {
		resp.ListingTitle = b.Listing.Title
	}
	return resp
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ListingID: r.ListingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func ToPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		BookingID:        p.BookingID,
		BookingReference: p.BookingReference,
		Amount:           p.Amount,
		TransactionID:    p.TransactionID,
		Status:           p.Status,
		CreatedAt:        p.CreatedAt,
	}
}

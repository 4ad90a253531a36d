package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alxtravel/travel-booking-service/internal/models"
	"github.com/alxtravel/travel-booking-service/internal/repository"
)

var ErrBookingNotFound = errors.New("booking not found")

type BookingService interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, id uint) error
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
}

func NewBookingService(bookingRepo repository.BookingRepository, listingRepo repository.ListingRepository) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, booking *models.Booking) error {
	listing, err := s.listingRepo.FindByID(ctx, booking.ListingID)
	if err != nil {
		return ErrListingNotFound
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	booking.Listing = listing
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx)
}

func (s *bookingService) DeleteBooking(ctx context.Context, id uint) error {
	if _, err := s.bookingRepo.FindByID(ctx, id); err != nil {
		return ErrBookingNotFound
	}
	return s.bookingRepo.Delete(ctx, id)
}

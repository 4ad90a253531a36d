package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alxtravel/travel-booking-service/internal/models"
	"github.com/alxtravel/travel-booking-service/internal/repository"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingService interface {
	CreateListing(ctx context.Context, listing *models.Listing) error
	GetListing(ctx context.Context, id uint) (*models.Listing, error)
	ListListings(ctx context.Context) ([]models.Listing, error)
	UpdateListing(ctx context.Context, listing *models.Listing) error
	DeleteListing(ctx context.Context, id uint) error
}

type listingService struct {
	repo repository.ListingRepository
}

func NewListingService(repo repository.ListingRepository) ListingService {
	return &listingService{repo: repo}
}

func (s *listingService) CreateListing(ctx context.Context, listing *models.Listing) error {
	if err := s.repo.Create(ctx, listing); err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (s *listingService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

func (s *listingService) ListListings(ctx context.Context) ([]models.Listing, error) {
	return s.repo.FindAll(ctx)
}

func (s *listingService) UpdateListing(ctx context.Context, listing *models.Listing) error {
	if _, err := s.repo.FindByID(ctx, listing.ID); err != nil {
		return ErrListingNotFound
	}
	if err := s.repo.Update(ctx, listing); err != nil {
		return fmt.Errorf("update listing: %w", err)
	}
	return nil
}

func (s *listingService) DeleteListing(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrListingNotFound
	}
	return s.repo.Delete(ctx, id)
}

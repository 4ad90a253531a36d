package service

import (
	"context"
	"fmt"

	"github.com/alxtravel/travel-booking-service/internal/models"
	"github.com/alxtravel/travel-booking-service/internal/repository"
)

type ReviewService interface {
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviews(ctx context.Context, listingID uint) ([]models.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	listingRepo repository.ListingRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, listingRepo repository.ListingRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, review *models.Review) error {
	if _, err := s.listingRepo.FindByID(ctx, review.ListingID); err != nil {
		return ErrListingNotFound
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (s *reviewService) ListReviews(ctx context.Context, listingID uint) ([]models.Review, error) {
	if _, err := s.listingRepo.FindByID(ctx, listingID); err != nil {
		return nil, ErrListingNotFound
	}
	return s.reviewRepo.FindByListingID(ctx, listingID)
}

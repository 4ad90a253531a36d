package repository

import (
	"context"

	"github.com/alxtravel/travel-booking-service/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByBookingAndUser(ctx context.Context, bookingID uint, userID string) (*models.Payment, error)
	ExistsForBooking(ctx context.Context, bookingID uint) (bool, error)
	FindByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, paymentID uint, status models.PaymentStatus) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByBookingAndUser returns the most recent payment for the booking,
// scoped to the owning user.
func (r *paymentRepository) FindByBookingAndUser(ctx context.Context, bookingID uint, userID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND user_id = ?", bookingID, userID).
		Order("id DESC").
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ExistsForBooking(ctx context.Context, bookingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count > 0, err
}

func (r *paymentRepository) FindByStatus(ctx context.Context, status models.PaymentStatus) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, paymentID uint, status models.PaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status).Error
}

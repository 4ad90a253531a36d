package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/alxtravel/travel-booking-service/internal/dto"
	"github.com/alxtravel/travel-booking-service/internal/models"
	"github.com/alxtravel/travel-booking-service/internal/repository"
	"github.com/alxtravel/travel-booking-service/pkg/chapa"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentExists       = errors.New("payment already exists")
	ErrPaymentInitiation   = errors.New("payment initiation failed")
	ErrPaymentVerification = errors.New("payment verification failed")
)

const (
	DefaultCurrency            = "ETB"
	RoutingKeyPaymentCompleted = "payment.completed"
)

// Gateway is the slice of the Chapa client the payment flow needs.
type Gateway interface {
	Initialize(ctx context.Context, req *chapa.InitializeRequest) (*chapa.Response, error)
	Verify(ctx context.Context, txRef string) (*chapa.Response, error)
}

// EventPublisher hands messages to the queue; *rabbitmq.Publisher satisfies it.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type PaymentService interface {
	InitiatePayment(ctx context.Context, bookingID uint, userID string, amount *decimal.Decimal, currency string) (*models.Payment, string, error)
	VerifyPayment(ctx context.Context, bookingID uint, userID string) (*models.Payment, error)
	ListVerifiedPayments(ctx context.Context) ([]models.Payment, error)
	QueueConfirmationEmail(bookingID uint, toEmail string) error
}

type paymentService struct {
	paymentRepo   repository.PaymentRepository
	bookingRepo   repository.BookingRepository
	gateway       Gateway
	publisher     EventPublisher
	publicBaseURL string
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	gateway Gateway,
	publisher EventPublisher,
	publicBaseURL string,
) PaymentService {
	return &paymentService{
		paymentRepo:   paymentRepo,
		bookingRepo:   bookingRepo,
		gateway:       gateway,
		publisher:     publisher,
		publicBaseURL: publicBaseURL,
	}
}

// InitiatePayment starts a checkout session for the booking and persists a
// Pending payment carrying the gateway's transaction reference. Nothing is
// persisted when the gateway rejects or cannot be reached, so the caller may
// simply retry.
func (s *paymentService) InitiatePayment(ctx context.Context, bookingID uint, userID string, amount *decimal.Decimal, currency string) (*models.Payment, string, error) {
	booking, err := s.bookingRepo.FindByIDAndUser(ctx, bookingID, userID)
	if err != nil {
		return nil, "", ErrBookingNotFound
	}

	exists, err := s.paymentRepo.ExistsForBooking(ctx, bookingID)
	if err != nil {
		return nil, "", fmt.Errorf("check existing payment: %w", err)
	}
	if exists {
		return nil, "", ErrPaymentExists
	}

	var amt decimal.Decimal
	switch {
	case amount != nil:
		amt = *amount
	case booking.Listing != nil:
		amt = booking.Listing.PricePerNight.Mul(decimal.NewFromInt(int64(booking.Nights())))
	default:
		return nil, "", fmt.Errorf("booking %d has no listing to derive an amount from", booking.ID)
	}

	if currency == "" {
		currency = DefaultCurrency
	}

	// Timestamp suffix keeps the reference unique across retries after a
	// failed attempt that never persisted.
	reference := fmt.Sprintf("booking_%d_%d", booking.ID, time.Now().Unix())

	resp, err := s.gateway.Initialize(ctx, &chapa.InitializeRequest{
		Amount:      amt.StringFixed(2),
		Currency:    currency,
		Email:       booking.UserEmail,
		TxRef:       reference,
		CallbackURL: fmt.Sprintf("%s/api/v1/payments/verify/%d", s.publicBaseURL, booking.ID),
	})
	if err != nil {
		log.Printf("[Payments] chapa initialize for booking %d: %v", booking.ID, err)
		return nil, "", ErrPaymentInitiation
	}
	if !resp.IsSuccess() || resp.Data == nil {
		log.Printf("[Payments] chapa initialize rejected for booking %d: %s", booking.ID, resp.Message)
		return nil, "", ErrPaymentInitiation
	}

	payment := &models.Payment{
		UserID:           userID,
		BookingID:        booking.ID,
		BookingReference: reference,
		Amount:           amt,
		TransactionID:    resp.Data.TxRef,
		Status:           models.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		// A concurrent initiation won the unique index on booking_id
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrPaymentExists
		}
		return nil, "", fmt.Errorf("create payment: %w", err)
	}

	return payment, resp.Data.CheckoutURL, nil
}

// VerifyPayment asks the gateway for the authoritative transaction state and
// moves the payment to Completed or Failed. Completed and Failed are
// terminal: a repeated call returns the stored state without touching the
// gateway or enqueuing another email.
func (s *paymentService) VerifyPayment(ctx context.Context, bookingID uint, userID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByBookingAndUser(ctx, bookingID, userID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	if payment.Status.IsTerminal() {
		return payment, nil
	}

	resp, err := s.gateway.Verify(ctx, payment.TransactionID)
	if err != nil {
		// Payment stays Pending; the caller retries by re-invoking verify
		log.Printf("[Payments] chapa verify for booking %d: %v", bookingID, err)
		return nil, ErrPaymentVerification
	}

	if !resp.IsSuccess() {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, models.PaymentFailed); err != nil {
			return nil, fmt.Errorf("mark payment failed: %w", err)
		}
		payment.Status = models.PaymentFailed
		return payment, nil
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, models.PaymentCompleted); err != nil {
		return nil, fmt.Errorf("mark payment completed: %w", err)
	}
	payment.Status = models.PaymentCompleted

	// Fire-and-forget: enqueue failure never fails the verification
	if err := s.QueueConfirmationEmail(payment.BookingID, ""); err != nil {
		log.Printf("[Payments] failed to enqueue confirmation email for booking %d: %v", payment.BookingID, err)
	}

	return payment, nil
}

func (s *paymentService) ListVerifiedPayments(ctx context.Context) ([]models.Payment, error) {
	return s.paymentRepo.FindByStatus(ctx, models.PaymentCompleted)
}

func (s *paymentService) QueueConfirmationEmail(bookingID uint, toEmail string) error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.Publish(RoutingKeyPaymentCompleted, dto.PaymentCompletedMessage{
		BookingID: bookingID,
		ToEmail:   toEmail,
	})
}

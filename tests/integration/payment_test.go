//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alxtravel/travel-booking-service/internal/models"
	"github.com/alxtravel/travel-booking-service/internal/repository"
	"github.com/alxtravel/travel-booking-service/internal/service"
	"github.com/alxtravel/travel-booking-service/pkg/chapa"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGateway always answers; no live Chapa involved.
type stubGateway struct {
	initStatus   string
	verifyStatus string
}

func (g *stubGateway) Initialize(ctx context.Context, req *chapa.InitializeRequest) (*chapa.Response, error) {
	return &chapa.Response{
		Status: g.initStatus,
		Data: &chapa.TransactionData{
			CheckoutURL: "https://checkout.chapa.co/checkout/payment/stub",
			TxRef:       req.TxRef,
		},
	}, nil
}

func (g *stubGateway) Verify(ctx context.Context, txRef string) (*chapa.Response, error) {
	return &chapa.Response{Status: g.verifyStatus}, nil
}

type recordingPublisher struct {
	mu    sync.Mutex
	count int
}

func (p *recordingPublisher) Publish(routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++
	return nil
}

func createTestBooking(t *testing.T, userID string, pricePerNight int64, nights int) *models.Booking {
	t.Helper()
	listing := &models.Listing{
		Title:         "Lakeside Cabin",
		Description:   "Two-bed cabin by the lake",
		Location:      "Bahir Dar",
		PricePerNight: decimal.NewFromInt(pricePerNight),
	}
	require.NoError(t, testDB.Create(listing).Error)

	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		UserID:    userID,
		UserEmail: fmt.Sprintf("%s@example.com", userID),
		ListingID: listing.ID,
		CheckIn:   checkIn,
		CheckOut:  checkIn.AddDate(0, 0, nights),
	}
	require.NoError(t, testDB.Create(booking).Error)
	return booking
}

func newPaymentService(gateway service.Gateway, publisher service.EventPublisher) service.PaymentService {
	bookingRepo := repository.NewBookingRepository(testDB)
	paymentRepo := repository.NewPaymentRepository(testDB)
	return service.NewPaymentService(paymentRepo, bookingRepo, gateway, publisher, "http://localhost:8080")
}

// Full flow: initiate (amount derived), verify (completed), one notification.
func TestPaymentFlow(t *testing.T) {
	cleanTables()
	booking := createTestBooking(t, "user-flow", 100, 3)
	publisher := &recordingPublisher{}
	svc := newPaymentService(&stubGateway{initStatus: "success", verifyStatus: "success"}, publisher)

	payment, checkoutURL, err := svc.InitiatePayment(context.Background(), booking.ID, "user-flow", nil, "")
	require.NoError(t, err)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(300)), "3 nights at 100")
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.NotEmpty(t, checkoutURL)

	verified, err := svc.VerifyPayment(context.Background(), booking.ID, "user-flow")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, verified.Status)
	assert.Equal(t, 1, publisher.count)

	// Status persisted
	var stored models.Payment
	require.NoError(t, testDB.First(&stored, payment.ID).Error)
	assert.Equal(t, models.PaymentCompleted, stored.Status)

	// Re-verify is a no-op on a terminal payment
	again, err := svc.VerifyPayment(context.Background(), booking.ID, "user-flow")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, again.Status)
	assert.Equal(t, 1, publisher.count)
}

// Second initiation for the same booking is rejected.
func TestDuplicatePaymentPrevention(t *testing.T) {
	cleanTables()
	booking := createTestBooking(t, "user-dup", 100, 2)
	svc := newPaymentService(&stubGateway{initStatus: "success", verifyStatus: "success"}, &recordingPublisher{})

	_, _, err := svc.InitiatePayment(context.Background(), booking.ID, "user-dup", nil, "")
	require.NoError(t, err)

	_, _, err = svc.InitiatePayment(context.Background(), booking.ID, "user-dup", nil, "")
	assert.ErrorIs(t, err, service.ErrPaymentExists)
}

// Concurrent initiations for one booking → exactly one payment row survives
// the unique index.
func TestConcurrentPaymentInitiation(t *testing.T) {
	cleanTables()
	booking := createTestBooking(t, "user-race", 100, 2)
	svc := newPaymentService(&stubGateway{initStatus: "success", verifyStatus: "success"}, &recordingPublisher{})

	total := 10
	var wg sync.WaitGroup
	errs := make(chan error, total)

	wg.Add(total)
	for i := 0; i < total; i++ {
		go func() {
			defer wg.Done()
			if _, _, err := svc.InitiatePayment(context.Background(), booking.ID, "user-race", nil, ""); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	rejected := 0
	for err := range errs {
		assert.ErrorIs(t, err, service.ErrPaymentExists)
		rejected++
	}
	assert.Equal(t, total-1, rejected, "exactly one initiation should win")

	var count int64
	testDB.Model(&models.Payment{}).Where("booking_id = ?", booking.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

// Another user cannot pay or verify someone else's booking.
func TestPaymentOwnership(t *testing.T) {
	cleanTables()
	booking := createTestBooking(t, "user-owner", 100, 2)
	svc := newPaymentService(&stubGateway{initStatus: "success", verifyStatus: "success"}, &recordingPublisher{})

	_, _, err := svc.InitiatePayment(context.Background(), booking.ID, "user-intruder", nil, "")
	assert.ErrorIs(t, err, service.ErrBookingNotFound)

	_, _, err = svc.InitiatePayment(context.Background(), booking.ID, "user-owner", nil, "")
	require.NoError(t, err)

	_, err = svc.VerifyPayment(context.Background(), booking.ID, "user-intruder")
	assert.ErrorIs(t, err, service.ErrPaymentNotFound)
}

// Gateway rejection at initiation leaves no row behind.
func TestFailedInitiationPersistsNothing(t *testing.T) {
	cleanTables()
	booking := createTestBooking(t, "user-reject", 100, 2)
	svc := newPaymentService(&stubGateway{initStatus: "failed", verifyStatus: "success"}, &recordingPublisher{})

	_, _, err := svc.InitiatePayment(context.Background(), booking.ID, "user-reject", nil, "")
	assert.ErrorIs(t, err, service.ErrPaymentInitiation)

	var count int64
	testDB.Model(&models.Payment{}).Where("booking_id = ?", booking.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

// Gateway rejection at verification marks the payment Failed — terminally.
func TestFailedVerification(t *testing.T) {
	cleanTables()
	booking := createTestBooking(t, "user-fail", 100, 2)
	publisher := &recordingPublisher{}

	okSvc := newPaymentService(&stubGateway{initStatus: "success", verifyStatus: "success"}, publisher)
	_, _, err := okSvc.InitiatePayment(context.Background(), booking.ID, "user-fail", nil, "")
	require.NoError(t, err)

	failSvc := newPaymentService(&stubGateway{initStatus: "success", verifyStatus: "failed"}, publisher)
	verified, err := failSvc.VerifyPayment(context.Background(), booking.ID, "user-fail")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, verified.Status)
	assert.Equal(t, 0, publisher.count)

	// A later success answer from the gateway must not resurrect it
	resurrect, err := okSvc.VerifyPayment(context.Background(), booking.ID, "user-fail")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, resurrect.Status)
}

package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/alxtravel/travel-booking-service/internal/dto"
	"github.com/alxtravel/travel-booking-service/internal/repository"
	"github.com/alxtravel/travel-booking-service/pkg/mailer"
	amqp "github.com/rabbitmq/amqp091-go"
)

type NotificationConsumer struct {
	bookingRepo repository.BookingRepository
	mailer      mailer.Mailer
}

func NewNotificationConsumer(bookingRepo repository.BookingRepository, m mailer.Mailer) *NotificationConsumer {
	return &NotificationConsumer{bookingRepo: bookingRepo, mailer: m}
}

// Start listens for payment.completed messages and sends confirmation emails.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Println("[Notifier] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var payload dto.PaymentCompletedMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		log.Printf("[Notifier] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	// Send failures are logged, never retried: the payment itself already
	// succeeded and a redelivery loop would spam the recipient.
	if err := nc.SendConfirmation(context.Background(), payload.BookingID, payload.ToEmail); err != nil {
		log.Printf("[Notifier] booking %d: %v", payload.BookingID, err)
		msg.Ack(false)
		return
	}

	log.Printf("[Notifier] sent payment confirmation for booking %d", payload.BookingID)
	msg.Ack(false)
}

// SendConfirmation looks up the booking and mails the fixed confirmation
// template. A missing booking is reported as an error but is non-fatal to
// the payment flow that queued it.
func (nc *NotificationConsumer) SendConfirmation(ctx context.Context, bookingID uint, toEmail string) error {
	booking, err := nc.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("booking %d not found", bookingID)
	}

	recipient := toEmail
	if recipient == "" {
		recipient = booking.UserEmail
	}

	subject := fmt.Sprintf("Payment Confirmation for Booking #%d", booking.ID)
	body := fmt.Sprintf("Dear %s, your booking is confirmed.", booking.UserID)

	if err := nc.mailer.Send(recipient, subject, body); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	return nil
}

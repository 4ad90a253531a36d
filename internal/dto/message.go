package dto

// PaymentCompletedMessage is the queue payload for the confirmation-email
// task. ToEmail overrides the booking owner's address when set.
type PaymentCompletedMessage struct {
	BookingID uint   `json:"booking_id"`
	ToEmail   string `json:"to_email,omitempty"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// IsTerminal reports whether the status can no longer change.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

type Payment struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           string          `gorm:"not null" json:"user_id"`
	BookingID        uint            `gorm:"not null" json:"booking_id"`
	BookingReference string          `gorm:"size:100;not null;uniqueIndex" json:"booking_reference"`
	Amount           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	TransactionID    string          `gorm:"size:100" json:"transaction_id"`
	Status           PaymentStatus   `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

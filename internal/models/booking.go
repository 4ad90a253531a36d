package models

import "time"

type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	UserEmail string    `gorm:"not null" json:"user_email"`
	ListingID uint      `gorm:"not null" json:"listing_id"`
	CheckIn   time.Time `gorm:"not null" json:"check_in"`
	CheckOut  time.Time `gorm:"not null" json:"check_out"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
}

// Nights returns the length of stay in whole days.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

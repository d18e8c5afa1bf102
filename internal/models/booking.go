package models

import "time"

// Booking is one document of the jobs collection.
type Booking struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Date      string    `json:"date"`
	Service   Service   `json:"service"`
	OwnerID   string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingFilter narrows a jobs query. The zero value matches every record.
type BookingFilter struct {
	OwnerID string
}

func (f BookingFilter) Match(b Booking) bool {
	return f.OwnerID == "" || f.OwnerID == b.OwnerID
}

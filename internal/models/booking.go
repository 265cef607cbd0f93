package models

import (
	"time"
)

const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking is a user's claim on one unit of an event's capacity. The user
// fields are a snapshot taken at booking time and are never re-synced.
type Booking struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	BookingDate time.Time `json:"bookingDate"`
	Status      string    `json:"status"`
}

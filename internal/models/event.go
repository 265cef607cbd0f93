package models

import (
	"time"
)

// Event is a bookable occasion with a fixed total capacity.
// Date is stored zero-padded (YYYY-MM-DD) so lexicographic order matches
// chronological order; Time is HH:MM.
type Event struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Location       string    `json:"location"`
	Capacity       int       `json:"capacity"`
	RemainingSlots int       `json:"remainingSlots"`
	Image          string    `json:"image,omitempty"`
	Category       string    `json:"category,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EventInput carries the caller-supplied fields for a new event. The ID,
// timestamps and remaining-slot counter are assigned by the catalog.
type EventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category,omitempty"`
}

// EventPatch is a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	Location    *string `json:"location,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Image       *string `json:"image,omitempty"`
	Category    *string `json:"category,omitempty"`
}

package model

import (
	"pawstay/shared/timezone"
	"time"
)

const (
	EntityName = "booking"

	StoreKeyBookings = "bookings"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "inProgress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Booking references its pet by name only.
type Booking struct {
	ID              string    `json:"id"`
	PetName         string    `json:"petName"`
	PetSpecies      string    `json:"petSpecies"`
	OwnerName       string    `json:"ownerName"`
	OwnerEmail      string    `json:"ownerEmail"`
	OwnerPhone      string    `json:"ownerPhone"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	Status          Status    `json:"status"`
	SpecialRequests *string   `json:"specialRequests,omitempty"`
	Grooming        bool      `json:"grooming"`
	PickupMiles     float64   `json:"pickupMiles"`
	TotalPrice      float64   `json:"totalPrice"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Nights is the calendar day difference between start and end.
func (b Booking) Nights() int {
	return timezone.DaysBetween(b.StartDate, b.EndDate)
}

// Occupies reports whether the booking holds a spot on day. Both endpoints count.
func (b Booking) Occupies(day time.Time) bool {
	if b.Status == StatusCancelled {
		return false
	}

	d := timezone.StartOfDay(day)

	return !d.Before(timezone.StartOfDay(b.StartDate)) && !d.After(timezone.StartOfDay(b.EndDate))
}

// IsActive is false once a booking is cancelled or completed.
func (b Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

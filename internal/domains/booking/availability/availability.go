// Package availability derives per-day boarding capacity from a booking collection.
// Every call scans the whole collection; no index is kept.
package availability

import (
	"pawstay/internal/domains/booking/model"
	"pawstay/shared/timezone"
	"time"
)

const DefaultCapacity = 5

type DateAvailability struct {
	Date           time.Time `json:"date"`
	AvailableSpots int       `json:"availableSpots"`
	TotalSpots     int       `json:"totalSpots"`
}

func (d DateAvailability) IsAvailable() bool {
	return d.AvailableSpots > 0
}

// Calculate counts the bookings occupying date. AvailableSpots stays within [0, totalSpots].
func Calculate(bookings []model.Booking, date time.Time, totalSpots int) DateAvailability {
	if totalSpots < 0 {
		totalSpots = 0
	}

	occupied := 0

	for _, booking := range bookings {
		if booking.Occupies(date) {
			occupied++
		}
	}

	return DateAvailability{
		Date:           timezone.StartOfDay(date),
		AvailableSpots: max(0, totalSpots-occupied),
		TotalSpots:     totalSpots,
	}
}

func IsDateAvailable(bookings []model.Booking, date time.Time, totalSpots int) bool {
	return Calculate(bookings, date, totalSpots).IsAvailable()
}

// Range returns one entry per day starting at from.
func Range(bookings []model.Booking, from time.Time, days, totalSpots int) []DateAvailability {
	if days < 0 {
		days = 0
	}

	res := make([]DateAvailability, 0, days)
	start := timezone.StartOfDay(from)

	for i := range days {
		res = append(res, Calculate(bookings, start.AddDate(0, 0, i), totalSpots))
	}

	return res
}

// FirstFullDay returns the first day in [start, end] without a free spot.
func FirstFullDay(bookings []model.Booking, start, end time.Time, totalSpots int) (time.Time, bool) {
	for d := timezone.StartOfDay(start); !d.After(timezone.StartOfDay(end)); d = d.AddDate(0, 0, 1) {
		if !IsDateAvailable(bookings, d, totalSpots) {
			return d, true
		}
	}

	return time.Time{}, false
}

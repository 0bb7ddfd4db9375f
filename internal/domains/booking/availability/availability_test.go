package availability_test

import (
	"fmt"
	"math/rand"
	"pawstay/internal/domains/booking/availability"
	"pawstay/internal/domains/booking/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(start, end time.Time, status model.Status) model.Booking {
	return model.Booking{StartDate: start, EndDate: end, Status: status}
}

func TestCalculate(t *testing.T) {
	bookings := []model.Booking{
		stay(day(6, 1), day(6, 3), model.StatusConfirmed),
		stay(day(6, 2), day(6, 2), model.StatusPending),
		stay(day(6, 2), day(6, 5), model.StatusCancelled),
		stay(day(6, 3), day(6, 6), model.StatusInProgress),
	}

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{name: "before any stay", date: day(5, 31), want: 5},
		{name: "first day counts", date: day(6, 1), want: 4},
		{name: "cancelled stays are ignored", date: day(6, 2), want: 3},
		{name: "last day counts", date: day(6, 3), want: 3},
		{name: "time of day is ignored", date: day(6, 6).Add(23 * time.Hour), want: 4},
		{name: "after every stay", date: day(6, 7), want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := availability.Calculate(bookings, tt.date, availability.DefaultCapacity)

			assert.Equal(t, tt.want, res.AvailableSpots)
			assert.Equal(t, availability.DefaultCapacity, res.TotalSpots)
		})
	}
}

func TestCalculate_NeverNegative(t *testing.T) {
	var bookings []model.Booking
	for range 8 {
		bookings = append(bookings, stay(day(7, 1), day(7, 10), model.StatusConfirmed))
	}

	res := availability.Calculate(bookings, day(7, 4), availability.DefaultCapacity)

	assert.Equal(t, 0, res.AvailableSpots)
	assert.False(t, res.IsAvailable())
	assert.False(t, availability.IsDateAvailable(bookings, day(7, 4), availability.DefaultCapacity))
}

// Random booking sets must agree with a direct count.
func TestCalculate_MatchesDirectCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	statuses := []model.Status{
		model.StatusPending, model.StatusConfirmed, model.StatusInProgress, model.StatusCompleted, model.StatusCancelled,
	}

	for iteration := range 200 {
		var bookings []model.Booking

		for range rng.Intn(12) {
			start := day(8, 1).AddDate(0, 0, rng.Intn(20))
			end := start.AddDate(0, 0, rng.Intn(6))
			bookings = append(bookings, stay(start, end, statuses[rng.Intn(len(statuses))]))
		}

		date := day(8, 1).AddDate(0, 0, rng.Intn(28))

		count := 0
		for _, b := range bookings {
			if b.Status != model.StatusCancelled && !date.Before(b.StartDate) && !date.After(b.EndDate) {
				count++
			}
		}

		res := availability.Calculate(bookings, date, availability.DefaultCapacity)

		t.Run(fmt.Sprintf("iteration %d", iteration), func(t *testing.T) {
			assert.Equal(t, max(0, availability.DefaultCapacity-count), res.AvailableSpots)
			assert.Equal(t, res.AvailableSpots > 0, availability.IsDateAvailable(bookings, date, availability.DefaultCapacity))
			assert.GreaterOrEqual(t, res.AvailableSpots, 0)
			assert.LessOrEqual(t, res.AvailableSpots, res.TotalSpots)
		})
	}
}

func TestRange(t *testing.T) {
	bookings := []model.Booking{stay(day(6, 2), day(6, 3), model.StatusConfirmed)}

	res := availability.Range(bookings, day(6, 1).Add(15*time.Hour), 4, 2)

	require.Len(t, res, 4)
	assert.Equal(t, day(6, 1), res[0].Date)
	assert.Equal(t, []int{2, 1, 1, 2}, []int{res[0].AvailableSpots, res[1].AvailableSpots, res[2].AvailableSpots, res[3].AvailableSpots})

	assert.Empty(t, availability.Range(bookings, day(6, 1), -1, 2))
}

func TestFirstFullDay(t *testing.T) {
	bookings := []model.Booking{
		stay(day(6, 3), day(6, 4), model.StatusConfirmed),
		stay(day(6, 4), day(6, 6), model.StatusConfirmed),
	}

	full, ok := availability.FirstFullDay(bookings, day(6, 1), day(6, 10), 2)
	require.True(t, ok)
	assert.Equal(t, day(6, 4), full)

	_, ok = availability.FirstFullDay(bookings, day(6, 7), day(6, 10), 2)
	assert.False(t, ok)
}

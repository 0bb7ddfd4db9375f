package dto

import (
	"errors"
	"pawstay/internal/domains/booking/availability"
	"pawstay/internal/domains/booking/model"
	"pawstay/shared/constant"
	gDto "pawstay/shared/dto"
	"pawstay/shared/timezone"
	"time"

	"github.com/google/uuid"
)

var ErrEndBeforeStart = errors.New("end date must be after start date")

type StayRequest struct {
	PetSpecies  string  `json:"petSpecies"  validate:"required,oneof=cat dog"`
	StartDate   string  `json:"startDate"   validate:"required,day"`
	EndDate     string  `json:"endDate"     validate:"required,day"`
	Grooming    bool    `json:"grooming"`
	PickupMiles float64 `json:"pickupMiles" validate:"gte=0,lte=100"`
}

// Dates parses both days in the application timezone.
func (s *StayRequest) Dates() (start, end time.Time, err error) {
	start, err = timezone.Parse(constant.DayFormat, s.StartDate)
	if err != nil {
		return start, end, err
	}

	end, err = timezone.Parse(constant.DayFormat, s.EndDate)
	if err != nil {
		return start, end, err
	}

	if !end.After(start) {
		return start, end, ErrEndBeforeStart
	}

	return start, end, nil
}

type CreateBookingRequest struct {
	StayRequest
	PetName         string  `json:"petName"         validate:"required,max=50"`
	OwnerName       string  `json:"ownerName"       validate:"required,max=100"`
	OwnerEmail      string  `json:"ownerEmail"      validate:"required,email,max=100"`
	OwnerPhone      string  `json:"ownerPhone"      validate:"required,max=20"`
	SpecialRequests *string `json:"specialRequests" validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToModel() (model.Booking, error) {
	start, end, err := c.Dates()
	if err != nil {
		return model.Booking{}, err
	}

	booking := model.Booking{
		ID:              uuid.NewString(),
		PetName:         c.PetName,
		PetSpecies:      c.PetSpecies,
		OwnerName:       c.OwnerName,
		OwnerEmail:      c.OwnerEmail,
		OwnerPhone:      c.OwnerPhone,
		StartDate:       start,
		EndDate:         end,
		Status:          model.StatusPending,
		SpecialRequests: c.SpecialRequests,
		Grooming:        c.Grooming,
		PickupMiles:     c.PickupMiles,
		CreatedAt:       timezone.Now(),
	}

	booking.TotalPrice = model.Quote(c.PetSpecies, booking.Nights(), c.Grooming, c.PickupMiles).Total

	return booking, nil
}

type QuoteRequest = StayRequest

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed inProgress completed cancelled"`
}

// BookingFilter selects the list view. Empty View returns every booking.
type BookingFilter struct {
	View   string `validate:"omitempty,oneof=upcoming past"`
	Status string `validate:"omitempty,oneof=pending confirmed inProgress completed cancelled"`
}

const (
	ViewUpcoming = "upcoming"
	ViewPast     = "past"
)

type GetBookingsResponse struct {
	Bookings  []model.Booking `json:"bookings"`
	Total     int             `json:"total"`
	TotalPage int             `json:"totalPage"`
}

func (r *GetBookingsResponse) FromModels(bookings []model.Booking, q gDto.QueryParams) {
	r.Total = len(bookings)
	r.TotalPage = gDto.CalculateTotalPage(r.Total, q.Limit)
	r.Bookings = gDto.Paginate(bookings, q)
}

type AvailabilityResponse struct {
	availability.DateAvailability
	IsAvailable bool `json:"isAvailable"`
}

func (r *AvailabilityResponse) FromModel(day availability.DateAvailability) {
	r.DateAvailability = day
	r.IsAvailable = day.IsAvailable()
}

type AvailabilityRangeResponse struct {
	Days []AvailabilityResponse `json:"days"`
}

func (r *AvailabilityRangeResponse) FromModels(days []availability.DateAvailability) {
	r.Days = make([]AvailabilityResponse, len(days))
	for i, day := range days {
		r.Days[i].FromModel(day)
	}
}

package service

import (
	"context"
	"fmt"
	"pawstay/config"
	"pawstay/infras/otel"
	"pawstay/internal/domains/booking/availability"
	"pawstay/internal/domains/booking/model"
	"pawstay/internal/domains/booking/model/dto"
	"pawstay/shared"
	"pawstay/shared/constant"
	"pawstay/shared/failure"
	"pawstay/shared/logger"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	"pawstay/shared/timezone"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const managerName = "bookings"

type Booking interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Create(ctx context.Context, req dto.CreateBookingRequest) (model.Booking, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (model.Price, error)
	Get(ctx context.Context, id string) (model.Booking, error)
	GetAll(ctx context.Context, filter dto.BookingFilter) []model.Booking
	Upcoming(ctx context.Context) []model.Booking
	Past(ctx context.Context) []model.Booking
	UpdateStatus(ctx context.Context, id string, status model.Status) (model.Booking, error)
	Cancel(ctx context.Context, id string) (model.Booking, error)
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, date time.Time) availability.DateAvailability
	AvailabilityRange(ctx context.Context, from time.Time, days int) []availability.DateAvailability
	IsDateAvailable(ctx context.Context, date time.Time) bool
}

type serviceImpl struct {
	mu       sync.Mutex
	bookings []model.Booking
	capacity int
	store    store.Store
	hub      observer.Hub
	otel     otel.Otel
}

func New(cfg *config.Config, st store.Store, hub observer.Hub, otel otel.Otel) Booking {
	capacity := cfg.App.Boarding.Capacity
	if capacity <= 0 {
		capacity = availability.DefaultCapacity
	}

	return &serviceImpl{
		bookings: []model.Booking{},
		capacity: capacity,
		store:    st,
		hub:      hub,
		otel:     otel,
	}
}

func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, ok, err := store.Load[[]model.Booking](ctx, s.store, model.StoreKeyBookings)
	if ok && bookings != nil {
		s.bookings = bookings
	}

	log.Info().Int("bookings", len(s.bookings)).Msg("bookings loaded")

	return err
}

func (s *serviceImpl) Save(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx)
}

// Create prices the stay and rejects it when any day of the range is already full.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := req.ToModel()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid stay dates: %v", err)) //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if full, ok := availability.FirstFullDay(s.bookings, booking.StartDate, booking.EndDate, s.capacity); ok {
		return res, failure.Conflict("no boarding spots left on " + full.Format(constant.DayFormat)) //nolint:wrapcheck
	}

	s.bookings = shared.Prepend(s.bookings, booking)
	logger.Persistence(managerName, model.StoreKeyBookings, s.persist(ctx))

	scope.SetAttribute("booking.id", booking.ID)

	s.hub.Publish(observer.Change{
		Collection: observer.CollectionBookings,
		Action:     observer.ActionCreated,
		ID:         booking.ID,
		Detail:     summary(booking),
	})

	return booking, nil
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res model.Price, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := req.Dates()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid stay dates: %v", err)) //nolint:wrapcheck
	}

	return model.Quote(req.PetSpecies, timezone.DaysBetween(start, end), req.Grooming, req.PickupMiles), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res model.Booking, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return res, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	return s.bookings[idx], nil
}

func (s *serviceImpl) GetAll(ctx context.Context, filter dto.BookingFilter) []model.Booking {
	var res []model.Booking

	switch filter.View {
	case dto.ViewUpcoming:
		res = s.Upcoming(ctx)
	case dto.ViewPast:
		res = s.Past(ctx)
	default:
		s.mu.Lock()
		res = shared.Clone(s.bookings)
		s.mu.Unlock()
	}

	if filter.Status == "" {
		return res
	}

	return shared.Filter(res, func(b model.Booking) bool { return string(b.Status) == filter.Status })
}

// Upcoming returns active bookings starting today or later, soonest first.
func (s *serviceImpl) Upcoming(ctx context.Context) []model.Booking {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Upcoming")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	today := timezone.Today()

	res := shared.Filter(s.bookings, func(b model.Booking) bool { return isUpcoming(b, today) })
	slices.SortStableFunc(res, func(a, b model.Booking) int { return a.StartDate.Compare(b.StartDate) })

	return res
}

// Past returns every booking that is not upcoming, latest start first.
func (s *serviceImpl) Past(ctx context.Context) []model.Booking {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Past")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	today := timezone.Today()

	res := shared.Filter(s.bookings, func(b model.Booking) bool { return !isUpcoming(b, today) })
	slices.SortStableFunc(res, func(a, b model.Booking) int { return b.StartDate.Compare(a.StartDate) })

	return res
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, status model.Status) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return res, failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	s.bookings[idx].Status = status
	logger.Persistence(managerName, model.StoreKeyBookings, s.persist(ctx))

	s.hub.Publish(observer.Change{
		Collection: observer.CollectionBookings,
		Action:     observer.ActionUpdated,
		ID:         id,
		Detail:     string(status),
	})

	return s.bookings[idx], nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (model.Booking, error) {
	return s.UpdateStatus(ctx, id, model.StatusCancelled)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	s.bookings = slices.Delete(s.bookings, idx, idx+1)
	logger.Persistence(managerName, model.StoreKeyBookings, s.persist(ctx))

	s.hub.Publish(observer.Change{Collection: observer.CollectionBookings, Action: observer.ActionDeleted, ID: id})

	return nil
}

func (s *serviceImpl) Availability(ctx context.Context, date time.Time) availability.DateAvailability {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Availability")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return availability.Calculate(s.bookings, date, s.capacity)
}

func (s *serviceImpl) AvailabilityRange(ctx context.Context, from time.Time, days int) []availability.DateAvailability {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.AvailabilityRange")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return availability.Range(s.bookings, from, days, s.capacity)
}

func (s *serviceImpl) IsDateAvailable(ctx context.Context, date time.Time) bool {
	return s.Availability(ctx, date).IsAvailable()
}

func (s *serviceImpl) index(id string) int {
	return shared.IndexOf(s.bookings, func(b model.Booking) bool { return b.ID == id })
}

func (s *serviceImpl) persist(ctx context.Context) error {
	return store.Persist(ctx, s.store, model.StoreKeyBookings, s.bookings)
}

func isUpcoming(b model.Booking, today time.Time) bool {
	return b.IsActive() && !timezone.StartOfDay(b.StartDate).Before(today)
}

func summary(b model.Booking) string {
	return fmt.Sprintf("%s, %s to %s", b.PetName, b.StartDate.Format("Jan 2"), b.EndDate.Format("Jan 2"))
}

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pawstay/config"
	"pawstay/infras/otel/mocks"
	"pawstay/internal/domains/booking/model"
	"pawstay/internal/domains/booking/model/dto"
	"pawstay/internal/domains/booking/service"
	"pawstay/shared/constant"
	"pawstay/shared/failure"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	storeMocks "pawstay/shared/store/mocks"
	"pawstay/shared/timezone"
)

func newConfig(capacity int) *config.Config {
	cfg := &config.Config{}
	cfg.Store.Prefix = "pawstay"
	cfg.App.Boarding.Capacity = capacity

	return cfg
}

func newService(capacity int) (service.Booking, store.Store, observer.Hub) {
	cfg := newConfig(capacity)
	st := store.New(cfg, store.NewMemoryDriver(), mocks.NewOtel())
	hub := observer.New()

	return service.New(cfg, st, hub, mocks.NewOtel()), st, hub
}

func dayFromToday(offset int) string {
	return timezone.Today().AddDate(0, 0, offset).Format(constant.DayFormat)
}

func catStay(startOffset, nights int) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		StayRequest: dto.StayRequest{
			PetSpecies: "cat",
			StartDate:  dayFromToday(startOffset),
			EndDate:    dayFromToday(startOffset + nights),
		},
		PetName:    "Luna",
		OwnerName:  "Sam",
		OwnerEmail: "sam@example.com",
		OwnerPhone: "555-0100",
	}
}

func TestBookingService_Create(t *testing.T) {
	svc, st, hub := newService(5)

	var changes []observer.Change
	hub.Subscribe(func(c observer.Change) { changes = append(changes, c) })

	tests := []struct {
		name    string
		req     dto.CreateBookingRequest
		wantErr bool
		want    float64
	}{
		{
			name: "cat three nights no extras",
			req:  catStay(10, 3),
			want: 79.69,
		},
		{
			name: "dog with grooming and pickup",
			req: func() dto.CreateBookingRequest {
				req := catStay(20, 2)
				req.PetSpecies = "dog"
				req.Grooming = true
				req.PickupMiles = 4

				return req
			}(),
			want: 102,
		},
		{
			name: "end before start",
			req: func() dto.CreateBookingRequest {
				req := catStay(5, 1)
				req.StartDate, req.EndDate = req.EndDate, req.StartDate

				return req
			}(),
			wantErr: true,
		},
		{
			name: "malformed date",
			req: func() dto.CreateBookingRequest {
				req := catStay(5, 1)
				req.StartDate = "June 1st"

				return req
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 400, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, model.StatusPending, res.Status)
				assert.Equal(t, tt.want, res.TotalPrice)
			}
		})
	}

	all := svc.GetAll(context.Background(), dto.BookingFilter{})
	require.Len(t, all, 2)
	assert.Equal(t, "dog", all[0].PetSpecies, "newest booking is first")

	stored, ok, err := store.Load[[]model.Booking](context.Background(), st, model.StoreKeyBookings)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, stored, 2)

	require.Len(t, changes, 2)
	assert.Equal(t, observer.CollectionBookings, changes[0].Collection)
	assert.Contains(t, changes[0].Detail, "Luna")
}

func TestBookingService_CreateRejectsFullDays(t *testing.T) {
	svc, _, _ := newService(2)
	ctx := context.Background()

	_, err := svc.Create(ctx, catStay(3, 2))
	require.NoError(t, err)
	_, err = svc.Create(ctx, catStay(4, 2))
	require.NoError(t, err)

	_, err = svc.Create(ctx, catStay(1, 3))
	assert.Equal(t, 409, failure.GetCode(err))

	_, err = svc.Create(ctx, catStay(6, 2))
	assert.NoError(t, err, "day 6 is the last day of one stay only")
}

func TestBookingService_Quote(t *testing.T) {
	svc, _, _ := newService(5)

	price, err := svc.Quote(context.Background(), dto.QuoteRequest{PetSpecies: "cat", StartDate: "2024-06-01", EndDate: "2024-06-04"})
	require.NoError(t, err)
	assert.Equal(t, 3, price.Nights)
	assert.Equal(t, 79.69, price.Total)

	_, err = svc.Quote(context.Background(), dto.QuoteRequest{PetSpecies: "cat", StartDate: "2024-06-04", EndDate: "2024-06-04"})
	assert.Error(t, err)
}

func TestBookingService_UpcomingAndPast(t *testing.T) {
	svc, _, _ := newService(5)
	ctx := context.Background()

	later, err := svc.Create(ctx, catStay(9, 1))
	require.NoError(t, err)
	sooner, err := svc.Create(ctx, catStay(2, 1))
	require.NoError(t, err)
	cancelled, err := svc.Create(ctx, catStay(4, 1))
	require.NoError(t, err)
	old, err := svc.Create(ctx, catStay(-10, 2))
	require.NoError(t, err)
	older, err := svc.Create(ctx, catStay(-20, 2))
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	upcoming := svc.Upcoming(ctx)
	require.Len(t, upcoming, 2)
	assert.Equal(t, sooner.ID, upcoming[0].ID)
	assert.Equal(t, later.ID, upcoming[1].ID)

	past := svc.Past(ctx)
	require.Len(t, past, 3)
	assert.Equal(t, cancelled.ID, past[0].ID)
	assert.Equal(t, old.ID, past[1].ID)
	assert.Equal(t, older.ID, past[2].ID)

	byStatus := svc.GetAll(ctx, dto.BookingFilter{Status: string(model.StatusCancelled)})
	require.Len(t, byStatus, 1)
	assert.Equal(t, cancelled.ID, byStatus[0].ID)

	upcomingPending := svc.GetAll(ctx, dto.BookingFilter{View: dto.ViewUpcoming, Status: string(model.StatusPending)})
	assert.Len(t, upcomingPending, 2)
}

func TestBookingService_UpdateStatusAndDelete(t *testing.T) {
	svc, _, _ := newService(5)
	ctx := context.Background()

	booking, err := svc.Create(ctx, catStay(1, 2))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, booking.ID, model.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, updated.Status)

	_, err = svc.UpdateStatus(ctx, "missing", model.StatusConfirmed)
	assert.Equal(t, 404, failure.GetCode(err))

	require.NoError(t, svc.Delete(ctx, booking.ID))
	assert.Equal(t, 404, failure.GetCode(svc.Delete(ctx, booking.ID)))

	_, err = svc.Get(ctx, booking.ID)
	assert.Error(t, err)
}

func TestBookingService_Availability(t *testing.T) {
	svc, _, _ := newService(5)
	ctx := context.Background()

	for range 3 {
		_, err := svc.Create(ctx, catStay(1, 2))
		require.NoError(t, err)
	}

	tomorrow := timezone.Today().AddDate(0, 0, 1)

	day := svc.Availability(ctx, tomorrow.Add(13*time.Hour))
	assert.Equal(t, 2, day.AvailableSpots)
	assert.Equal(t, 5, day.TotalSpots)
	assert.True(t, svc.IsDateAvailable(ctx, tomorrow))

	days := svc.AvailabilityRange(ctx, timezone.Today(), 5)
	require.Len(t, days, 5)
	assert.Equal(t, []int{5, 2, 2, 2, 5}, []int{
		days[0].AvailableSpots, days[1].AvailableSpots, days[2].AvailableSpots, days[3].AvailableSpots, days[4].AvailableSpots,
	})
}

func TestBookingService_DefaultCapacity(t *testing.T) {
	svc, _, _ := newService(0)

	assert.Equal(t, 5, svc.Availability(context.Background(), timezone.Today()).TotalSpots)
}

func TestBookingService_LoadAndPersistenceFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storeMocks.NewMockStore(ctrl)
	svc := service.New(newConfig(5), mockStore, observer.New(), mocks.NewOtel())

	mockStore.EXPECT().
		Get(gomock.Any(), model.StoreKeyBookings, gomock.Any()).
		Return(errors.New("corrupt"))
	mockStore.EXPECT().
		Save(gomock.Any(), model.StoreKeyBookings, gomock.Any()).
		Return(errors.New("disk full")).
		Times(2)

	err := svc.Load(context.Background())
	assert.True(t, failure.IsPersistence(err))
	assert.Empty(t, svc.GetAll(context.Background(), dto.BookingFilter{}))

	_, err = svc.Create(context.Background(), catStay(1, 1))
	assert.NoError(t, err)

	assert.True(t, failure.IsPersistence(svc.Save(context.Background())))
}

func TestBookingService_TracesFailures(t *testing.T) {
	cfg := newConfig(1)
	ot, recorder := mocks.NewRecordingOtel()
	svc := service.New(cfg, store.New(cfg, store.NewMemoryDriver(), mocks.NewOtel()), observer.New(), ot)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, []string{"error:" + model.EntityName}, recorder.Entries(constant.OtelServiceScopeName+".Booking.Get"))

	_, err = svc.Create(context.Background(), catStay(2, 1))
	require.NoError(t, err)
	assert.Empty(t, recorder.Entries(constant.OtelServiceScopeName+".Booking.Create"))

	_, err = svc.Create(context.Background(), catStay(2, 1))
	require.Error(t, err)
	require.Len(t, recorder.Entries(constant.OtelServiceScopeName+".Booking.Create"), 1)
	assert.Contains(t, recorder.Entries(constant.OtelServiceScopeName+".Booking.Create")[0], "error:no boarding spots left")
}

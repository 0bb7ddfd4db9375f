package booking_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawstay/config"
	"pawstay/infras/otel/mocks"
	"pawstay/internal/domains/booking/model/dto"
	"pawstay/internal/domains/booking/service"
	"pawstay/internal/handlers/booking"
	"pawstay/shared/constant"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	"pawstay/shared/timezone"
	"pawstay/transport/http/response"
)

func newRouter(capacity int) http.Handler {
	cfg := &config.Config{}
	cfg.Store.Prefix = "pawstay"
	cfg.App.Boarding.Capacity = capacity

	svc := service.New(cfg, store.New(cfg, store.NewMemoryDriver(), mocks.NewOtel()), observer.New(), mocks.NewOtel())

	handler := booking.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func day(offset int) string {
	return timezone.Today().AddDate(0, 0, offset).Format(constant.DayFormat)
}

func stayBody(start, end int) string {
	return fmt.Sprintf(`{"petSpecies":"cat","startDate":%q,"endDate":%q,"petName":"Luna","ownerName":"Sam","ownerEmail":"sam@example.com","ownerPhone":"555-0100"}`,
		day(start), day(end))
}

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "valid stay", body: stayBody(3, 5), wantStatus: http.StatusCreated},
		{name: "end before start", body: stayBody(5, 3), wantStatus: http.StatusBadRequest},
		{name: "missing owner email", body: `{"petSpecies":"cat","startDate":"2030-01-01","endDate":"2030-01-02","petName":"Luna","ownerName":"Sam","ownerPhone":"1"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newRouter(5), http.MethodPost, "/bookings", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_CreateBookingRejectsFullDay(t *testing.T) {
	router := newRouter(1)

	rec := do(router, http.MethodPost, "/bookings", stayBody(3, 5))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(router, http.MethodPost, "/bookings", stayBody(4, 6))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_GetBookingsPaginates(t *testing.T) {
	router := newRouter(5)

	for i := range 3 {
		rec := do(router, http.MethodPost, "/bookings", stayBody(10+i*3, 11+i*3))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(router, http.MethodGet, "/bookings?page=2&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res response.Data[dto.GetBookingsResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Data)

	assert.Len(t, res.Data.Bookings, 1)
	assert.Equal(t, 3, res.Data.Total)
	assert.Equal(t, 2, res.Data.TotalPage)
}

func TestHandler_GetAvailabilityRange(t *testing.T) {
	router := newRouter(2)

	rec := do(router, http.MethodPost, "/bookings", stayBody(1, 3))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(router, http.MethodGet, "/availability?from="+day(0)+"&days=4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res response.Data[dto.AvailabilityRangeResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Data)
	require.Len(t, res.Data.Days, 4)

	spots := make([]int, len(res.Data.Days))
	for i, d := range res.Data.Days {
		spots[i] = d.AvailableSpots
	}

	assert.Equal(t, []int{2, 1, 1, 1}, spots)
}

func TestHandler_GetAvailabilityRejectsBadDay(t *testing.T) {
	rec := do(newRouter(5), http.MethodGet, "/availability?date=tomorrow", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pawstay/config"
	"pawstay/infras/otel/mocks"
	"pawstay/internal/domains/user/model/dto"
	userService "pawstay/internal/domains/user/service"
	"pawstay/shared/cache"
	cacheMocks "pawstay/shared/cache/mocks"
	"pawstay/shared/constant"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	"pawstay/transport/http/middleware"
)

func limiterConfig(enable bool, maxRequests int) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true, 2), cache.NewMemoryCounter())
	handler := app.RateLimit()(okHandler())

	codes := make([]int, 0, 3)

	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/v1/pets", nil)
		req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if rec.Code == http.StatusOK {
			assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimit))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_SeparatesClients(t *testing.T) {
	app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true, 1), cache.NewMemoryCounter())
	handler := app.RateLimit()(okHandler())

	for _, ip := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/pets", nil)
		req.Header.Set(constant.RequestHeaderRealIP, ip)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, ip)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	counter := cacheMocks.NewMockCounter(ctrl)

	app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(false, 0), counter)

	rec := httptest.NewRecorder()
	app.RateLimit()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_CounterFailureLetsRequestThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	counter := cacheMocks.NewMockCounter(ctrl)
	counter.EXPECT().Incr(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("redis down"))

	app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true, 1), counter)

	rec := httptest.NewRecorder()
	app.RateLimit()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func newUserService() userService.User {
	cfg := &config.Config{}
	cfg.Store.Prefix = "pawstay"

	return userService.New(store.New(cfg, store.NewMemoryDriver(), mocks.NewOtel()), observer.New(), mocks.NewOtel())
}

func TestSession_RequireWithoutUser(t *testing.T) {
	ot, recorder := mocks.NewRecordingOtel()

	session := middleware.NewSessionMiddleware(newUserService(), ot)
	handler := session.Attach(session.Require(okHandler()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/session/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, []string{"error:no user is signed in"}, recorder.Entries("session.middleware"))
}

func TestSession_AttachCarriesSignedInUser(t *testing.T) {
	users := newUserService()

	user, err := users.SignUp(context.Background(), dto.SignUpRequest{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)

	var gotID, gotName string

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value(constant.ContextKeyUserID).(string)
		gotName, _ = r.Context().Value(constant.ContextKeyUserName).(string)
		w.WriteHeader(http.StatusOK)
	})

	session := middleware.NewSessionMiddleware(users, mocks.NewOtel())

	rec := httptest.NewRecorder()
	session.Attach(session.Require(next)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/session/me", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, gotID)
	assert.Equal(t, "Dana", gotName)
}

package matching_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawstay/config"
	"pawstay/infras/otel/mocks"
	"pawstay/internal/domains/matching/model"
	"pawstay/internal/domains/matching/model/dto"
	"pawstay/internal/domains/matching/service"
	userDto "pawstay/internal/domains/user/model/dto"
	userService "pawstay/internal/domains/user/service"
	"pawstay/internal/handlers/matching"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	"pawstay/transport/http/middleware"
	"pawstay/transport/http/response"
)

type fixture struct {
	router http.Handler
	users  userService.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.Prefix = "pawstay"

	st := store.New(cfg, store.NewMemoryDriver(), mocks.NewOtel())
	hub := observer.New()

	users := userService.New(st, hub, mocks.NewOtel())
	session := middleware.NewSessionMiddleware(users, mocks.NewOtel())

	handler := matching.New(service.New(st, hub, mocks.NewOtel()), session, mocks.NewOtel())
	router := chi.NewRouter()
	router.Use(session.Attach)
	handler.Router(router)

	return fixture{router: router, users: users}
}

func (f fixture) signIn(t *testing.T) string {
	t.Helper()

	user, err := f.users.SignUp(context.Background(), userDto.SignUpRequest{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)

	return user.ID
}

func do(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func matchBody(targetOwnerID string) string {
	return `{"requesterPetId":"p1","requesterPetName":"Pixel","targetPetId":"p2","targetPetName":"Rex","targetOwnerId":"` +
		targetOwnerID + `"}`
}

func TestHandler_RequiresSession(t *testing.T) {
	f := newFixture(t)

	rec := do(t, f.router, http.MethodPost, "/matches", matchBody("someone"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_SendAndAcceptRequest(t *testing.T) {
	f := newFixture(t)
	owner := f.signIn(t)

	rec := do(t, f.router, http.MethodPost, "/matches", matchBody(owner))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created response.Data[model.PetMatchRequest]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Data)
	assert.Equal(t, owner, created.Data.RequesterOwnerID)
	assert.Equal(t, "Dana", created.Data.RequesterOwnerName)

	rec = do(t, f.router, http.MethodGet, "/matches/pending", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var pending response.Data[dto.GetRequestsResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.NotNil(t, pending.Data)
	require.Len(t, pending.Data.Requests, 1)

	rec = do(t, f.router, http.MethodPost, "/matches/"+created.Data.ID+"/respond", `{"accept":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var responded response.Data[model.PetMatchRequest]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responded))
	require.NotNil(t, responded.Data)
	assert.Equal(t, model.RequestStatusAccepted, responded.Data.Status)
}

func TestHandler_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "missing pets", method: http.MethodPost, target: "/matches", body: `{"targetOwnerId":"o2"}`},
		{name: "malformed respond body", method: http.MethodPost, target: "/matches/any/respond", body: `{"accept":`},
		{name: "playdate without date", method: http.MethodPost, target: "/matches/any/playdates", body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.signIn(t)

			rec := do(t, f.router, tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_GetRequestByIDNotFound(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)

	rec := do(t, f.router, http.MethodGet, "/matches/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

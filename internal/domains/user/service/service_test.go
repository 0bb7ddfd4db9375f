package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pawstay/config"
	"pawstay/infras/otel/mocks"
	"pawstay/internal/domains/user/model"
	"pawstay/internal/domains/user/model/dto"
	"pawstay/internal/domains/user/service"
	"pawstay/shared/failure"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	storeMocks "pawstay/shared/store/mocks"
)

func newService() (service.User, store.Store, observer.Hub) {
	cfg := &config.Config{}
	cfg.Store.Prefix = "pawstay"

	st := store.New(cfg, store.NewMemoryDriver(), mocks.NewOtel())
	hub := observer.New()

	return service.New(st, hub, mocks.NewOtel()), st, hub
}

func signUp(t *testing.T, svc service.User) model.User {
	t.Helper()

	user, err := svc.SignUp(context.Background(), dto.SignUpRequest{Name: "Sam Rivera", Email: "Sam@Example.com", Phone: "555-0100"})
	require.NoError(t, err)

	return user
}

func TestUserService_SignUp(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()

	user := signUp(t, svc)

	assert.NotEmpty(t, user.ID)
	assert.True(t, svc.IsAuthenticated(ctx))

	current, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, current)

	_, err = svc.SignUp(ctx, dto.SignUpRequest{Name: "Other", Email: "sam@example.com"})
	assert.Equal(t, 409, failure.GetCode(err))

	authenticated, ok, err := store.Load[bool](ctx, st, model.StoreKeyIsAuthenticated)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, authenticated)
}

func TestUserService_LoginAndLogout(t *testing.T) {
	svc, st, _ := newService()
	ctx := context.Background()

	user := signUp(t, svc)
	svc.Logout(ctx)

	assert.False(t, svc.IsAuthenticated(ctx))
	_, err := svc.CurrentUser(ctx)
	assert.Equal(t, 401, failure.GetCode(err))

	_, ok, err := store.Load[model.User](ctx, st, model.StoreKeyCurrentUser)
	require.NoError(t, err)
	assert.False(t, ok)

	tests := []struct {
		name     string
		email    string
		wantCode int
	}{
		{name: "unknown email", email: "nobody@example.com", wantCode: 401},
		{name: "case insensitive", email: "  SAM@example.COM ", wantCode: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(ctx, dto.LoginRequest{Email: tt.email})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, res.ID)
			assert.True(t, svc.IsAuthenticated(ctx))
		})
	}
}

func TestUserService_LoadRestoresSession(t *testing.T) {
	svc, st, hub := newService()
	ctx := context.Background()

	user := signUp(t, svc)
	svc.CompleteOnboarding(ctx)
	require.NoError(t, svc.SetProfileImage(ctx, []byte{0x89, 0x50, 0x4e, 0x47}))

	restored := service.New(st, hub, mocks.NewOtel())
	require.NoError(t, restored.Load(ctx))

	session := restored.Session(ctx)
	assert.True(t, session.IsAuthenticated)
	assert.True(t, session.HasSeenOnboarding)
	require.NotNil(t, session.User)
	assert.Equal(t, user.ID, session.User.ID)

	image, err := restored.ProfileImage(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, image)
}

func TestUserService_LoadWithoutData(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))

	assert.False(t, svc.IsAuthenticated(ctx))
	assert.False(t, svc.HasSeenOnboarding(ctx))

	_, err := svc.ProfileImage(ctx)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	name := "Samantha Rivera"

	_, err := svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Name: &name})
	assert.Equal(t, 401, failure.GetCode(err))

	signUp(t, svc)

	res, err := svc.UpdateProfile(ctx, dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, res.Name)
	assert.Equal(t, "555-0100", res.Phone)

	svc.Logout(ctx)

	res, err = svc.Login(ctx, dto.LoginRequest{Email: "sam@example.com"})
	require.NoError(t, err)
	assert.Equal(t, name, res.Name)
}

func TestUserService_AddPointsPublishesAchievement(t *testing.T) {
	svc, _, hub := newService()
	ctx := context.Background()

	var details []string
	hub.Subscribe(func(c observer.Change) {
		if c.Collection == observer.CollectionSession && c.Detail != "" {
			details = append(details, c.Detail)
		}
	})

	_, err := svc.AddPoints(ctx, dto.AddPointsRequest{Points: 10, Reason: "your first booking"})
	assert.Equal(t, 401, failure.GetCode(err))

	signUp(t, svc)

	res, err := svc.AddPoints(ctx, dto.AddPointsRequest{Points: 10, Reason: "your first booking"})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Points)

	res, err = svc.AddPoints(ctx, dto.AddPointsRequest{Points: 5, Reason: "a review"})
	require.NoError(t, err)
	assert.Equal(t, 15, res.Points)

	assert.Equal(t, []string{
		"You earned 10 points for your first booking.",
		"You earned 5 points for a review.",
	}, details)
}

func TestUserService_PersistenceFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := storeMocks.NewMockStore(ctrl)
	st.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full")).AnyTimes()

	svc := service.New(st, observer.New(), mocks.NewOtel())
	ctx := context.Background()

	svc.CompleteOnboarding(ctx)

	assert.True(t, svc.HasSeenOnboarding(ctx))
	assert.Error(t, svc.Save(ctx))
}

package service

import (
	"context"
	"errors"
	"fmt"
	"pawstay/infras/otel"
	"pawstay/internal/domains/user/model"
	"pawstay/internal/domains/user/model/dto"
	"pawstay/shared"
	"pawstay/shared/constant"
	"pawstay/shared/failure"
	"pawstay/shared/logger"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

const managerName = "session"

type User interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	SignUp(ctx context.Context, req dto.SignUpRequest) (model.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (model.User, error)
	Logout(ctx context.Context)
	Session(ctx context.Context) model.Session
	CurrentUser(ctx context.Context) (model.User, error)
	IsAuthenticated(ctx context.Context) bool
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (model.User, error)
	SetProfileImage(ctx context.Context, image []byte) error
	ProfileImage(ctx context.Context) ([]byte, error)
	CompleteOnboarding(ctx context.Context)
	HasSeenOnboarding(ctx context.Context) bool
	AddPoints(ctx context.Context, req dto.AddPointsRequest) (model.User, error)
}

type serviceImpl struct {
	mu                sync.Mutex
	authenticated     bool
	current           *model.User
	registered        []model.User
	hasSeenOnboarding bool
	profileImage      []byte
	store             store.Store
	hub               observer.Hub
	otel              otel.Otel
}

func New(st store.Store, hub observer.Hub, otel otel.Otel) User {
	return &serviceImpl{
		registered: []model.User{},
		store:      st,
		hub:        hub,
		otel:       otel,
	}
}

func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error

	authenticated, _, err := store.Load[bool](ctx, s.store, model.StoreKeyIsAuthenticated)
	errs = append(errs, err)

	current, ok, err := store.Load[model.User](ctx, s.store, model.StoreKeyCurrentUser)
	errs = append(errs, err)

	if ok {
		s.current = &current
	}

	registered, ok, err := store.Load[[]model.User](ctx, s.store, model.StoreKeyRegisteredUsers)
	errs = append(errs, err)

	if ok && registered != nil {
		s.registered = registered
	}

	s.hasSeenOnboarding, _, err = store.Load[bool](ctx, s.store, model.StoreKeyHasSeenOnboarding)
	errs = append(errs, err)

	s.profileImage, _, err = store.Load[[]byte](ctx, s.store, model.StoreKeyProfileImage)
	errs = append(errs, err)

	// a flag without a user is a half-written session
	s.authenticated = authenticated && s.current != nil

	log.Info().Bool("authenticated", s.authenticated).Int("registered", len(s.registered)).Msg("session loaded")

	return errors.Join(errs...)
}

func (s *serviceImpl) Save(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(
		s.persistSession(ctx),
		store.Persist(ctx, s.store, model.StoreKeyRegisteredUsers, s.registered),
		store.Persist(ctx, s.store, model.StoreKeyHasSeenOnboarding, s.hasSeenOnboarding),
		store.Persist(ctx, s.store, model.StoreKeyProfileImage, s.profileImage),
	)
}

// SignUp registers a local account and signs it in. Emails are unique regardless of case.
func (s *serviceImpl) SignUp(ctx context.Context, req dto.SignUpRequest) (res model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.SignUp")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.registeredIndex(req.Email) >= 0 {
		return res, failure.Conflict("email already registered") //nolint:wrapcheck
	}

	user := req.ToModel()
	s.registered = append(s.registered, user)
	logger.Persistence(managerName, model.StoreKeyRegisteredUsers,
		store.Persist(ctx, s.store, model.StoreKeyRegisteredUsers, s.registered))

	s.signIn(ctx, user)

	return user, nil
}

// Login signs in a registered account by email. No credential is checked.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.registeredIndex(req.Email)
	if idx < 0 {
		return res, failure.Unauthorized("no account for this email") //nolint:wrapcheck
	}

	user := s.registered[idx]
	s.signIn(ctx, user)

	return user, nil
}

func (s *serviceImpl) Logout(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.Logout")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated {
		return
	}

	id := s.current.ID
	s.authenticated = false
	s.current = nil

	logger.Persistence(managerName, model.StoreKeyCurrentUser, store.Erase(ctx, s.store, model.StoreKeyCurrentUser))
	logger.Persistence(managerName, model.StoreKeyIsAuthenticated,
		store.Persist(ctx, s.store, model.StoreKeyIsAuthenticated, false))

	s.hub.Publish(observer.Change{Collection: observer.CollectionSession, Action: observer.ActionDeleted, ID: id})
}

func (s *serviceImpl) Session(ctx context.Context) model.Session {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.Session")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	session := model.Session{IsAuthenticated: s.authenticated, HasSeenOnboarding: s.hasSeenOnboarding}
	if s.authenticated {
		user := *s.current
		session.User = &user
	}

	return session
}

func (s *serviceImpl) CurrentUser(_ context.Context) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated {
		return model.User{}, failure.NotAuthenticated
	}

	return *s.current, nil
}

func (s *serviceImpl) IsAuthenticated(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.authenticated
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (res model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated {
		return res, failure.NotAuthenticated
	}

	req.Apply(s.current)
	s.syncRegistered(ctx)

	logger.Persistence(managerName, model.StoreKeyCurrentUser, s.persistSession(ctx))
	s.hub.Publish(observer.Change{Collection: observer.CollectionSession, Action: observer.ActionUpdated, ID: s.current.ID})

	return *s.current, nil
}

func (s *serviceImpl) SetProfileImage(ctx context.Context, image []byte) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.SetProfileImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(image) == 0 {
		return failure.BadRequestFromString("profile image is empty") //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profileImage = shared.Clone(image)
	scope.SetAttribute("image.size", len(image))

	logger.Persistence(managerName, model.StoreKeyProfileImage,
		store.Persist(ctx, s.store, model.StoreKeyProfileImage, s.profileImage))

	return nil
}

func (s *serviceImpl) ProfileImage(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.profileImage) == 0 {
		return nil, failure.NotFound("profile image") //nolint:wrapcheck
	}

	return shared.Clone(s.profileImage), nil
}

func (s *serviceImpl) CompleteOnboarding(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.CompleteOnboarding")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.hasSeenOnboarding = true

	logger.Persistence(managerName, model.StoreKeyHasSeenOnboarding,
		store.Persist(ctx, s.store, model.StoreKeyHasSeenOnboarding, true))
}

func (s *serviceImpl) HasSeenOnboarding(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hasSeenOnboarding
}

// AddPoints credits loyalty points to the signed-in user.
func (s *serviceImpl) AddPoints(ctx context.Context, req dto.AddPointsRequest) (res model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.AddPoints")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Points <= 0 {
		return res, failure.BadRequestFromString("points must be positive") //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated {
		return res, failure.NotAuthenticated
	}

	s.current.Points += req.Points
	s.syncRegistered(ctx)

	logger.Persistence(managerName, model.StoreKeyCurrentUser, s.persistSession(ctx))

	s.hub.Publish(observer.Change{
		Collection: observer.CollectionSession,
		Action:     observer.ActionUpdated,
		ID:         s.current.ID,
		Detail:     fmt.Sprintf("You earned %d points for %s.", req.Points, req.Reason),
	})

	return *s.current, nil
}

// signIn makes user current and persists the session. Callers hold s.mu.
func (s *serviceImpl) signIn(ctx context.Context, user model.User) {
	s.current = &user
	s.authenticated = true

	logger.Persistence(managerName, model.StoreKeyCurrentUser, s.persistSession(ctx))
	s.hub.Publish(observer.Change{Collection: observer.CollectionSession, Action: observer.ActionCreated, ID: user.ID})
}

// syncRegistered copies the current user back into the account list.
func (s *serviceImpl) syncRegistered(ctx context.Context) {
	idx := shared.IndexOf(s.registered, func(u model.User) bool { return u.ID == s.current.ID })
	if idx < 0 {
		return
	}

	s.registered[idx] = *s.current
	logger.Persistence(managerName, model.StoreKeyRegisteredUsers,
		store.Persist(ctx, s.store, model.StoreKeyRegisteredUsers, s.registered))
}

func (s *serviceImpl) registeredIndex(email string) int {
	email = strings.TrimSpace(email)

	return shared.IndexOf(s.registered, func(u model.User) bool { return strings.EqualFold(u.Email, email) })
}

func (s *serviceImpl) persistSession(ctx context.Context) error {
	if s.current == nil {
		return store.Persist(ctx, s.store, model.StoreKeyIsAuthenticated, false)
	}

	return errors.Join(
		store.Persist(ctx, s.store, model.StoreKeyCurrentUser, *s.current),
		store.Persist(ctx, s.store, model.StoreKeyIsAuthenticated, s.authenticated),
	)
}

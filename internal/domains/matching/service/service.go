package service

import (
	"context"
	"errors"
	"fmt"
	"pawstay/infras/otel"
	"pawstay/internal/domains/matching/model"
	"pawstay/internal/domains/matching/model/dto"
	"pawstay/shared"
	"pawstay/shared/constant"
	"pawstay/shared/failure"
	"pawstay/shared/logger"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	"pawstay/shared/timezone"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

const managerName = "matching"

type Matching interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	SendRequest(ctx context.Context, req dto.SendRequestRequest) model.PetMatchRequest
	GetRequest(ctx context.Context, id string) (model.PetMatchRequest, error)
	RespondToRequest(ctx context.Context, id string, accept bool) (model.PetMatchRequest, error)
	SchedulePlaydate(ctx context.Context, requestID string, req dto.SchedulePlaydateRequest) (model.PetPlaydate, error)
	CompletePlaydate(ctx context.Context, id string) (model.PetPlaydate, error)
	PendingRequestsForUser(ctx context.Context, ownerID string) []model.PetMatchRequest
	UpcomingPlaydates(ctx context.Context, ownerID string) []model.PetPlaydate
}

type serviceImpl struct {
	mu        sync.Mutex
	requests  []model.PetMatchRequest
	playdates []model.PetPlaydate
	store     store.Store
	hub       observer.Hub
	otel      otel.Otel
}

func New(st store.Store, hub observer.Hub, otel otel.Otel) Matching {
	return &serviceImpl{
		requests:  []model.PetMatchRequest{},
		playdates: []model.PetPlaydate{},
		store:     st,
		hub:       hub,
		otel:      otel,
	}
}

func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Matching.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	requests, ok, requestsErr := store.Load[[]model.PetMatchRequest](ctx, s.store, model.StoreKeyMatchRequests)
	if ok && requests != nil {
		s.requests = requests
	}

	playdates, ok, playdatesErr := store.Load[[]model.PetPlaydate](ctx, s.store, model.StoreKeyPlaydates)
	if ok && playdates != nil {
		s.playdates = playdates
	}

	log.Info().Int("requests", len(s.requests)).Int("playdates", len(s.playdates)).Msg("matches loaded")

	return errors.Join(requestsErr, playdatesErr)
}

func (s *serviceImpl) Save(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Matching.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(s.persistRequests(ctx), s.persistPlaydates(ctx))
}

func (s *serviceImpl) SendRequest(ctx context.Context, req dto.SendRequestRequest) model.PetMatchRequest {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Matching.SendRequest")
	defer scope.End()

	request := req.ToModel()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = shared.Prepend(s.requests, request)
	logger.Persistence(managerName, model.StoreKeyMatchRequests, s.persistRequests(ctx))

	s.hub.Publish(observer.Change{
		Collection: observer.CollectionMatchRequests,
		Action:     observer.ActionCreated,
		ID:         request.ID,
		Detail:     request.RequesterPetName,
	})

	return request
}

func (s *serviceImpl) GetRequest(ctx context.Context, id string) (res model.PetMatchRequest, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Matching.GetRequest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.requestIndex(id)
	if idx < 0 {
		return res, failure.NotFound(model.RequestEntityName) //nolint:wrapcheck
	}

	return s.requests[idx], nil
}

// RespondToRequest resolves a pending request. A resolved request is returned unchanged.
func (s *serviceImpl) RespondToRequest(ctx context.Context, id string, accept bool) (res model.PetMatchRequest, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Matching.RespondToRequest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.requestIndex(id)
	if idx < 0 {
		return res, failure.NotFound(model.RequestEntityName) //nolint:wrapcheck
	}

	request := &s.requests[idx]
	if !request.IsPending() {
		log.Debug().Str("id", id).Str("status", string(request.Status)).Msg("match request already resolved")

		return *request, nil
	}

	request.Status = model.RequestStatusDeclined
	if accept {
		request.Status = model.RequestStatusAccepted
	}

	logger.Persistence(managerName, model.StoreKeyMatchRequests, s.persistRequests(ctx))

	s.hub.Publish(observer.Change{
		Collection: observer.CollectionMatchRequests,
		Action:     observer.ActionUpdated,
		ID:         id,
		Detail:     string(request.Status),
	})

	return *request, nil
}

// SchedulePlaydate needs an accepted request, and each request backs at most one playdate.
func (s *serviceImpl) SchedulePlaydate(ctx context.Context, requestID string, req dto.SchedulePlaydateRequest) (res model.PetPlaydate, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Matching.SchedulePlaydate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, err := req.ParseDate()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid playdate date: %v", err)) //nolint:wrapcheck
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.requestIndex(requestID)
	if idx < 0 {
		return res, failure.NotFound(model.RequestEntityName) //nolint:wrapcheck
	}

	request := s.requests[idx]
	if request.Status != model.RequestStatusAccepted {
		return res, failure.BadRequestFromString("match request is " + string(request.Status) + ", not accepted") //nolint:wrapcheck
	}

	if slices.ContainsFunc(s.playdates, func(p model.PetPlaydate) bool { return p.RequestID == requestID }) {
		return res, failure.Conflict("a playdate is already scheduled for this request") //nolint:wrapcheck
	}

	playdate := req.ToModel(request, date)
	s.playdates = shared.Prepend(s.playdates, playdate)
	logger.Persistence(managerName, model.StoreKeyPlaydates, s.persistPlaydates(ctx))

	scope.SetAttribute("playdate.id", playdate.ID)

	s.hub.Publish(observer.Change{
		Collection: observer.CollectionPlaydates,
		Action:     observer.ActionCreated,
		ID:         playdate.ID,
		Detail: fmt.Sprintf("%s and %s on %s", playdate.RequesterPetName, playdate.TargetPetName,
			timezone.Format(playdate.Date, "Jan 2 at 3:04 PM")),
	})

	return playdate, nil
}

func (s *serviceImpl) CompletePlaydate(ctx context.Context, id string) (res model.PetPlaydate, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Matching.CompletePlaydate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := shared.IndexOf(s.playdates, func(p model.PetPlaydate) bool { return p.ID == id })
	if idx < 0 {
		return res, failure.NotFound(model.PlaydateEntityName) //nolint:wrapcheck
	}

	playdate := &s.playdates[idx]
	if playdate.Status == model.PlaydateStatusCompleted {
		return *playdate, nil
	}

	playdate.Status = model.PlaydateStatusCompleted
	logger.Persistence(managerName, model.StoreKeyPlaydates, s.persistPlaydates(ctx))

	s.hub.Publish(observer.Change{Collection: observer.CollectionPlaydates, Action: observer.ActionUpdated, ID: id})

	return *playdate, nil
}

func (s *serviceImpl) PendingRequestsForUser(ctx context.Context, ownerID string) []model.PetMatchRequest {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Matching.PendingRequestsForUser")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return shared.Filter(s.requests, func(r model.PetMatchRequest) bool {
		return r.TargetOwnerID == ownerID && r.IsPending()
	})
}

// UpcomingPlaydates returns scheduled future playdates involving ownerID, soonest first.
func (s *serviceImpl) UpcomingPlaydates(ctx context.Context, ownerID string) []model.PetPlaydate {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Matching.UpcomingPlaydates")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := timezone.Now()
	res := shared.Filter(s.playdates, func(p model.PetPlaydate) bool {
		return p.Involves(ownerID) && p.IsUpcoming(now)
	})

	slices.SortStableFunc(res, func(a, b model.PetPlaydate) int { return a.Date.Compare(b.Date) })

	return res
}

func (s *serviceImpl) requestIndex(id string) int {
	return shared.IndexOf(s.requests, func(r model.PetMatchRequest) bool { return r.ID == id })
}

func (s *serviceImpl) persistRequests(ctx context.Context) error {
	return store.Persist(ctx, s.store, model.StoreKeyMatchRequests, s.requests)
}

func (s *serviceImpl) persistPlaydates(ctx context.Context) error {
	return store.Persist(ctx, s.store, model.StoreKeyPlaydates, s.playdates)
}

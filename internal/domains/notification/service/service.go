package service

import (
	"context"
	"pawstay/infras/otel"
	"pawstay/internal/domains/notification/model"
	"pawstay/internal/domains/notification/model/dto"
	"pawstay/shared"
	"pawstay/shared/constant"
	"pawstay/shared/failure"
	"pawstay/shared/logger"
	"pawstay/shared/observer"
	"pawstay/shared/store"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
)

const managerName = "notifications"

type Notification interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
	Add(ctx context.Context, req dto.CreateNotificationRequest) model.AppNotification
	GetAll(ctx context.Context) []model.AppNotification
	ByType(ctx context.Context, notificationType model.Type) []model.AppNotification
	UnreadCount(ctx context.Context) int
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context)
	Delete(ctx context.Context, id string) error
	ClearAll(ctx context.Context)
}

type serviceImpl struct {
	mu            sync.Mutex
	notifications []model.AppNotification
	store         store.Store
	hub           observer.Hub
	otel          otel.Otel
}

func New(st store.Store, hub observer.Hub, otel otel.Otel) Notification {
	return &serviceImpl{
		notifications: []model.AppNotification{},
		store:         st,
		hub:           hub,
		otel:          otel,
	}
}

func (s *serviceImpl) Load(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	notifications, ok, err := store.Load[[]model.AppNotification](ctx, s.store, model.StoreKeyNotifications)
	if ok && notifications != nil {
		s.notifications = notifications
	}

	log.Info().Int("notifications", len(s.notifications)).Msg("notifications loaded")

	return err
}

func (s *serviceImpl) Save(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persist(ctx)
}

// Add inserts the notification at the head, unread.
func (s *serviceImpl) Add(ctx context.Context, req dto.CreateNotificationRequest) model.AppNotification {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.Add")
	defer scope.End()

	notification := req.ToModel()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = shared.Prepend(s.notifications, notification)
	s.commit(ctx, observer.ActionCreated, notification.ID)

	return notification
}

func (s *serviceImpl) GetAll(ctx context.Context) []model.AppNotification {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.GetAll")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return shared.Clone(s.notifications)
}

func (s *serviceImpl) ByType(ctx context.Context, notificationType model.Type) []model.AppNotification {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.ByType")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return shared.Filter(s.notifications, func(n model.AppNotification) bool { return n.Type == notificationType })
}

func (s *serviceImpl) UnreadCount(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, n := range s.notifications {
		if !n.IsRead {
			count++
		}
	}

	return count
}

func (s *serviceImpl) MarkAsRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.MarkAsRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	if s.notifications[idx].IsRead {
		return nil
	}

	s.notifications[idx].IsRead = true
	s.commit(ctx, observer.ActionUpdated, id)

	return nil
}

func (s *serviceImpl) MarkAllAsRead(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.MarkAllAsRead")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		s.notifications[i].IsRead = true
	}

	s.commit(ctx, observer.ActionUpdated, constant.Empty)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		return failure.NotFound(model.EntityName) //nolint:wrapcheck
	}

	s.notifications = slices.Delete(s.notifications, idx, idx+1)
	s.commit(ctx, observer.ActionDeleted, id)

	return nil
}

func (s *serviceImpl) ClearAll(ctx context.Context) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notification.ClearAll")
	defer scope.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = []model.AppNotification{}
	s.commit(ctx, observer.ActionCleared, constant.Empty)
}

func (s *serviceImpl) index(id string) int {
	return shared.IndexOf(s.notifications, func(n model.AppNotification) bool { return n.ID == id })
}

func (s *serviceImpl) persist(ctx context.Context) error {
	return store.Persist(ctx, s.store, model.StoreKeyNotifications, s.notifications)
}

// commit persists best-effort and announces the change.
func (s *serviceImpl) commit(ctx context.Context, action observer.Action, id string) {
	logger.Persistence(managerName, model.StoreKeyNotifications, s.persist(ctx))

	s.hub.Publish(observer.Change{Collection: observer.CollectionNotifications, Action: action, ID: id})
}

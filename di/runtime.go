package di

import (
	"context"
	"errors"
	"pawstay/infras/kafka"
	bookingService "pawstay/internal/domains/booking/service"
	chatService "pawstay/internal/domains/chat/service"
	matchingService "pawstay/internal/domains/matching/service"
	notificationService "pawstay/internal/domains/notification/service"
	petService "pawstay/internal/domains/pet/service"
	userService "pawstay/internal/domains/user/service"
	"pawstay/shared/failure"
	"pawstay/shared/observer"
	"pawstay/shared/scheduler"

	"github.com/rs/zerolog/log"
)

type manager interface {
	Load(ctx context.Context) error
	Save(ctx context.Context) error
}

// Runtime owns the startup and shutdown of the managers and the change feed plumbing.
type Runtime struct {
	managers    map[string]manager
	chat        chatService.Chat
	forwarder   *kafka.Forwarder
	client      kafka.Client
	deferrer    scheduler.Deferrer
	unsubscribe []func()
}

func NewRuntime(
	hub observer.Hub,
	deferrer scheduler.Deferrer,
	client kafka.Client,
	forwarder *kafka.Forwarder,
	pets petService.Pet,
	bookings bookingService.Booking,
	notifications notificationService.Notification,
	chat chatService.Chat,
	matching matchingService.Matching,
	user userService.User,
) *Runtime {
	r := &Runtime{
		managers: map[string]manager{
			"pets":          pets,
			"bookings":      bookings,
			"notifications": notifications,
			"chat":          chat,
			"matching":      matching,
			"session":       user,
		},
		chat:      chat,
		forwarder: forwarder,
		client:    client,
		deferrer:  deferrer,
	}

	ctx := context.Background()

	for name, m := range r.managers {
		if err := m.Load(ctx); err != nil {
			// unreadable slots leave the defaults in place
			log.Warn().Err(err).Str("manager", name).Bool("persistence", failure.IsPersistence(err)).Msg("starting with default state")
		}
	}

	r.unsubscribe = append(r.unsubscribe,
		notificationService.Bridge(hub, notifications),
		chatService.CloseOnLogout(hub, chat),
	)

	forwarder.Start(ctx)

	return r
}

// Close implements http.Closer.
func (r *Runtime) Close(ctx context.Context) error {
	for _, unsubscribe := range r.unsubscribe {
		unsubscribe()
	}

	r.chat.Close()
	r.deferrer.Stop()
	r.forwarder.Stop()

	var errs []error

	for name, m := range r.managers {
		if err := m.Save(ctx); err != nil {
			log.Error().Err(err).Str("manager", name).Msg("failed to flush manager state")

			errs = append(errs, err)
		}
	}

	if err := r.client.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

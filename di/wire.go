//go:build wireinject
// +build wireinject

package di

import (
	"pawstay/config"
	"pawstay/infras/kafka"
	"pawstay/infras/otel"
	"pawstay/shared/observer"
	"pawstay/shared/scheduler"
	"pawstay/shared/store"
	"pawstay/transport/http"
	"pawstay/transport/http/middleware"
	"pawstay/transport/http/router"

	bookingService "pawstay/internal/domains/booking/service"
	chatService "pawstay/internal/domains/chat/service"
	matchingService "pawstay/internal/domains/matching/service"
	notificationService "pawstay/internal/domains/notification/service"
	petService "pawstay/internal/domains/pet/service"
	userService "pawstay/internal/domains/user/service"

	bookingHandler "pawstay/internal/handlers/booking"
	chatHandler "pawstay/internal/handlers/chat"
	matchingHandler "pawstay/internal/handlers/matching"
	notificationHandler "pawstay/internal/handlers/notification"
	petHandler "pawstay/internal/handlers/pet"
	sessionHandler "pawstay/internal/handlers/session"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	kafka.New,
	provideRedisClient,
)

var sharedHelpers = wire.NewSet(
	provideStoreDriver,
	store.New,
	provideMedia,
	provideCounter,
	observer.New,
	scheduler.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewSessionMiddleware,
)

var domains = wire.NewSet(
	petService.New,
	bookingService.New,
	notificationService.New,
	chatService.New,
	matchingService.New,
	userService.New,
)

var runtime = wire.NewSet(
	kafka.NewForwarder,
	NewRuntime,
	wire.Bind(new(http.Closer), new(*Runtime)),
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	sessionHandler.New,
	petHandler.New,
	bookingHandler.New,
	notificationHandler.New,
	chatHandler.New,
	matchingHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		middlewares,
		domains,
		runtime,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

//go:build wireinject
// +build wireinject

package di

import (
	"saleema/config"
	"saleema/infras/jwt"
	"saleema/infras/kafka"
	"saleema/infras/metrics"
	"saleema/infras/otel"
	"saleema/infras/postgres"
	"saleema/infras/redis"
	"saleema/infras/s3"
	"saleema/internal/worker"
	"saleema/permissions"
	"saleema/shared/cache"
	"saleema/transport/http"
	"saleema/transport/http/middleware"
	"saleema/transport/http/router"

	bookingRepository "saleema/internal/domains/booking/repository"
	bookingService "saleema/internal/domains/booking/service"
	paymentRepository "saleema/internal/domains/payment/repository"
	paymentService "saleema/internal/domains/payment/service"
	ticketService "saleema/internal/domains/ticket/service"
	packageRepository "saleema/internal/domains/tourpackage/repository"
	packageService "saleema/internal/domains/tourpackage/service"
	bookingHandler "saleema/internal/handlers/booking"
	paymentHandler "saleema/internal/handlers/payment"
	packageHandler "saleema/internal/handlers/tourpackage"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var packageDomain = wire.NewSet(
	packageRepository.New,
	packageService.New,
	packageService.NewInventory,
)

var ticketDomain = wire.NewSet(
	provideTicketRenderer,
	ticketService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	packageDomain,
	ticketDomain,
	bookingDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	packageHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	router.New,
)

var workers = wire.NewSet(
	worker.NewExpirySweeper,
	worker.NewConfirmationConsumer,
)

// InitializeService wires the HTTP surface only, for serverless entrypoints.
func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

// InitializeApp wires the HTTP server together with the background workers.
func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		workers,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}

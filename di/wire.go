//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"rentwheels/config"
	"rentwheels/infras/jwt"
	"rentwheels/infras/kafka"
	"rentwheels/infras/otel"
	"rentwheels/infras/postgres"
	"rentwheels/infras/redis"
	"rentwheels/infras/s3"
	"rentwheels/internal/availability"
	"rentwheels/internal/jobs"
	"rentwheels/internal/scheduler"
	"rentwheels/internal/seeder"
	"rentwheels/permissions"
	"rentwheels/shared/cache"
	"rentwheels/shared/lock"
	"rentwheels/shared/repository"
	"rentwheels/shared/timezone"
	"rentwheels/transport/http"
	"rentwheels/transport/http/middleware"
	"rentwheels/transport/http/router"

	authService "rentwheels/internal/domains/auth/service"
	bookingService "rentwheels/internal/domains/booking/service"
	carRepository "rentwheels/internal/domains/car/repository"
	carService "rentwheels/internal/domains/car/service"
	invoiceRepository "rentwheels/internal/domains/invoice/repository"
	invoiceService "rentwheels/internal/domains/invoice/service"
	reservationRepository "rentwheels/internal/domains/reservation/repository"
	reservationService "rentwheels/internal/domains/reservation/service"
	userRepository "rentwheels/internal/domains/user/repository"
	userService "rentwheels/internal/domains/user/service"

	authHandler "rentwheels/internal/handlers/auth"
	availabilityHandler "rentwheels/internal/handlers/availability"
	bookingHandler "rentwheels/internal/handlers/booking"
	carHandler "rentwheels/internal/handlers/car"
	invoiceHandler "rentwheels/internal/handlers/invoice"
	reservationHandler "rentwheels/internal/handlers/reservation"
	userHandler "rentwheels/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	repository.NewTransactor,
	lock.NewKeyedMutex,
	timezone.NewSystemClock,
)

var repositories = wire.NewSet(
	carRepository.New,
	reservationRepository.New,
	invoiceRepository.New,
	userRepository.New,
)

var domains = wire.NewSet(
	carService.New,
	reservationService.New,
	invoiceService.New,
	userService.New,
	authService.New,
	bookingService.New,
	availability.New,
	availability.NewNotifier,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	carHandler.New,
	bookingHandler.New,
	reservationHandler.New,
	invoiceHandler.New,
	userHandler.New,
	availabilityHandler.New,
	router.New,
)

var background = wire.NewSet(
	jobs.NewJobRunner,
	scheduler.NewScheduler,
	seeder.New,
)

func InitializeService() (*App, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		background,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}, nil
}

func InitializeSeeder() (*seeder.Seeder, error) {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		carRepository.New,
		userRepository.New,
		timezone.NewSystemClock,
		seeder.New,
	)

	return &seeder.Seeder{}, nil
}

//go:build wireinject
// +build wireinject

package di

import (
	"atrium/config"
	"atrium/infras/accessctl"
	"atrium/infras/jwt"
	"atrium/infras/kafka"
	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/infras/redis"
	"atrium/infras/s3"
	"atrium/internal/events"
	"atrium/permissions"
	"atrium/shared/cache"
	"atrium/transport/http"
	"atrium/transport/http/middleware"
	"atrium/transport/http/router"

	authService "atrium/internal/domains/auth/service"
	penaltyRepository "atrium/internal/domains/penalty/repository"
	penaltyService "atrium/internal/domains/penalty/service"
	ratingRepository "atrium/internal/domains/rating/repository"
	ratingService "atrium/internal/domains/rating/service"
	reservationRepository "atrium/internal/domains/reservation/repository"
	reservationService "atrium/internal/domains/reservation/service"
	spaceRepository "atrium/internal/domains/space/repository"
	spaceService "atrium/internal/domains/space/service"
	userRepository "atrium/internal/domains/user/repository"
	authHandler "atrium/internal/handlers/auth"
	penaltyHandler "atrium/internal/handlers/penalty"
	ratingHandler "atrium/internal/handlers/rating"
	reservationHandler "atrium/internal/handlers/reservation"
	spaceHandler "atrium/internal/handlers/space"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	accessctl.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var spaceDomain = wire.NewSet(
	spaceRepository.New,
	spaceRepository.NewUtility,
	spaceService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var penaltyDomain = wire.NewSet(
	penaltyRepository.New,
	penaltyService.New,
)

var ratingDomain = wire.NewSet(
	ratingRepository.New,
	ratingService.New,
)

var domains = wire.NewSet(
	authDomain,
	spaceDomain,
	reservationDomain,
	penaltyDomain,
	ratingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	spaceHandler.New,
	reservationHandler.New,
	penaltyHandler.New,
	ratingHandler.New,
	router.New,
)

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

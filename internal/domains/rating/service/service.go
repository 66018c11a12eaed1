package service

import (
	"context"
	"errors"
	"fmt"

	"atrium/config"
	"atrium/infras/otel"
	"atrium/internal/domains/rating/model"
	"atrium/internal/domains/rating/model/dto"
	"atrium/internal/domains/rating/repository"
	reservationModel "atrium/internal/domains/reservation/model"
	reservationRepo "atrium/internal/domains/reservation/repository"
	userModel "atrium/internal/domains/user/model"
	userRepo "atrium/internal/domains/user/repository"
	"atrium/shared"
	"atrium/shared/cache"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRating    = "rating:get"
	cacheGetAllRating = "rating:gets"
	cacheCountRating  = "rating:count"
)

type Rating interface {
	Create(ctx context.Context, req dto.CreateRatingRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRatingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RatingResponse, error)
	Update(ctx context.Context, req dto.UpdateRatingRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo            repository.Rating
	userRepo        userRepo.User
	reservationRepo reservationRepo.Reservation
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Rating,
	userRepo userRepo.User,
	reservationRepo reservationRepo.Reservation,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Rating {
	return &serviceImpl{
		repo:            repo,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

// Create issues a rating. When tied to a reservation the guards run in order:
// user exists, reservation exists, reservation belongs to the rated user,
// reservation completed, no rating yet. The first failing guard wins.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRatingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	userExists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.RatedUserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !userExists {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if req.ReservationID != constant.Empty {
		if err = s.guardReservation(ctx, req); err != nil {
			return err
		}
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return failure.Conflict("reservation already has a rating") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create rating")

		return fmt.Errorf("failed to create rating: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRating)
		shared.InvalidateCaches(c, s.cache, cacheCountRating)
	}()

	return nil
}

func (s *serviceImpl) guardReservation(ctx context.Context, req dto.CreateRatingRequest) error {
	reservation, err := s.reservationRepo.Get(ctx,
		shared.FilterByID(req.ReservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.UserID != req.RatedUserID {
		return failure.BadRequestFromString("reservation does not belong to the rated user") // nolint:wrapcheck
	}

	if reservation.Status != reservationModel.StatusCompleted {
		return failure.BadRequestFromString("only completed reservations can be rated") // nolint:wrapcheck
	}

	ratingExists, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationID,
				Operator: gDto.FilterOperatorEq,
				Value:    req.ReservationID,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check if rating exists")

		return fmt.Errorf("failed to check if rating exists: %w", err)
	}

	if ratingExists {
		return failure.Conflict("reservation already has a rating") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRatingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRating, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for ratings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count ratings")

		return res, fmt.Errorf("failed to count ratings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get ratings")

		return res, fmt.Errorf("failed to get ratings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save ratings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRating, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count ratings")

		return res, fmt.Errorf("failed to count ratings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rating count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RatingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetRating, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	rating, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get rating")

		return res, fmt.Errorf("failed to get rating: %w", err)
	}

	if rating.ID == constant.Empty {
		return res, failure.NotFound("rating not found") // nolint:wrapcheck
	}

	res.FromModel(rating)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rating to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRatingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateRatingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if rating exists")

		return fmt.Errorf("failed to check if rating exists: %w", err)
	}

	if !exist {
		return failure.NotFound("rating not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update rating")

		return fmt.Errorf("failed to update rating: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRating, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete rating from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRating)
		shared.InvalidateCaches(c, s.cache, cacheCountRating)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if rating exists")

		return fmt.Errorf("failed to check if rating exists: %w", err)
	}

	if !exist {
		return failure.NotFound("rating not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete rating")

		return fmt.Errorf("failed to delete rating: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRating, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete rating from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRating)
		shared.InvalidateCaches(c, s.cache, cacheCountRating)
	}()

	return nil
}

package service

import (
	"context"
	"fmt"

	"atrium/config"
	"atrium/infras/otel"
	"atrium/internal/domains/penalty/model"
	"atrium/internal/domains/penalty/model/dto"
	"atrium/internal/domains/penalty/repository"
	reservationModel "atrium/internal/domains/reservation/model"
	reservationRepo "atrium/internal/domains/reservation/repository"
	userModel "atrium/internal/domains/user/model"
	userRepo "atrium/internal/domains/user/repository"
	"atrium/shared"
	"atrium/shared/cache"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPenalty    = "penalty:get"
	cacheGetAllPenalty = "penalty:gets"
	cacheCountPenalty  = "penalty:count"
)

type Penalty interface {
	Create(ctx context.Context, req dto.CreatePenaltyRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPenaltiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PenaltyResponse, error)
	Update(ctx context.Context, req dto.UpdatePenaltyRequest, id string) error
}

type serviceImpl struct {
	repo            repository.Penalty
	userRepo        userRepo.User
	reservationRepo reservationRepo.Reservation
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Penalty,
	userRepo userRepo.User,
	reservationRepo reservationRepo.Reservation,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Penalty {
	return &serviceImpl{
		repo:            repo,
		userRepo:        userRepo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

// Create issues a penalty. The target user must exist; a referenced reservation
// must exist but carries no status requirement, a penalty may cover a no-show
// or unrelated misconduct.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePenaltyRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	userExists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !userExists {
		return failure.NotFound("user not found") // nolint:wrapcheck
	}

	if req.ReservationID != constant.Empty {
		reservationExists, err := s.reservationRepo.Exist(ctx,
			shared.FilterByID(req.ReservationID, reservationModel.FieldID, reservationModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if reservation exists")

			return fmt.Errorf("failed to check if reservation exists: %w", err)
		}

		if !reservationExists {
			return failure.NotFound("reservation not found") // nolint:wrapcheck
		}
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create penalty")

		return fmt.Errorf("failed to create penalty: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPenalty)
		shared.InvalidateCaches(c, s.cache, cacheCountPenalty)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPenaltiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPenalty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for penalties")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count penalties")

		return res, fmt.Errorf("failed to count penalties: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get penalties")

		return res, fmt.Errorf("failed to get penalties: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save penalties to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPenalty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count penalties")

		return res, fmt.Errorf("failed to count penalties: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save penalty count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PenaltyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPenalty, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	penalty, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get penalty")

		return res, fmt.Errorf("failed to get penalty: %w", err)
	}

	if penalty.ID == constant.Empty {
		return res, failure.NotFound("penalty not found") // nolint:wrapcheck
	}

	res.FromModel(penalty)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save penalty to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePenaltyRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdatePenaltyRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if penalty exists")

		return fmt.Errorf("failed to check if penalty exists: %w", err)
	}

	if !exist {
		return failure.NotFound("penalty not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update penalty")

		return fmt.Errorf("failed to update penalty: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPenalty, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete penalty from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPenalty)
		shared.InvalidateCaches(c, s.cache, cacheCountPenalty)
	}()

	return nil
}

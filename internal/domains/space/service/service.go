package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"atrium/config"
	"atrium/infras/otel"
	"atrium/infras/s3"
	"atrium/internal/domains/space/model"
	"atrium/internal/domains/space/model/dto"
	"atrium/internal/domains/space/repository"
	"atrium/shared"
	"atrium/shared/cache"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetSpace     = "space:get"
	cacheGetAllSpace  = "space:gets"
	cacheCountSpace   = "space:count"
	cacheGetUtilities = "utility:gets"
)

type Space interface {
	Create(ctx context.Context, req dto.CreateSpaceRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSpacesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.SpaceResponse, error)
	Update(ctx context.Context, req dto.UpdateSpaceRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetUtilities(ctx context.Context) (dto.GetUtilitiesResponse, error)
}

type serviceImpl struct {
	repo        repository.Space
	utilityRepo repository.Utility
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(repo repository.Space, utilityRepo repository.Utility, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Space {
	return &serviceImpl{
		repo:        repo,
		utilityRepo: utilityRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSpaceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL := constant.Empty
	uploadedObjectName := constant.Empty

	if req.Image != nil {
		imageURL, uploadedObjectName, err = s.uploadImage(ctx, req.ImageFile, req.Image)
		if err != nil {
			return err
		}
	}

	space := req.ToModel(user, imageURL)

	if err = s.repo.Insert(ctx, space); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		return err
	}

	if len(req.UtilityIDs) > 0 {
		if err = s.repo.ReplaceUtilities(ctx, space.ID, req.UtilityIDs); err != nil {
			log.Error().Err(err).Msg("failed to attach utilities to space")

			return fmt.Errorf("failed to attach utilities: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSpace)
		shared.InvalidateCaches(c, s.cache, cacheCountSpace)
	}()

	return nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url, objectName string, err error) {
	filename := uuid.NewString()

	parts := strings.Split(header.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err = s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, file, header, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, filename, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSpacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSpace, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for spaces")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count spaces")

		return res, fmt.Errorf("failed to count spaces: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get spaces")

		return res, fmt.Errorf("failed to get spaces: %w", err)
	}

	spaceIDs := make([]string, len(models))
	for i, mod := range models {
		spaceIDs[i] = mod.ID
	}

	utilities, err := s.repo.GetUtilities(ctx, spaceIDs...)
	if err != nil {
		log.Error().Err(err).Msg("failed to get space utilities")

		return res, fmt.Errorf("failed to get space utilities: %w", err)
	}

	res.FromModels(models, utilities, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save spaces to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSpace, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for space count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count spaces")

		return res, fmt.Errorf("failed to count spaces: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save space count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SpaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSpace, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for space")

		return res, nil
	}

	space, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get space")

		return res, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return res, failure.NotFound("space not found") // nolint:wrapcheck
	}

	utilities, err := s.repo.GetUtilities(ctx, space.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get space utilities")

		return res, fmt.Errorf("failed to get space utilities: %w", err)
	}

	res.FromModel(space, utilities[space.ID])

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save space to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSpaceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if space exists")

		return fmt.Errorf("failed to check if space exists: %w", err)
	}

	if !exist {
		return failure.NotFound("space not found") // nolint:wrapcheck
	}

	if req.Image != nil {
		imageURL, _, err := s.uploadImage(ctx, req.ImageFile, req.Image)
		if err != nil {
			return err
		}

		if err = s.repo.Update(ctx, map[string]any{model.FieldImageURL: imageURL}, filter); err != nil {
			return fmt.Errorf("failed to update space image: %w", err)
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update space")

		return fmt.Errorf("failed to update space: %w", err)
	}

	if req.UtilityIDs != nil {
		if err = s.repo.ReplaceUtilities(ctx, id, req.UtilityIDs); err != nil {
			log.Error().Err(err).Msg("failed to update space utilities")

			return fmt.Errorf("failed to update space utilities: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSpace, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete space from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSpace)
		shared.InvalidateCaches(c, s.cache, cacheCountSpace)
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
		log.Error().Err(err).Msg("failed to check if space exists")

		return fmt.Errorf("failed to check if space exists: %w", err)
	}

	if !exist {
		return failure.NotFound("space not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete space")

		return fmt.Errorf("failed to delete space: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSpace, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete space from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSpace)
		shared.InvalidateCaches(c, s.cache, cacheCountSpace)
	}()

	return nil
}

func (s *serviceImpl) GetUtilities(ctx context.Context) (res dto.GetUtilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetUtilities")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetUtilities, &res)
	if err == nil {
		return res, nil
	}

	utilities, err := s.utilityRepo.GetAll(ctx, gDto.QueryParams{SortBy: model.UtilityFieldKey, SortDir: "ASC"}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get utilities")

		return res, fmt.Errorf("failed to get utilities: %w", err)
	}

	res.FromModels(utilities)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetUtilities, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save utilities to cache")
		}
	}()

	return res, nil
}

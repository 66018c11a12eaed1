package service

import (
	"context"
	"fmt"
	"time"

	"atrium/config"
	"atrium/infras/accessctl"
	"atrium/infras/otel"
	"atrium/internal/domains/reservation/model"
	"atrium/internal/domains/reservation/model/dto"
	"atrium/internal/domains/reservation/repository"
	spaceModel "atrium/internal/domains/space/model"
	spaceRepo "atrium/internal/domains/space/repository"
	"atrium/internal/events"
	"atrium/shared"
	"atrium/shared/cache"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	"atrium/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Transition(ctx context.Context, req dto.TransitionRequest, id string) error
	CheckIn(ctx context.Context, id string) error
	CheckOut(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Reservation
	spaceRepo spaceRepo.Space
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	gateway   accessctl.Gateway
	events    events.Publisher
}

func New(
	repo repository.Reservation,
	spaceRepo spaceRepo.Space,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	gateway accessctl.Gateway,
	publisher events.Publisher,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		spaceRepo: spaceRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		gateway:   gateway,
		events:    publisher,
	}
}

func actor(ctx context.Context) (userID string, isAdmin bool) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return userID, role == constant.RoleAdmin
}

// Create admits a new reservation request. Guards run in a fixed order: space
// exists, space active, party size fits, window valid, then the conflict check
// serialized against concurrent admissions for the same space.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := actor(ctx)

	space, err := s.spaceRepo.Get(ctx, shared.FilterByID(req.SpaceID, spaceModel.FieldID, spaceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get space")

		return res, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return res, failure.NotFound("space not found") // nolint:wrapcheck
	}

	if !space.Bookable() {
		return res, failure.BadRequestFromString("space is not available for booking") // nolint:wrapcheck
	}

	if req.Attendees > space.Capacity {
		return res, failure.BadRequestFromString(fmt.Sprintf("attendees exceed space capacity of %d", space.Capacity)) // nolint:wrapcheck
	}

	reservation, err := req.ToModel(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reservation request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !reservation.EndTime.After(reservation.StartTime) {
		return res, failure.BadRequestFromString("end time must be after start time") // nolint:wrapcheck
	}

	conflict, err := s.repo.CreateIfAvailable(ctx, reservation)
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	if conflict {
		return res, failure.Conflict("space is already reserved for the requested time") // nolint:wrapcheck
	}

	s.events.PublishReservationEvent(ctx, events.ReservationEvent{
		Type:          events.TypeReservationRequested,
		ReservationID: reservation.ID,
		SpaceID:       reservation.SpaceID,
		UserID:        reservation.UserID,
		Actor:         userID,
	})

	s.invalidateListCaches(ctx)

	res.FromModel(reservation)

	return res, nil
}

// CheckAvailability reports whether a window is free of pending or approved
// reservations. It does not hold the space lock, so a positive answer can
// still lose to a concurrent admission.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	space, err := s.spaceRepo.Get(ctx, shared.FilterByID(req.SpaceID, spaceModel.FieldID, spaceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get space")

		return res, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return res, failure.NotFound("space not found") // nolint:wrapcheck
	}

	date, start, end, err := req.Window()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !end.After(start) {
		return res, failure.BadRequestFromString("end time must be after start time") // nolint:wrapcheck
	}

	conflict, err := s.repo.HasConflict(ctx, req.SpaceID, date, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	return dto.AvailabilityResponse{
		SpaceID:   req.SpaceID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Available: !conflict,
	}, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.scopeToOwner(ctx, filter)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.scopeToOwner(ctx, filter)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return res, err
	}

	userID, isAdmin := actor(ctx)
	if !isAdmin && !reservation.OwnedBy(userID) {
		return res, failure.ResourceRestrictedError
	}

	res.FromModel(reservation)

	return res, nil
}

// Transition moves the reservation through the state machine. Approve, reject,
// cancel and no-show all route here; check-in/out have dedicated paths because
// check-in does not change status.
func (s *serviceImpl) Transition(ctx context.Context, req dto.TransitionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	target := model.Status(req.Status)
	userID, isAdmin := actor(ctx)

	if err = s.authorizeTransition(reservation, target, userID, isAdmin); err != nil {
		return err
	}

	if !reservation.Status.CanTransitionTo(target) {
		return failure.InvalidTransition(fmt.Sprintf("cannot move reservation from %s to %s", reservation.Status, target)) // nolint:wrapcheck
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldStatus:        string(target),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: userID,
	}

	switch target {
	case model.StatusApproved, model.StatusRejected:
		fields[model.FieldApprovedBy] = userID
		fields[model.FieldApprovedAt] = now
	case model.StatusCancelled:
		fields[model.FieldCancelledAt] = now
		if req.CancellationReason != constant.Empty {
			fields[model.FieldCancellationReason] = req.CancellationReason
		}
	}

	moved, err := s.repo.Transition(ctx, id, reservation.Status, fields)
	if err != nil {
		log.Error().Err(err).Msg("failed to transition reservation")

		return fmt.Errorf("failed to transition reservation: %w", err)
	}

	if !moved {
		return failure.InvalidTransition("reservation status changed concurrently, retry") // nolint:wrapcheck
	}

	switch target {
	case model.StatusApproved:
		s.mintAccessSession(ctx, reservation)
	case model.StatusCancelled:
		s.revokeAccessSession(ctx, reservation)
	}

	s.events.PublishReservationEvent(ctx, events.ReservationEvent{
		Type:          eventTypeFor(target),
		ReservationID: reservation.ID,
		SpaceID:       reservation.SpaceID,
		UserID:        reservation.UserID,
		Actor:         userID,
	})

	s.invalidateCaches(ctx, id)

	return nil
}

func eventTypeFor(target model.Status) string {
	switch target {
	case model.StatusApproved:
		return events.TypeReservationApproved
	case model.StatusRejected:
		return events.TypeReservationRejected
	case model.StatusCancelled:
		return events.TypeReservationCancelled
	case model.StatusNoShow:
		return events.TypeReservationNoShow
	default:
		return events.TypeReservationCompleted
	}
}

// authorizeTransition enforces who may request which move. Ordinary users may
// only cancel their own pending reservations; everything else is admin work.
func (s *serviceImpl) authorizeTransition(reservation model.Reservation, target model.Status, userID string, isAdmin bool) error {
	if isAdmin {
		return nil
	}

	if target != model.StatusCancelled {
		return failure.ForbiddenError
	}

	if !reservation.OwnedBy(userID) {
		return failure.ResourceRestrictedError
	}

	if reservation.Status != model.StatusPending {
		return failure.Forbidden("only pending reservations can be cancelled by their owner") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	userID, isAdmin := actor(ctx)
	if !isAdmin && !reservation.OwnedBy(userID) {
		return failure.ResourceRestrictedError
	}

	if reservation.Status != model.StatusApproved {
		return failure.InvalidTransition("only approved reservations can be checked in") // nolint:wrapcheck
	}

	if reservation.CheckedIn() {
		return failure.InvalidTransition("reservation is already checked in") // nolint:wrapcheck
	}

	now := timezone.Now()
	moved, err := s.repo.CheckIn(ctx, id, map[string]any{
		model.FieldCheckInAt:     now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: userID,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check in reservation")

		return fmt.Errorf("failed to check in reservation: %w", err)
	}

	if !moved {
		return failure.InvalidTransition("reservation is already checked in") // nolint:wrapcheck
	}

	s.events.PublishReservationEvent(ctx, events.ReservationEvent{
		Type:          events.TypeReservationCheckedIn,
		ReservationID: reservation.ID,
		SpaceID:       reservation.SpaceID,
		UserID:        reservation.UserID,
		Actor:         userID,
	})

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}

	userID, isAdmin := actor(ctx)
	if !isAdmin && !reservation.OwnedBy(userID) {
		return failure.ResourceRestrictedError
	}

	if !reservation.CheckedIn() {
		return failure.InvalidTransition("reservation has not been checked in") // nolint:wrapcheck
	}

	if reservation.CheckedOut() {
		return failure.InvalidTransition("reservation is already checked out") // nolint:wrapcheck
	}

	now := timezone.Now()
	moved, err := s.repo.CheckOut(ctx, id, map[string]any{
		model.FieldStatus:        string(model.StatusCompleted),
		model.FieldCheckOutAt:    now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: userID,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check out reservation")

		return fmt.Errorf("failed to check out reservation: %w", err)
	}

	if !moved {
		return failure.InvalidTransition("reservation cannot be checked out") // nolint:wrapcheck
	}

	s.events.PublishReservationEvent(ctx, events.ReservationEvent{
		Type:          events.TypeReservationCompleted,
		ReservationID: reservation.ID,
		SpaceID:       reservation.SpaceID,
		UserID:        reservation.UserID,
		Actor:         userID,
	})

	s.invalidateCaches(ctx, id)

	return nil
}

// Delete is the admin-only escape hatch outside the state machine.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reservation exists")

		return fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.invalidateCaches(ctx, id)

	return nil
}

func (s *serviceImpl) fetch(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

// scopeToOwner restricts listings to the caller's own reservations unless the
// caller is an admin.
func (s *serviceImpl) scopeToOwner(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	userID, isAdmin := actor(ctx)
	if isAdmin {
		return filter
	}

	owner := gDto.Filter{
		Field:    model.FieldUserID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	}

	if len(filter.Filters) == 0 {
		return gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters:  []any{owner},
		}
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{owner, filter},
	}
}

// mintAccessSession asks the access-control gateway for a door-unlock session
// covering the reservation window. Failures are logged and swallowed, the
// approval stands either way.
func (s *serviceImpl) mintAccessSession(ctx context.Context, reservation model.Reservation) {
	start := time.Date(
		reservation.Date.Year(), reservation.Date.Month(), reservation.Date.Day(),
		reservation.StartTime.Hour(), reservation.StartTime.Minute(), 0, 0,
		timezone.GetLocation(),
	)

	session, err := s.gateway.CreateSession(ctx, accessctl.SessionRequest{
		SpaceID:         reservation.SpaceID,
		DurationMinutes: reservation.DurationMinutes(),
		StartTime:       start,
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("reservation_id", reservation.ID).
			Msg("access session could not be created, proceeding without one")

		return
	}

	err = s.repo.Update(ctx, map[string]any{model.FieldAccessSessionID: session.ID},
		shared.FilterByID(reservation.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().
			Err(err).
			Str("reservation_id", reservation.ID).
			Str("session_id", session.ID).
			Msg("failed to store access session handle")
	}
}

// revokeAccessSession tears down the unlock session of a cancelled reservation,
// best effort.
func (s *serviceImpl) revokeAccessSession(ctx context.Context, reservation model.Reservation) {
	if reservation.AccessSessionID == nil || *reservation.AccessSessionID == constant.Empty {
		return
	}

	if err := s.gateway.RevokeSession(ctx, *reservation.AccessSessionID); err != nil {
		log.Warn().
			Err(err).
			Str("reservation_id", reservation.ID).
			Str("session_id", *reservation.AccessSessionID).
			Msg("access session could not be revoked")
	}
}

func (s *serviceImpl) invalidateListCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}

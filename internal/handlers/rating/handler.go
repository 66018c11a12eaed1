package rating

import (
	"net/http"

	"atrium/infras/otel"
	"atrium/internal/domains/rating/model"
	"atrium/internal/domains/rating/model/dto"
	"atrium/internal/domains/rating/service"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/validator"
	"atrium/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Rating
	otel    otel.Otel
}

func New(service service.Rating, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/ratings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRating)
		routerGroup.Get("/", handler.GetRatings)
		routerGroup.Get("/{id}", handler.GetRatingByID)
		routerGroup.Patch("/{id}", handler.UpdateRating)
		routerGroup.Delete("/{id}", handler.DeleteRating)
	})
}

// CreateRating issues a conduct rating for a user.
// @Summary Create a new rating
// @Description Rate a user's conduct, optionally tied to a completed reservation. A reservation can carry at most one rating.
// @Tags Rating
// @Accept json
// @Produce json
// @Param request body dto.CreateRatingRequest true "Create Rating Request"
// @Success 201 {object} response.Message "Rating created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ratings [post]
// @Security BearerAuth
func (handler *Handler) CreateRating(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRating")
	defer scope.End()

	req := dto.CreateRatingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create rating")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rating created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Rating created successfully")
}

// GetRatings retrieves all ratings based on query parameters.
// @Summary Get all ratings
// @Description Retrieve all ratings with optional filtering and pagination.
// @Tags Rating
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param rated_user_id query string false "Filter by rated user ID"
// @Param reservation_id query string false "Filter by reservation ID"
// @Success 200 {object} response.Data[dto.GetRatingsResponse] "List of ratings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ratings [get]
// @Security BearerAuth
func (handler *Handler) GetRatings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRatings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	ratedUserID := r.URL.Query().Get(model.FieldRatedUserID)
	reservationID := r.URL.Query().Get(model.FieldReservationID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if ratedUserID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRatedUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    ratedUserID,
			Table:    model.TableName,
		})
	}

	if reservationID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldReservationID,
			Operator: gDto.FilterOperatorEq,
			Value:    reservationID,
			Table:    model.TableName,
		})
	}

	ratings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get ratings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Ratings retrieved successfully")

	response.WithJSON(w, http.StatusOK, ratings)
}

// GetRatingByID retrieves a rating by its ID.
// @Summary Get a rating by ID
// @Description Retrieve a rating by its unique identifier.
// @Tags Rating
// @Accept json
// @Produce json
// @Param id path string true "Rating ID"
// @Success 200 {object} response.Data[dto.RatingResponse] "Rating details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ratings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRatingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRatingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	rating, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rating by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rating retrieved successfully")

	response.WithJSON(w, http.StatusOK, rating)
}

// UpdateRating updates an existing rating by its ID.
// @Summary Update a rating by ID
// @Description Adjust the score or comment of an existing rating.
// @Tags Rating
// @Accept json
// @Produce json
// @Param id path string true "Rating ID"
// @Param request body dto.UpdateRatingRequest true "Update Rating Request"
// @Success 200 {object} response.Message "Rating updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ratings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRating")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRatingRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update rating")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rating updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Rating updated successfully")
}

// DeleteRating deletes a rating by its ID.
// @Summary Delete a rating by ID
// @Description Remove a rating using its unique identifier.
// @Tags Rating
// @Accept json
// @Produce json
// @Param id path string true "Rating ID"
// @Success 200 {object} response.Message "Rating deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/ratings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRating")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete rating")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Rating deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Rating deleted successfully")
}

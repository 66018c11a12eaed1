package penalty

import (
	"net/http"

	"atrium/infras/otel"
	"atrium/internal/domains/penalty/model"
	"atrium/internal/domains/penalty/model/dto"
	"atrium/internal/domains/penalty/service"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/validator"
	"atrium/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Penalty
	otel    otel.Otel
}

func New(service service.Penalty, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/penalties", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePenalty)
		routerGroup.Get("/", handler.GetPenalties)
		routerGroup.Get("/{id}", handler.GetPenaltyByID)
		routerGroup.Patch("/{id}", handler.UpdatePenalty)
	})
}

// CreatePenalty issues a penalty against a user.
// @Summary Create a new penalty
// @Description Issue penalty points to a user, optionally tied to a reservation.
// @Tags Penalty
// @Accept json
// @Produce json
// @Param request body dto.CreatePenaltyRequest true "Create Penalty Request"
// @Success 201 {object} response.Message "Penalty created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/penalties [post]
// @Security BearerAuth
func (handler *Handler) CreatePenalty(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePenalty")
	defer scope.End()

	req := dto.CreatePenaltyRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create penalty")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Penalty created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Penalty created successfully")
}

// GetPenalties retrieves all penalties based on query parameters.
// @Summary Get all penalties
// @Description Retrieve all penalties with optional filtering and pagination.
// @Tags Penalty
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param user_id query string false "Filter by user ID"
// @Param status query string false "Filter by status (active, resolved, expired)"
// @Success 200 {object} response.Data[dto.GetPenaltiesResponse] "List of penalties"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/penalties [get]
// @Security BearerAuth
func (handler *Handler) GetPenalties(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPenalties")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	userID := r.URL.Query().Get(model.FieldUserID)
	status := r.URL.Query().Get(model.FieldStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if userID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	penalties, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get penalties")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Penalties retrieved successfully")

	response.WithJSON(w, http.StatusOK, penalties)
}

// GetPenaltyByID retrieves a penalty by its ID.
// @Summary Get a penalty by ID
// @Description Retrieve a penalty by its unique identifier.
// @Tags Penalty
// @Accept json
// @Produce json
// @Param id path string true "Penalty ID"
// @Success 200 {object} response.Data[dto.PenaltyResponse] "Penalty details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/penalties/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPenaltyByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPenaltyByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	penalty, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get penalty by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Penalty retrieved successfully")

	response.WithJSON(w, http.StatusOK, penalty)
}

// UpdatePenalty updates an existing penalty by its ID.
// @Summary Update a penalty by ID
// @Description Adjust the reason, points, or status of an existing penalty.
// @Tags Penalty
// @Accept json
// @Produce json
// @Param id path string true "Penalty ID"
// @Param request body dto.UpdatePenaltyRequest true "Update Penalty Request"
// @Success 200 {object} response.Message "Penalty updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/penalties/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePenalty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePenalty")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePenaltyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update penalty")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Penalty updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Penalty updated successfully")
}

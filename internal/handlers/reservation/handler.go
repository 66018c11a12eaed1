package reservation

import (
	"net/http"

	"atrium/infras/otel"
	"atrium/internal/domains/reservation/model"
	"atrium/internal/domains/reservation/model/dto"
	"atrium/internal/domains/reservation/service"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	"atrium/shared/validator"
	"atrium/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/myreservations", handler.GetMyReservations)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}", handler.TransitionReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
		routerGroup.Post("/{id}/check-in", handler.CheckIn)
		routerGroup.Post("/{id}/check-out", handler.CheckOut)
	})
}

// CreateReservation handles the creation of a new reservation request.
// @Summary Create a new reservation
// @Description Request a space for a date and time window. The reservation starts in pending status; overlapping requests for the same space are rejected with 409.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Reservation created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// CheckAvailability reports whether a space is free for a time window.
// @Summary Check space availability
// @Description Check whether a space is free of pending or approved reservations for a date and time window. The answer is advisory; submitting the reservation may still be rejected with 409.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param space_id query string true "Space ID"
// @Param reservation_date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Start time (HH:MM)"
// @Param end_time query string true "End time (HH:MM)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability of the requested window"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/availability [get]
// @Security BearerAuth
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{
		SpaceID:   request.URL.Query().Get(model.FieldSpaceID),
		Date:      request.URL.Query().Get(model.FieldDate),
		StartTime: request.URL.Query().Get(model.FieldStartTime),
		EndTime:   request.URL.Query().Get(model.FieldEndTime),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.CheckAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetReservations retrieves all reservations based on query parameters.
// @Summary Get all reservations
// @Description Retrieve reservations with optional filtering and pagination. Non-admin callers only see their own reservations.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param space_id query string false "Filter by space ID"
// @Param status query string false "Filter by status (pending, approved, rejected, cancelled, completed, no_show)"
// @Param reservation_date query string false "Filter by reservation date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := handler.listFilters(r)

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetMyReservations retrieves all reservations for the currently authenticated user.
// @Summary Get my reservations
// @Description Retrieve all reservations requested by the currently authenticated user.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param reservation_date query string false "Filter by reservation date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of user's reservations"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/myreservations [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := handler.listFilters(r)
	filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
		Field:    model.FieldUserID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	})

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User reservations retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, reservations)
}

func (handler *Handler) listFilters(r *http.Request) gDto.FilterGroup {
	spaceID := r.URL.Query().Get(model.FieldSpaceID)
	status := r.URL.Query().Get(model.FieldStatus)
	date := r.URL.Query().Get(model.FieldDate)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if spaceID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSpaceID,
			Operator: gDto.FilterOperatorEq,
			Value:    spaceID,
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

	if date != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// GetReservationByID retrieves a reservation by its ID.
// @Summary Get a reservation by ID
// @Description Retrieve a reservation by its unique identifier.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// TransitionReservation moves a reservation through its lifecycle.
// @Summary Transition a reservation
// @Description Apply a status change (approve, reject, cancel, no_show). Admins may apply any legal transition; owners may only cancel their own pending reservations. Illegal moves return 422.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.TransitionRequest true "Transition Request"
// @Success 200 {object} response.Message "Reservation transitioned successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) TransitionReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.TransitionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Transition(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to transition reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation moved to " + req.Status + " by user " + user)

	response.WithMessage(w, http.StatusOK, "Reservation "+req.Status)
}

// CheckIn records arrival for an approved reservation.
// @Summary Check in to a reservation
// @Description Record the check-in timestamp for an approved reservation. Double check-ins return 422.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Checked in successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.CheckIn(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation checked in successfully")

	response.WithMessage(w, http.StatusOK, "Checked in successfully")
}

// CheckOut records departure and completes the reservation.
// @Summary Check out of a reservation
// @Description Record the check-out timestamp and mark the reservation completed. Checking out without a prior check-in returns 422.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Checked out successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/check-out [post]
// @Security BearerAuth
func (handler *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOut")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.CheckOut(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation checked out successfully")

	response.WithMessage(w, http.StatusOK, "Checked out successfully")
}

// DeleteReservation deletes a reservation by its ID.
// @Summary Delete a reservation by ID
// @Description Remove a reservation record entirely. Admin only; cancelling is the normal path.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Reservation deleted successfully")
}

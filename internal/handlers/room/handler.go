package room

import (
	"net/http"
	"time"

	"hotel/infras/otel"
	bookingDto "hotel/internal/domains/booking/model/dto"
	lifecycleService "hotel/internal/domains/lifecycle/service"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service   service.Room
	lifecycle lifecycleService.Lifecycle
	otel      otel.Otel
}

func New(service service.Room, lifecycle lifecycleService.Lifecycle, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		lifecycle: lifecycle,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRoom)
		routerGroup.Get("/", handler.GetRooms)

		byID := routerGroup.With(middleware.PathUUID(constant.RequestParamID, failure.RoomNotFoundError))
		byID.Get("/{id}", handler.GetRoomByID)
		byID.Patch("/{id}", handler.UpdateRoom)
		byID.Delete("/{id}", handler.DeleteRoom)
		byID.Post("/{id}/maintenance", handler.SetMaintenance)
		byID.Post("/{id}/check-in", handler.CheckIn)
		byID.Get("/{id}/availability", handler.GetAvailability)
	})
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a room. New rooms are always available.
// @Tags Room
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[dto.RoomResponse] "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created")

	response.WithJSON(writer, http.StatusCreated, room)
}

// GetRooms lists rooms for the room board.
// @Summary Get all rooms
// @Description Retrieve rooms with optional status, type and floor filters and pagination.
// @Tags Room
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status" Enums(available, occupied, cleaning, maintenance)
// @Param type query string false "Filter by type" Enums(short, overnight)
// @Param floor query integer false "Filter by floor"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, model.FieldNumber, model.FieldFloor, model.FieldStatus, constant.FieldCreatedAt)

	query := r.URL.Query()
	status := query.Get(model.FieldStatus)
	roomType := query.Get(model.FieldType)

	if status != "" && !model.Status(status).IsValid() {
		response.WithError(w, failure.BadRequestFromString("invalid room status"))

		return
	}

	if roomType != "" && !model.Type(roomType).IsValid() {
		response.WithError(w, failure.BadRequestFromString("invalid room type"))

		return
	}

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddEq(model.TableName, model.FieldStatus, status)
	filterGroup.AddEq(model.TableName, model.FieldType, roomType)
	filterGroup.AddEq(model.TableName, model.FieldFloor, query.Get(model.FieldFloor))

	rooms, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom updates the descriptive fields of a room.
// @Summary Update a room by ID
// @Description Status is not editable here; use the maintenance and lifecycle endpoints.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomRequest true "Update Room Request"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	req := dto.UpdateRoomRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// DeleteRoom deletes a room that no booking or job references.
// @Summary Delete a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete room")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}

// SetMaintenance takes an available room out of service or returns it.
// @Summary Toggle room maintenance
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.MaintenanceRequest true "Maintenance Request"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room status changed"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/maintenance [post]
// @Security BearerAuth
func (handler *Handler) SetMaintenance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetMaintenance")
	defer scope.End()

	req := dto.MaintenanceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.SetMaintenance(ctx, chi.URLParam(r, constant.RequestParamID), req.Enabled)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change room maintenance")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// CheckIn registers a walk-in guest and occupies the room.
// @Summary Walk-in check-in
// @Description Create a checked-in booking on an available room. Planned check-out defaults to the plan's included hours.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body bookingDto.CheckInRequest true "Check-in Request"
// @Success 201 {object} response.Data[bookingDto.BookingResponse] "Guest checked in"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/check-in [post]
// @Security BearerAuth
func (handler *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	req := bookingDto.CheckInRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.lifecycle.CheckIn(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in walk-in guest")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Walk-in checked in")

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetAvailability reports whether a room is free for [start, end).
// @Summary Check room availability
// @Description Only confirmed and checked-in bookings hold a room. Back-to-back stays do not conflict.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param start query string true "Start (RFC3339)"
// @Param end query string true "End (RFC3339)"
// @Param exclude_booking_id query string false "Booking to ignore, e.g. the one being edited"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id}/availability [get]
// @Security BearerAuth
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	query := r.URL.Query()

	start, end, err := parseWindow(query.Get(constant.RequestParamStart), query.Get(constant.RequestParamEnd))
	if err != nil {
		response.WithError(w, err)

		return
	}

	exclude := query.Get(constant.RequestParamExcludeBookingID)
	if exclude != "" && validator.ValidateVar(exclude, "uuid") != nil {
		response.WithError(w, failure.BadRequestFromString("invalid exclude_booking_id"))

		return
	}

	res, err := handler.lifecycle.IsRoomAvailable(ctx, chi.URLParam(r, constant.RequestParamID), start, end, exclude)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check room availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func parseWindow(rawStart, rawEnd string) (start, end time.Time, err error) {
	if rawStart == "" || rawEnd == "" {
		return start, end, failure.BadRequestFromString("start and end are required")
	}

	if start, err = timezone.ParseTimestamp(rawStart); err != nil {
		return start, end, failure.BadRequestFromString("start must be an RFC3339 timestamp")
	}

	if end, err = timezone.ParseTimestamp(rawEnd); err != nil {
		return start, end, failure.BadRequestFromString("end must be an RFC3339 timestamp")
	}

	return start, end, nil
}

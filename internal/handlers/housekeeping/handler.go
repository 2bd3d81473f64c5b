package housekeeping

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/housekeeping/model"
	"hotel/internal/domains/housekeeping/model/dto"
	"hotel/internal/domains/housekeeping/service"
	lifecycleService "hotel/internal/domains/lifecycle/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/middleware"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service   service.Housekeeping
	lifecycle lifecycleService.Lifecycle
	otel      otel.Otel
}

func New(service service.Housekeeping, lifecycle lifecycleService.Lifecycle, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		lifecycle: lifecycle,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/housekeeping", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateJob)
		routerGroup.Get("/", handler.GetJobs)

		byID := routerGroup.With(middleware.PathUUID(constant.RequestParamID, failure.JobNotFoundError))
		byID.Get("/{id}", handler.GetJobByID)
		byID.Post("/{id}/start", handler.StartJob)
		byID.Post("/{id}/complete", handler.CompleteJob)
	})
}

// CreateJob opens a maintenance or inspection job. Cleaning jobs come from checkout only.
// @Summary Create a housekeeping job
// @Tags Housekeeping
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Create Job Request"
// @Success 201 {object} response.Data[dto.JobResponse] "Job created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/housekeeping [post]
// @Security BearerAuth
func (handler *Handler) CreateJob(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateJob")
	defer scope.End()

	req := dto.CreateJobRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	job, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create housekeeping job")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, job)
}

// GetJobs lists housekeeping jobs.
// @Summary Get all housekeeping jobs
// @Tags Housekeeping
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room"
// @Param status query string false "Filter by status" Enums(pending, in_progress, completed)
// @Param job_type query string false "Filter by type" Enums(cleaning, maintenance, inspection)
// @Param priority query string false "Filter by priority" Enums(low, normal, high, urgent)
// @Param assigned_to query string false "Filter by assignee"
// @Success 200 {object} response.Data[dto.GetJobsResponse] "List of jobs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/housekeeping [get]
// @Security BearerAuth
func (handler *Handler) GetJobs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetJobs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.TableName, model.FieldPriority, model.FieldStatus, constant.FieldCreatedAt)

	query := r.URL.Query()
	status := query.Get(model.FieldStatus)
	jobType := query.Get(model.FieldJobType)
	priority := query.Get(model.FieldPriority)

	switch {
	case status != "" && !model.Status(status).IsValid():
		response.WithError(w, failure.BadRequestFromString("invalid job status"))

		return
	case jobType != "" && !model.JobType(jobType).IsValid():
		response.WithError(w, failure.BadRequestFromString("invalid job type"))

		return
	case priority != "" && !model.Priority(priority).IsValid():
		response.WithError(w, failure.BadRequestFromString("invalid job priority"))

		return
	}

	roomID := query.Get(model.FieldRoomID)
	if roomID != "" && validator.ValidateVar(roomID, "uuid") != nil {
		response.WithError(w, failure.BadRequestFromString("invalid room_id"))

		return
	}

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	filterGroup.AddEq(model.TableName, model.FieldRoomID, roomID)
	filterGroup.AddEq(model.TableName, model.FieldStatus, status)
	filterGroup.AddEq(model.TableName, model.FieldJobType, jobType)
	filterGroup.AddEq(model.TableName, model.FieldPriority, priority)
	filterGroup.AddEq(model.TableName, model.FieldAssignedTo, query.Get(model.FieldAssignedTo))

	jobs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get housekeeping jobs")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, jobs)
}

// GetJobByID retrieves a housekeeping job by its ID.
// @Summary Get a housekeeping job by ID
// @Tags Housekeeping
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Data[dto.JobResponse] "Job details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/housekeeping/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetJobByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetJobByID")
	defer scope.End()

	job, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get housekeeping job")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, job)
}

// StartJob assigns a pending job and marks it in progress.
// @Summary Start a housekeeping job
// @Tags Housekeeping
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.StartJobRequest false "Assignee, defaults to the caller"
// @Success 200 {object} response.Data[dto.JobResponse] "Job started"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/housekeeping/{id}/start [post]
// @Security BearerAuth
func (handler *Handler) StartJob(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartJob")
	defer scope.End()

	req := dto.StartJobRequest{}

	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	job, err := handler.service.Start(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start housekeeping job")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, job)
}

// CompleteJob closes a job. A finished cleaning job makes its room available.
// @Summary Complete a housekeeping job
// @Tags Housekeeping
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Data[dto.JobResponse] "Job completed"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/housekeeping/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteJob(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteJob")
	defer scope.End()

	job, err := handler.lifecycle.CompleteHousekeeping(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete housekeeping job")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Housekeeping job completed")

	response.WithJSON(w, http.StatusOK, job)
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/housekeeping/model"
	"hotel/internal/domains/housekeeping/model/dto"
	"hotel/internal/domains/housekeeping/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Housekeeping interface {
	Create(ctx context.Context, req dto.CreateJobRequest) (dto.JobResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetJobsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.JobResponse, error)
	Start(ctx context.Context, req dto.StartJobRequest, id string) (dto.JobResponse, error)
}

type serviceImpl struct {
	repo       repository.Job
	roomRepo   roomRepo.Room
	transactor postgres.Transactor
	cfg        *config.Config
	otel       otel.Otel
}

func New(repo repository.Job, roomRepo roomRepo.Room, transactor postgres.Transactor, cfg *config.Config, otel otel.Otel) Housekeeping {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		transactor: transactor,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateJobRequest) (res dto.JobResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.RoomNotFoundError
	}

	job := req.ToModel(user)
	job.RoomNumber = room.Number

	if err = s.repo.Insert(ctx, job); err != nil {
		log.Error().Err(err).Msg("failed to create housekeeping job")

		return res, fmt.Errorf("failed to create housekeeping job: %w", err)
	}

	logger.Lifecycle(model.EntityName, job.ID, constant.Empty, job.Status.String()).
		Str("room_id", job.RoomID).Str("job_type", string(job.JobType)).Str("by", user).Msg("housekeeping job created")

	res.FromModel(job)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetJobsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count housekeeping jobs")

		return res, fmt.Errorf("failed to count housekeeping jobs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get housekeeping jobs")

		return res, fmt.Errorf("failed to get housekeeping jobs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count housekeeping jobs")

		return res, fmt.Errorf("failed to count housekeeping jobs: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.JobResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	job, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get housekeeping job")

		return res, fmt.Errorf("failed to get housekeeping job: %w", err)
	}

	if job.ID == constant.Empty {
		return res, failure.JobNotFoundError
	}

	res.FromModel(job)

	return res, nil
}

// Start hands a pending job to a staff member.
func (s *serviceImpl) Start(ctx context.Context, req dto.StartJobRequest, id string) (res dto.JobResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	assignee := req.AssignedTo
	if assignee == constant.Empty {
		assignee = user
	}

	var job model.Job

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		job, err = LockTx(ctx, s.repo, tx, id)
		if err != nil {
			return err
		}

		from := job.Status
		now := timezone.Now()

		if err = job.Start(assignee, now); err != nil {
			return err
		}

		job.ModifiedAt = now
		job.ModifiedBy = user

		if err = ApplyStatusTx(ctx, s.repo, tx, job, from); err != nil {
			return err
		}

		logger.Lifecycle(model.EntityName, job.ID, from.String(), job.Status.String()).Str("assigned_to", assignee).Msg("housekeeping job started")

		return nil
	})
	if err != nil {
		var fail *failure.Failure
		if !errors.As(err, &fail) {
			log.Error().Err(err).Str("job_id", id).Msg("failed to start housekeeping job")
		}

		return res, err
	}

	res.FromModel(job)

	return res, nil
}

// LockTx reads the job with a row lock.
func LockTx(ctx context.Context, repo repository.Job, tx *sqlx.Tx, id string) (model.Job, error) {
	job, err := repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return job, fmt.Errorf("failed to lock housekeeping job: %w", err)
	}

	if job.ID == constant.Empty {
		return job, failure.JobNotFoundError
	}

	return job, nil
}

// ApplyStatusTx persists the job's progress only if the row still holds from.
func ApplyStatusTx(ctx context.Context, repo repository.Job, tx *sqlx.Tx, job model.Job, from model.Status) error {
	fields := map[string]any{
		model.FieldStatus:        job.Status,
		model.FieldAssignedTo:    job.AssignedTo,
		model.FieldStartedAt:     job.StartedAt,
		model.FieldCompletedAt:   job.CompletedAt,
		constant.FieldModifiedAt: job.ModifiedAt,
		constant.FieldModifiedBy: job.ModifiedBy,
	}

	affected, err := repo.UpdateTxAffected(ctx, tx, fields, repository.StatusFilter(job.ID, from))
	if err != nil {
		return fmt.Errorf("failed to update housekeeping job: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("housekeeping job %s changed concurrently: %w", job.ID, failure.IllegalTransitionError)
	}

	return nil
}

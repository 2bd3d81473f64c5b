package service_test

import (
	"context"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	pgMocks "hotel/infras/postgres/mocks"
	jobMocks "hotel/internal/domains/housekeeping/mocks"
	"hotel/internal/domains/housekeeping/model"
	"hotel/internal/domains/housekeeping/model/dto"
	"hotel/internal/domains/housekeeping/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo       *jobMocks.MockJob
	roomRepo   *roomMocks.MockRoom
	transactor *pgMocks.Transactor
	svc        service.Housekeeping
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       jobMocks.NewMockJob(ctrl),
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		transactor: pgMocks.NewTransactor(),
	}

	f.svc = service.New(f.repo, f.roomRepo, f.transactor, &config.Config{}, mocks.NewOtel())

	return f
}

func staffContext(user string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, user)
}

func TestHousekeepingService_Create(t *testing.T) {
	req := dto.CreateJobRequest{
		RoomID:      "r1",
		JobType:     model.JobTypeMaintenance,
		Description: "Air conditioner leaks",
	}

	t.Run("defaults to normal priority", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "r1", Number: "101"}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, job model.Job) error {
				assert.Equal(t, model.PriorityNormal, job.Priority)
				assert.Equal(t, model.StatusPending, job.Status)
				assert.Nil(t, job.BookingID)

				return nil
			})

		res, err := f.svc.Create(staffContext("admin-1"), req)

		require.NoError(t, err)
		assert.Equal(t, "101", res.RoomNumber)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(staffContext("admin-1"), req)

		assert.ErrorIs(t, err, failure.RoomNotFoundError)
	})
}

func TestHousekeepingService_Start(t *testing.T) {
	pendingJob := func() model.Job {
		return model.Job{ID: "j1", RoomID: "r1", JobType: model.JobTypeCleaning, Status: model.StatusPending, Priority: model.PriorityNormal}
	}

	t.Run("caller takes the job", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(pendingJob(), nil)
		f.repo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, model.StatusPending, args["current_status"])
				assert.Equal(t, model.StatusInProgress, fields[model.FieldStatus])

				return 1, nil
			})

		res, err := f.svc.Start(staffContext("hk-1"), dto.StartJobRequest{}, "j1")

		require.NoError(t, err)
		assert.Equal(t, model.StatusInProgress, res.Status)
		require.NotNil(t, res.AssignedTo)
		assert.Equal(t, "hk-1", *res.AssignedTo)
		assert.NotNil(t, res.StartedAt)
	})

	t.Run("already in progress", func(t *testing.T) {
		f := newFixture(t)

		job := pendingJob()
		job.Status = model.StatusInProgress

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(job, nil)

		_, err := f.svc.Start(staffContext("hk-1"), dto.StartJobRequest{AssignedTo: "hk-2"}, "j1")

		assert.ErrorIs(t, err, failure.IllegalTransitionError)
		assert.Equal(t, 1, f.transactor.Rollbacks)
	})

	t.Run("lost race", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(pendingJob(), nil)
		f.repo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Start(staffContext("hk-1"), dto.StartJobRequest{}, "j1")

		assert.ErrorIs(t, err, failure.IllegalTransitionError)
	})

	t.Run("unknown job", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Job{}, nil)

		_, err := f.svc.Start(staffContext("hk-1"), dto.StartJobRequest{}, "missing")

		assert.ErrorIs(t, err, failure.JobNotFoundError)
	})
}

package service_test

import (
	"context"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	pgMocks "hotel/infras/postgres/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	jobMocks "hotel/internal/domains/housekeeping/mocks"
	jobModel "hotel/internal/domains/housekeeping/model"
	"hotel/internal/domains/lifecycle/service"
	notificationMocks "hotel/internal/domains/notification/mocks"
	notificationModel "hotel/internal/domains/notification/model"
	rateMocks "hotel/internal/domains/rate/mocks"
	rateModel "hotel/internal/domains/rate/model"
	receiptMocks "hotel/internal/domains/receipt/mocks"
	receiptModel "hotel/internal/domains/receipt/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/money"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const waitTimeout = 2 * time.Second

func hours(h int) *int {
	return &h
}

func rateTable() rateModel.Table {
	return rateModel.NewTable([]rateModel.Rate{
		{RateType: "short_3h", Price: money.FromMajor(300), DurationHours: hours(3), IsActive: true},
		{RateType: "overnight", Price: money.FromMajor(800), DurationHours: hours(12), IsActive: true},
		{RateType: "extended", Price: money.FromMajor(100), IsActive: true},
	}, rateModel.Mapping{
		Plans: map[rateModel.PlanType]string{
			rateModel.PlanShort:     "short_3h",
			rateModel.PlanOvernight: "overnight",
		},
		Overtime: "extended",
	})
}

type fixture struct {
	bookingRepo *bookingMocks.MockBooking
	roomRepo    *roomMocks.MockRoom
	jobRepo     *jobMocks.MockJob
	rates       *rateMocks.MockRateService
	receipts    *receiptMocks.MockReceipt
	publisher   *notificationMocks.MockPublisher
	transactor  *pgMocks.Transactor
	svc         service.Lifecycle
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f := fixture{
		bookingRepo: bookingMocks.NewMockBooking(ctrl),
		roomRepo:    roomMocks.NewMockRoom(ctrl),
		jobRepo:     jobMocks.NewMockJob(ctrl),
		rates:       rateMocks.NewMockRateService(ctrl),
		receipts:    receiptMocks.NewMockReceipt(ctrl),
		publisher:   notificationMocks.NewMockPublisher(ctrl),
		transactor:  pgMocks.NewTransactor(),
	}

	f.svc = service.New(f.bookingRepo, f.roomRepo, f.jobRepo, f.rates, f.receipts, f.publisher, f.transactor, &config.Config{}, redis, mocks.NewOtel())

	return f
}

func staffContext(user string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, user)
}

func room(status roomModel.Status) roomModel.Room {
	return roomModel.Room{ID: "r1", Number: "101", Type: roomModel.TypeShort, Status: status, MaxOccupancy: 2}
}

func checkedIn(since time.Duration) bookingModel.Booking {
	in := time.Now().Add(-since)

	return bookingModel.Booking{
		ID:              "b1",
		Code:            "BK260314ABCDEF",
		RoomID:          "r1",
		GuestName:       "Somchai",
		GuestCount:      2,
		PlanType:        rateModel.PlanShort,
		Status:          bookingModel.StatusCheckedIn,
		PlannedCheckIn:  in,
		PlannedCheckOut: in.Add(3 * time.Hour),
		ActualCheckIn:   &in,
		BaseAmount:      money.FromMajor(300),
		TotalAmount:     money.FromMajor(300),
	}
}

func wait(t *testing.T, done <-chan struct{}, what string) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestLifecycle_Checkout(t *testing.T) {
	t.Run("bills the stay, frees the room for cleaning and opens one cleaning job", func(t *testing.T) {
		f := newFixture(t)

		published := make(chan struct{})
		archived := make(chan struct{})

		f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(checkedIn(3*time.Hour+30*time.Minute), nil)
		f.bookingRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, bookingModel.StatusCheckedIn, args["current_status"])
				assert.Equal(t, bookingModel.StatusCheckedOut, fields[bookingModel.FieldStatus])
				assert.Equal(t, money.FromMajor(400), fields[bookingModel.FieldBaseAmount])
				assert.Equal(t, money.FromMajor(50), fields[bookingModel.FieldExtraAmount])
				assert.Equal(t, money.FromMajor(450), fields[bookingModel.FieldTotalAmount])
				assert.NotNil(t, fields[bookingModel.FieldActualCheckOut])

				return 1, nil
			})
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusOccupied), nil)
		f.roomRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, roomModel.StatusOccupied, args["current_status"])
				assert.Equal(t, roomModel.StatusCleaning, fields[roomModel.FieldStatus])

				return 1, nil
			})
		f.jobRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(1).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, job jobModel.Job) error {
				assert.Equal(t, jobModel.JobTypeCleaning, job.JobType)
				assert.Equal(t, jobModel.StatusPending, job.Status)
				assert.Equal(t, jobModel.PriorityNormal, job.Priority)
				assert.Equal(t, "r1", job.RoomID)
				require.NotNil(t, job.BookingID)
				assert.Equal(t, "b1", *job.BookingID)
				assert.Equal(t, "minibar", job.Notes)

				return nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, event notificationModel.Event) {
				defer close(published)

				assert.Equal(t, notificationModel.EventJobCreated, event.Type)
				assert.Equal(t, "101", event.RoomNumber)
				assert.Equal(t, "Somchai", event.GuestName)
				assert.Equal(t, "normal", event.Priority)
				assert.Equal(t, "reception-1", event.PerformedBy)
				assert.NotNil(t, event.CheckoutTime)
			}).Return(nil)
		f.receipts.EXPECT().Archive(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, draft receiptModel.Draft) {
				defer close(archived)

				assert.Equal(t, "b1", draft.BookingID)
			}).Return("receipts/b1.json", nil)

		draft, err := f.svc.Checkout(staffContext("reception-1"), "b1", bookingDto.CheckoutRequest{
			ExtraAmount: money.FromMajor(50),
			ExtraNotes:  "minibar",
		})

		require.NoError(t, err)
		assert.Equal(t, "BK260314ABCDEF", draft.BookingCode)
		assert.Equal(t, "101", draft.RoomNumber)
		assert.Equal(t, int64(1), draft.Bill.OvertimeHours)
		assert.Equal(t, money.FromMajor(400), draft.Bill.TotalAmount)
		assert.Equal(t, money.FromMajor(450), draft.TotalAmount)
		assert.Equal(t, "reception-1", draft.IssuedBy)
		assert.Equal(t, 1, f.transactor.Commits)

		wait(t, published, "notification")
		wait(t, archived, "receipt archive")
	})

	t.Run("booking that is not checked in writes nothing", func(t *testing.T) {
		for _, status := range []bookingModel.Status{bookingModel.StatusPending, bookingModel.StatusConfirmed, bookingModel.StatusCancelled} {
			t.Run(string(status), func(t *testing.T) {
				f := newFixture(t)

				booking := checkedIn(time.Hour)
				booking.Status = status
				booking.ActualCheckIn = nil

				f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
				f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)

				_, err := f.svc.Checkout(staffContext("reception-1"), "b1", bookingDto.CheckoutRequest{})

				assert.ErrorIs(t, err, failure.IllegalTransitionError)
				assert.Equal(t, 1, f.transactor.Rollbacks)
				assert.Equal(t, 0, f.transactor.Commits)
			})
		}
	})

	t.Run("second checkout is rejected", func(t *testing.T) {
		f := newFixture(t)

		booking := checkedIn(4 * time.Hour)
		out := time.Now().Add(-time.Hour)
		booking.Status = bookingModel.StatusCheckedOut
		booking.ActualCheckOut = &out

		f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Checkout(staffContext("reception-1"), "b1", bookingDto.CheckoutRequest{})

		assert.ErrorIs(t, err, failure.IllegalTransitionError)
	})

	t.Run("concurrent checkout loses the compare-and-set", func(t *testing.T) {
		f := newFixture(t)

		f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(checkedIn(time.Hour), nil)
		f.bookingRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Checkout(staffContext("reception-1"), "b1", bookingDto.CheckoutRequest{})

		assert.ErrorIs(t, err, failure.IllegalTransitionError)
		assert.Equal(t, 1, f.transactor.Rollbacks)
	})

	t.Run("room not occupied", func(t *testing.T) {
		f := newFixture(t)

		f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(checkedIn(time.Hour), nil)
		f.bookingRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusMaintenance), nil)

		_, err := f.svc.Checkout(staffContext("reception-1"), "b1", bookingDto.CheckoutRequest{})

		assert.ErrorIs(t, err, failure.IllegalTransitionError)
		assert.Equal(t, 1, f.transactor.Rollbacks)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := f.svc.Checkout(staffContext("reception-1"), "missing", bookingDto.CheckoutRequest{})

		assert.ErrorIs(t, err, failure.BookingNotFoundError)
	})

	t.Run("rate table without the plan rate", func(t *testing.T) {
		f := newFixture(t)

		table := rateModel.NewTable(nil, rateModel.Mapping{})

		f.rates.EXPECT().Table(gomock.Any()).Return(table, nil)
		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(checkedIn(time.Hour), nil)

		_, err := f.svc.Checkout(staffContext("reception-1"), "b1", bookingDto.CheckoutRequest{})

		assert.ErrorIs(t, err, failure.RateNotFoundError)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestLifecycle_CompleteHousekeeping(t *testing.T) {
	cleaningJob := func(status jobModel.Status) jobModel.Job {
		bookingID := "b1"

		return jobModel.Job{ID: "j1", RoomID: "r1", BookingID: &bookingID, JobType: jobModel.JobTypeCleaning, Status: status, Priority: jobModel.PriorityNormal}
	}

	t.Run("finished cleaning makes the room available", func(t *testing.T) {
		f := newFixture(t)

		published := make(chan struct{})

		f.jobRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cleaningJob(jobModel.StatusPending), nil)
		f.jobRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, jobModel.StatusCompleted, fields[jobModel.FieldStatus])

				return 1, nil
			})
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusCleaning), nil)
		f.roomRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, roomModel.StatusAvailable, fields[roomModel.FieldStatus])

				return 1, nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, event notificationModel.Event) {
				defer close(published)

				assert.Equal(t, notificationModel.EventJobCompleted, event.Type)
				assert.Equal(t, "hk-1", event.PerformedBy)
			}).Return(nil)

		res, err := f.svc.CompleteHousekeeping(staffContext("hk-1"), "j1")

		require.NoError(t, err)
		assert.Equal(t, jobModel.StatusCompleted, res.Status)
		require.NotNil(t, res.AssignedTo)
		assert.Equal(t, "hk-1", *res.AssignedTo)
		assert.NotNil(t, res.CompletedAt)

		wait(t, published, "completion notification")
	})

	t.Run("maintenance job leaves the room alone", func(t *testing.T) {
		f := newFixture(t)

		published := make(chan struct{})

		job := cleaningJob(jobModel.StatusInProgress)
		job.JobType = jobModel.JobTypeMaintenance
		job.BookingID = nil

		f.jobRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(job, nil)
		f.jobRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusMaintenance), nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(context.Context, notificationModel.Event) {
			close(published)
		}).Return(nil)

		_, err := f.svc.CompleteHousekeeping(staffContext("hk-1"), "j1")

		require.NoError(t, err)
		wait(t, published, "completion notification")
	})

	t.Run("completed job", func(t *testing.T) {
		f := newFixture(t)

		f.jobRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cleaningJob(jobModel.StatusCompleted), nil)

		_, err := f.svc.CompleteHousekeeping(staffContext("hk-1"), "j1")

		assert.ErrorIs(t, err, failure.IllegalTransitionError)
	})

	t.Run("room no longer cleaning", func(t *testing.T) {
		f := newFixture(t)

		f.jobRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cleaningJob(jobModel.StatusPending), nil)
		f.jobRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusAvailable), nil)

		_, err := f.svc.CompleteHousekeeping(staffContext("hk-1"), "j1")

		assert.ErrorIs(t, err, failure.IllegalTransitionError)
		assert.Equal(t, 1, f.transactor.Rollbacks)
	})

	t.Run("unknown job", func(t *testing.T) {
		f := newFixture(t)

		f.jobRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(jobModel.Job{}, nil)

		_, err := f.svc.CompleteHousekeeping(staffContext("hk-1"), "missing")

		assert.ErrorIs(t, err, failure.JobNotFoundError)
	})
}

func walkIn() bookingDto.CheckInRequest {
	return bookingDto.CheckInRequest{
		PlanType: rateModel.PlanShort,
		Guest:    bookingDto.Guest{GuestName: "Malee", GuestCount: 2},
	}
}

func TestLifecycle_CheckIn(t *testing.T) {
	t.Run("walk-in occupies the room for the plan's hours", func(t *testing.T) {
		f := newFixture(t)

		f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusAvailable), nil)
		f.bookingRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.roomRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, roomModel.StatusOccupied, fields[roomModel.FieldStatus])

				return 1, nil
			})
		f.bookingRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b bookingModel.Booking) error {
				assert.Equal(t, bookingModel.StatusCheckedIn, b.Status)
				require.NotNil(t, b.ActualCheckIn)
				assert.Equal(t, 3*time.Hour, b.PlannedCheckOut.Sub(*b.ActualCheckIn))
				assert.Equal(t, money.FromMajor(300), b.BaseAmount)
				assert.Equal(t, "reception-1", b.CreatedBy)

				return nil
			})

		res, err := f.svc.CheckIn(staffContext("reception-1"), "r1", walkIn())

		require.NoError(t, err)
		assert.Equal(t, bookingModel.StatusCheckedIn, res.Status)
		assert.Equal(t, "101", res.RoomNumber)
		assert.NotNil(t, res.ActualCheckIn)
	})

	t.Run("room is not available", func(t *testing.T) {
		for _, status := range []roomModel.Status{roomModel.StatusOccupied, roomModel.StatusCleaning, roomModel.StatusMaintenance} {
			t.Run(string(status), func(t *testing.T) {
				f := newFixture(t)

				f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
				f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(status), nil)

				_, err := f.svc.CheckIn(staffContext("reception-1"), "r1", walkIn())

				assert.ErrorIs(t, err, failure.RoomNotAvailableError)
				assert.Equal(t, 1, f.transactor.Rollbacks)
			})
		}
	})

	t.Run("confirmed reservation holds the slot", func(t *testing.T) {
		f := newFixture(t)

		f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusAvailable), nil)
		f.bookingRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.CheckIn(staffContext("reception-1"), "r1", walkIn())

		assert.ErrorIs(t, err, failure.RoomNotAvailableError)
	})

	t.Run("second check-in loses the room compare-and-set", func(t *testing.T) {
		f := newFixture(t)

		f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusAvailable), nil)
		f.bookingRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.roomRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.CheckIn(staffContext("reception-1"), "r1", walkIn())

		assert.ErrorIs(t, err, failure.IllegalTransitionError)
	})

	t.Run("planned check-out in the past", func(t *testing.T) {
		f := newFixture(t)

		f.rates.EXPECT().Table(gomock.Any()).Return(rateTable(), nil)

		req := walkIn()
		req.PlannedCheckOut = time.Now().Add(-time.Hour).Format(time.RFC3339)

		_, err := f.svc.CheckIn(staffContext("reception-1"), "r1", req)

		assert.ErrorIs(t, err, failure.InvalidIntervalError)
	})
}

func TestLifecycle_CheckInBooking(t *testing.T) {
	confirmed := func() bookingModel.Booking {
		b := checkedIn(0)
		b.Status = bookingModel.StatusConfirmed
		b.ActualCheckIn = nil
		b.PlannedCheckOut = time.Now().Add(3 * time.Hour)

		return b
	}

	t.Run("confirmed reservation", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusAvailable), nil)
		f.bookingRepo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (bool, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "b1", args["exclude_id"])

				return false, nil
			})
		f.roomRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.bookingRepo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, bookingModel.StatusCheckedIn, fields[bookingModel.FieldStatus])
				assert.NotNil(t, fields[bookingModel.FieldActualCheckIn])

				return 1, nil
			})

		res, err := f.svc.CheckInBooking(staffContext("reception-1"), "b1")

		require.NoError(t, err)
		assert.Equal(t, bookingModel.StatusCheckedIn, res.Status)
	})

	t.Run("pending reservation", func(t *testing.T) {
		f := newFixture(t)

		b := confirmed()
		b.Status = bookingModel.StatusPending

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(b, nil)

		_, err := f.svc.CheckInBooking(staffContext("reception-1"), "b1")

		assert.ErrorIs(t, err, failure.IllegalTransitionError)
	})

	t.Run("room still being cleaned", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		f.roomRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room(roomModel.StatusCleaning), nil)

		_, err := f.svc.CheckInBooking(staffContext("reception-1"), "b1")

		assert.ErrorIs(t, err, failure.RoomNotAvailableError)
	})
}

func TestLifecycle_IsRoomAvailable(t *testing.T) {
	start := time.Date(2026, time.March, 14, 13, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	t.Run("reversed interval", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.IsRoomAvailable(context.Background(), "r1", end, start, "")

		assert.ErrorIs(t, err, failure.InvalidIntervalError)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.IsRoomAvailable(context.Background(), "missing", start, end, "")

		assert.ErrorIs(t, err, failure.RoomNotFoundError)
	})

	for _, taken := range []bool{false, true} {
		f := newFixture(t)

		f.roomRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.bookingRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(taken, nil)

		res, err := f.svc.IsRoomAvailable(context.Background(), "r1", start, end, "b9")

		require.NoError(t, err)
		assert.Equal(t, !taken, res.Available)
	}
}

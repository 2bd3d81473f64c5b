// Package service runs the operations that move a room, its booking and its housekeeping
// job together. Each runs in one transaction. Row locks are taken booking or job first,
// room second. Notifications, receipt archiving and cache invalidation happen after commit.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/billing"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingRepo "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	jobModel "hotel/internal/domains/housekeeping/model"
	jobDto "hotel/internal/domains/housekeeping/model/dto"
	jobRepo "hotel/internal/domains/housekeeping/repository"
	jobService "hotel/internal/domains/housekeeping/service"
	notificationModel "hotel/internal/domains/notification/model"
	notificationService "hotel/internal/domains/notification/service"
	rateModel "hotel/internal/domains/rate/model"
	rateService "hotel/internal/domains/rate/service"
	receiptModel "hotel/internal/domains/receipt/model"
	receiptService "hotel/internal/domains/receipt/service"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/logger"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Lifecycle interface {
	// CheckIn registers a walk-in guest on an available room.
	CheckIn(ctx context.Context, roomID string, req bookingDto.CheckInRequest) (bookingDto.BookingResponse, error)
	// CheckInBooking starts the stay of a confirmed reservation.
	CheckInBooking(ctx context.Context, bookingID string) (bookingDto.BookingResponse, error)
	// Checkout bills the stay, frees the room for cleaning and opens the cleaning job.
	Checkout(ctx context.Context, bookingID string, req bookingDto.CheckoutRequest) (receiptModel.Draft, error)
	// CompleteHousekeeping closes a job. A finished cleaning job makes the room available.
	CompleteHousekeeping(ctx context.Context, jobID string) (jobDto.JobResponse, error)
	IsRoomAvailable(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) (roomDto.AvailabilityResponse, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	jobRepo     jobRepo.Job
	rates       rateService.Rate
	receipts    receiptService.Receipt
	publisher   notificationService.Publisher
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	bookingRepo bookingRepo.Booking,
	roomRepo roomRepo.Room,
	jobRepo jobRepo.Job,
	rates rateService.Rate,
	receipts receiptService.Receipt,
	publisher notificationService.Publisher,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Lifecycle {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		jobRepo:     jobRepo,
		rates:       rates,
		receipts:    receipts,
		publisher:   publisher,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) CheckIn(ctx context.Context, roomID string, req bookingDto.CheckInRequest) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	table, err := s.table(ctx)
	if err != nil {
		return res, err
	}

	plannedCheckOut, err := plannedCheckOut(table, req, now)
	if err != nil {
		return res, err
	}

	bill, err := billing.Compute(table, req.PlanType, now, plannedCheckOut)
	if err != nil {
		return res, s.logRateError(err, req.PlanType)
	}

	booking := req.ToModel(roomID, user, now, plannedCheckOut)
	booking.BaseAmount = bill.TotalAmount
	booking.TotalAmount = bill.TotalAmount

	if err = booking.Validate(); err != nil {
		return res, failure.BadRequest(err)
	}

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		room, err := s.lockRoomTx(ctx, tx, roomID)
		if err != nil {
			return err
		}

		if booking.GuestCount > room.MaxOccupancy {
			return failure.BadRequestFromString(fmt.Sprintf("room %s takes at most %d guests", room.Number, room.MaxOccupancy))
		}

		if err = s.occupyTx(ctx, tx, &room, booking, user, now); err != nil {
			return err
		}

		if err = s.bookingRepo.InsertTx(ctx, tx, booking); err != nil {
			if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
				return fmt.Errorf("room %s already has a guest: %w", room.ID, failure.RoomNotAvailableError)
			}

			return fmt.Errorf("failed to create booking: %w", err)
		}

		booking.RoomNumber = room.Number

		logger.Lifecycle(bookingModel.EntityName, booking.ID, constant.Empty, booking.Status.String()).
			Str("room_id", room.ID).Str("by", user).Msg("walk-in checked in")

		return nil
	})
	if err != nil {
		return res, logUnexpected(err, "failed to check in walk-in guest")
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		roomService.InvalidateCache(ctx, s.cache, roomID)
	})

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) CheckInBooking(ctx context.Context, bookingID string) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckInBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	var booking bookingModel.Booking

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockBookingTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		from := booking.Status

		if err = from.Transition(bookingModel.StatusCheckedIn); err != nil {
			return err
		}

		if !booking.PlannedCheckOut.After(now) {
			return fmt.Errorf("booking %s ended at %s: %w", booking.ID, booking.PlannedCheckOut.Format(time.RFC3339), failure.InvalidIntervalError)
		}

		room, err := s.lockRoomTx(ctx, tx, booking.RoomID)
		if err != nil {
			return err
		}

		if err = s.occupyTx(ctx, tx, &room, booking, user, now); err != nil {
			return err
		}

		if err = booking.CheckIn(now); err != nil {
			return err
		}

		booking.RoomNumber = room.Number
		booking.ModifiedAt = now
		booking.ModifiedBy = user

		err = bookingService.ApplyStatusTx(ctx, s.bookingRepo, tx, booking, from, map[string]any{
			bookingModel.FieldActualCheckIn: booking.ActualCheckIn,
		})
		if err != nil {
			return err
		}

		logger.Lifecycle(bookingModel.EntityName, booking.ID, from.String(), booking.Status.String()).Str("by", user).Msg("booking checked in")

		return nil
	})
	if err != nil {
		return res, logUnexpected(err, "failed to check in booking")
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		roomService.InvalidateCache(ctx, s.cache, booking.RoomID)
	})

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Checkout(ctx context.Context, bookingID string, req bookingDto.CheckoutRequest) (res receiptModel.Draft, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	table, err := s.table(ctx)
	if err != nil {
		return res, err
	}

	var (
		booking bookingModel.Booking
		job     jobModel.Job
		bill    billing.Bill
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockBookingTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		from := booking.Status

		if err = from.Transition(bookingModel.StatusCheckedOut); err != nil {
			return err
		}

		if booking.ActualCheckIn == nil {
			return fmt.Errorf("booking %s has no check-in time: %w", booking.ID, bookingModel.ErrInconsistentBooking)
		}

		bill, err = billing.Compute(table, booking.PlanType, *booking.ActualCheckIn, now)
		if err != nil {
			return s.logRateError(err, booking.PlanType)
		}

		if err = booking.CheckOut(now, bill.TotalAmount, req.ExtraAmount, req.ExtraNotes); err != nil {
			return err
		}

		booking.ModifiedAt = now
		booking.ModifiedBy = user

		err = bookingService.ApplyStatusTx(ctx, s.bookingRepo, tx, booking, from, map[string]any{
			bookingModel.FieldActualCheckOut: booking.ActualCheckOut,
			bookingModel.FieldBaseAmount:     booking.BaseAmount,
			bookingModel.FieldExtraAmount:    booking.ExtraAmount,
			bookingModel.FieldTotalAmount:    booking.TotalAmount,
			bookingModel.FieldCheckoutNotes:  booking.CheckoutNotes,
		})
		if err != nil {
			return err
		}

		room, err := s.lockRoomTx(ctx, tx, booking.RoomID)
		if err != nil {
			return err
		}

		if err = s.moveRoomTx(ctx, tx, &room, roomModel.EventCheckOut, user, now); err != nil {
			return err
		}

		booking.RoomNumber = room.Number

		job = jobModel.NewCleaningJob(room.ID, booking.ID, req.ExtraNotes, user, now)
		job.RoomNumber = room.Number

		if err = s.jobRepo.InsertTx(ctx, tx, job); err != nil {
			if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
				return fmt.Errorf("room %s already has an open cleaning job: %w", room.ID, failure.IllegalTransitionError)
			}

			return fmt.Errorf("failed to create cleaning job: %w", err)
		}

		logger.Lifecycle(bookingModel.EntityName, booking.ID, from.String(), booking.Status.String()).
			Str("job_id", job.ID).Str("total", booking.TotalAmount.String()).Str("by", user).Msg("booking checked out")

		return nil
	})
	if err != nil {
		return res, logUnexpected(err, "failed to checkout booking")
	}

	res = receiptModel.NewDraft(booking, bill, user, now)

	draft := res

	s.afterCommit(ctx, func(ctx context.Context) {
		s.notify(ctx, jobCreatedEvent(job, booking, user, now))

		if _, err := s.receipts.Archive(ctx, draft); err != nil {
			log.Warn().Err(err).Str("booking_id", booking.ID).Msg("failed to archive receipt draft")
		}

		roomService.InvalidateCache(ctx, s.cache, booking.RoomID)
	})

	return res, nil
}

func (s *serviceImpl) CompleteHousekeeping(ctx context.Context, jobID string) (res jobDto.JobResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteHousekeeping")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	var job jobModel.Job

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		job, err = jobService.LockTx(ctx, s.jobRepo, tx, jobID)
		if err != nil {
			return err
		}

		from := job.Status

		if err = job.Complete(user, now); err != nil {
			return err
		}

		job.ModifiedAt = now
		job.ModifiedBy = user

		if err = jobService.ApplyStatusTx(ctx, s.jobRepo, tx, job, from); err != nil {
			return err
		}

		room, err := s.lockRoomTx(ctx, tx, job.RoomID)
		if err != nil {
			return err
		}

		job.RoomNumber = room.Number

		if job.JobType == jobModel.JobTypeCleaning {
			if err = s.moveRoomTx(ctx, tx, &room, roomModel.EventCleaningDone, user, now); err != nil {
				return err
			}
		}

		logger.Lifecycle(jobModel.EntityName, job.ID, from.String(), job.Status.String()).Str("by", user).Msg("housekeeping job completed")

		return nil
	})
	if err != nil {
		return res, logUnexpected(err, "failed to complete housekeeping job")
	}

	s.afterCommit(ctx, func(ctx context.Context) {
		s.notify(ctx, jobCompletedEvent(job, user, now))
		roomService.InvalidateCache(ctx, s.cache, job.RoomID)
	})

	res.FromModel(job)

	return res, nil
}

// IsRoomAvailable reports whether no confirmed or checked-in booking holds the room
// anywhere in [start, end). Back-to-back stays do not conflict.
func (s *serviceImpl) IsRoomAvailable(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) (res roomDto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRoomAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !end.After(start) {
		return res, failure.InvalidIntervalError
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return res, fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return res, failure.RoomNotFoundError
	}

	taken, err := s.bookingRepo.Exist(ctx, bookingRepo.AvailabilityFilter(roomID, start, end, excludeBookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return res, fmt.Errorf("failed to check room availability: %w", err)
	}

	return roomDto.AvailabilityResponse{
		RoomID:    roomID,
		Start:     timezone.Stamp(start),
		End:       timezone.Stamp(end),
		Available: !taken,
	}, nil
}

// occupyTx moves a locked room to occupied for booking's stay. The slot must not be
// held by any other confirmed or checked-in booking.
func (s *serviceImpl) occupyTx(ctx context.Context, tx *sqlx.Tx, room *roomModel.Room, booking bookingModel.Booking, user string, now time.Time) error {
	if _, err := room.Status.Apply(roomModel.EventCheckIn); err != nil {
		return err
	}

	taken, err := s.bookingRepo.ExistTx(ctx, tx, bookingRepo.AvailabilityFilter(room.ID, now, booking.PlannedCheckOut, booking.ID))
	if err != nil {
		return fmt.Errorf("failed to check room availability: %w", err)
	}

	if taken {
		return failure.RoomNotAvailableError
	}

	return s.moveRoomTx(ctx, tx, room, roomModel.EventCheckIn, user, now)
}

func (s *serviceImpl) moveRoomTx(ctx context.Context, tx *sqlx.Tx, room *roomModel.Room, event roomModel.Event, user string, now time.Time) error {
	from := room.Status

	to, err := from.Apply(event)
	if err != nil {
		return err
	}

	room.Status = to
	room.ModifiedAt = now
	room.ModifiedBy = user

	if err = roomService.ApplyStatusTx(ctx, s.roomRepo, tx, *room, from); err != nil {
		return err
	}

	logger.Lifecycle(roomModel.EntityName, room.ID, from.String(), to.String()).Str("event", string(event)).Msg("room status changed")

	return nil
}

func (s *serviceImpl) lockBookingTx(ctx context.Context, tx *sqlx.Tx, id string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.BookingNotFoundError
	}

	return booking, nil
}

func (s *serviceImpl) lockRoomTx(ctx context.Context, tx *sqlx.Tx, id string) (roomModel.Room, error) {
	room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.RoomNotFoundError
	}

	return room, nil
}

func (s *serviceImpl) table(ctx context.Context) (rateModel.Table, error) {
	table, err := s.rates.Table(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load rate table")

		return table, fmt.Errorf("failed to load rate table: %w", err)
	}

	return table, nil
}

func (s *serviceImpl) logRateError(err error, plan rateModel.PlanType) error {
	if errors.Is(err, failure.RateNotFoundError) {
		log.Error().Err(err).Str("plan_type", plan.String()).Msg("rate table is missing a rate")
	}

	return err
}

func (s *serviceImpl) notify(ctx context.Context, event notificationModel.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("job_id", event.JobID).Msg("failed to publish housekeeping notification")
	}
}

// afterCommit runs best-effort work detached from the request.
func (s *serviceImpl) afterCommit(ctx context.Context, fn func(ctx context.Context)) {
	go fn(context.WithoutCancel(ctx))
}

// plannedCheckOut is the requested end of a walk-in stay, or the hours included in its plan.
func plannedCheckOut(table rateModel.Table, req bookingDto.CheckInRequest, now time.Time) (time.Time, error) {
	if req.PlannedCheckOut != constant.Empty {
		end, err := timezone.ParseTimestamp(req.PlannedCheckOut)
		if err != nil {
			return end, failure.BadRequest(err)
		}

		if !end.After(now) {
			return end, fmt.Errorf("planned check-out %s is not in the future: %w", req.PlannedCheckOut, failure.InvalidIntervalError)
		}

		return end, nil
	}

	base, err := table.BaseRate(req.PlanType)
	if err != nil {
		return time.Time{}, err
	}

	return now.Add(time.Duration(base.Hours) * time.Hour), nil
}

func jobCreatedEvent(job jobModel.Job, booking bookingModel.Booking, user string, now time.Time) notificationModel.Event {
	return notificationModel.Event{
		Type:         notificationModel.EventJobCreated,
		JobID:        job.ID,
		JobType:      string(job.JobType),
		RoomID:       job.RoomID,
		RoomNumber:   job.RoomNumber,
		BookingCode:  booking.Code,
		GuestName:    booking.GuestName,
		CheckoutTime: booking.ActualCheckOut,
		Priority:     string(job.Priority),
		Notes:        job.Notes,
		PerformedBy:  user,
		OccurredAt:   now,
	}
}

func jobCompletedEvent(job jobModel.Job, user string, now time.Time) notificationModel.Event {
	return notificationModel.Event{
		Type:        notificationModel.EventJobCompleted,
		JobID:       job.ID,
		JobType:     string(job.JobType),
		RoomID:      job.RoomID,
		RoomNumber:  job.RoomNumber,
		Priority:    string(job.Priority),
		Notes:       job.Notes,
		PerformedBy: user,
		OccurredAt:  now,
	}
}

// logUnexpected logs errors that are not part of the failure taxonomy.
func logUnexpected(err error, msg string) error {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		log.Error().Err(err).Msg(msg)
	}

	return err
}

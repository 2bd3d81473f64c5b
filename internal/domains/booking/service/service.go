package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/billing"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	rateModel "hotel/internal/domains/rate/model"
	rateService "hotel/internal/domains/rate/service"
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

type Booking interface {
	Reserve(ctx context.Context, req dto.ReserveBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Confirm(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Estimate(ctx context.Context, id string) (dto.EstimateResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	rates      rateService.Rate
	transactor postgres.Transactor
	cfg        *config.Config
	otel       otel.Otel
}

func New(repo repository.Booking, roomRepo roomRepo.Room, rates rateService.Rate, transactor postgres.Transactor, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		rates:      rates,
		transactor: transactor,
		cfg:        cfg,
		otel:       otel,
	}
}

// Reserve records a pending reservation priced at its planned stay. Pending bookings
// do not hold the room, so availability is checked again on confirmation.
func (s *serviceImpl) Reserve(ctx context.Context, req dto.ReserveBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	start, end, err := req.Interval()
	if err != nil {
		return res, err
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.RoomNotFoundError
	}

	if req.GuestCount > room.MaxOccupancy {
		return res, failure.BadRequestFromString(fmt.Sprintf("room %s takes at most %d guests", room.Number, room.MaxOccupancy))
	}

	taken, err := s.repo.Exist(ctx, repository.AvailabilityFilter(room.ID, start, end, constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return res, fmt.Errorf("failed to check room availability: %w", err)
	}

	if taken {
		return res, failure.RoomNotAvailableError
	}

	table, err := s.table(ctx)
	if err != nil {
		return res, err
	}

	booking := req.ToModel(user, start, end)
	booking.RoomNumber = room.Number

	if err = applyEstimate(table, &booking); err != nil {
		return res, err
	}

	if err = booking.Validate(); err != nil {
		return res, failure.BadRequest(err)
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.Lifecycle(model.EntityName, booking.ID, constant.Empty, booking.Status.String()).
		Str("room_id", booking.RoomID).Str("by", user).Msg("booking reserved")

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
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
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// Update edits a pending or confirmed booking. A confirmed booking keeps its slot only
// if the new interval is still free.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var table rateModel.Table

	if req.ReschedulesStay() {
		if table, err = s.table(ctx); err != nil {
			return res, err
		}
	}

	var (
		booking model.Booking
		room    roomModel.Room
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if !booking.Status.IsEditable() {
			return fmt.Errorf("booking %s is %s: %w", booking.ID, booking.Status, failure.IllegalTransitionError)
		}

		if err = req.Apply(&booking); err != nil {
			return err
		}

		room, err = s.lockRoomTx(ctx, tx, booking.RoomID)
		if err != nil {
			return err
		}

		if booking.GuestCount > room.MaxOccupancy {
			return failure.BadRequestFromString(fmt.Sprintf("room %s takes at most %d guests", room.Number, room.MaxOccupancy))
		}

		if req.ReschedulesStay() {
			if booking.Status == model.StatusConfirmed {
				if err = s.ensureFreeTx(ctx, tx, booking); err != nil {
					return err
				}
			}

			if err = applyEstimate(table, &booking); err != nil {
				return err
			}
		}

		booking.ModifiedAt = timezone.Now()
		booking.ModifiedBy = user

		if err = booking.Validate(); err != nil {
			return failure.BadRequest(err)
		}

		return ApplyStatusTx(ctx, s.repo, tx, booking, booking.Status, dto.Fields(booking))
	})
	if err != nil {
		return res, s.logTxError(err, id, "failed to update booking")
	}

	res.FromModel(booking)

	return res, nil
}

// Confirm holds the room for the planned stay.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, func(tx *sqlx.Tx, booking *model.Booking) error {
		if err := booking.Confirm(); err != nil {
			return err
		}

		if _, err := s.lockRoomTx(ctx, tx, booking.RoomID); err != nil {
			return err
		}

		return s.ensureFreeTx(ctx, tx, *booking)
	})
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, id, func(_ *sqlx.Tx, booking *model.Booking) error {
		return booking.Cancel()
	})
}

// Estimate prices the stay as it stands: planned times before check-in, now while the
// guest is in. A checked out booking returns the amounts recorded at checkout.
func (s *serviceImpl) Estimate(ctx context.Context, id string) (res dto.EstimateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Estimate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = booking.Validate(); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("stored booking is inconsistent")

		return res, fmt.Errorf("failed to estimate booking %s: %w", booking.ID, err)
	}

	checkIn, checkOut := booking.PlannedCheckIn, booking.PlannedCheckOut

	switch booking.Status {
	case model.StatusCheckedIn:
		checkIn, checkOut = *booking.ActualCheckIn, timezone.Now()
	case model.StatusCheckedOut:
		res.FromCheckout(booking)

		return res, nil
	case model.StatusCancelled:
		return res, fmt.Errorf("booking %s is cancelled: %w", booking.ID, failure.IllegalTransitionError)
	}

	table, err := s.table(ctx)
	if err != nil {
		return res, err
	}

	bill, err := billing.Compute(table, booking.PlanType, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, failure.RateNotFoundError) {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to price booking")
		}

		return res, err
	}

	res.FromBill(booking, bill)

	return res, nil
}

// ApplyStatusTx writes fields together with booking.Status only if the row still holds
// from. A lost race surfaces as IllegalTransition.
func ApplyStatusTx(ctx context.Context, repo repository.Booking, tx *sqlx.Tx, booking model.Booking, from model.Status, fields map[string]any) error {
	if fields == nil {
		fields = make(map[string]any, 3)
	}

	fields[model.FieldStatus] = booking.Status
	fields[constant.FieldModifiedAt] = booking.ModifiedAt
	fields[constant.FieldModifiedBy] = booking.ModifiedBy

	affected, err := repo.UpdateTxAffected(ctx, tx, fields, repository.StatusFilter(booking.ID, from))
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("booking %s changed concurrently: %w", booking.ID, failure.IllegalTransitionError)
	}

	return nil
}

func (s *serviceImpl) transition(ctx context.Context, id string, apply func(tx *sqlx.Tx, booking *model.Booking) error) (res dto.BookingResponse, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var booking model.Booking

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, err = s.lockTx(ctx, tx, id)
		if err != nil {
			return err
		}

		from := booking.Status

		if err = apply(tx, &booking); err != nil {
			return err
		}

		booking.ModifiedAt = timezone.Now()
		booking.ModifiedBy = user

		if err = ApplyStatusTx(ctx, s.repo, tx, booking, from, nil); err != nil {
			return err
		}

		logger.Lifecycle(model.EntityName, booking.ID, from.String(), booking.Status.String()).Str("by", user).Msg("booking status changed")

		return nil
	})
	if err != nil {
		return res, s.logTxError(err, id, "failed to change booking status")
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.BookingNotFoundError
	}

	return booking, nil
}

func (s *serviceImpl) lockTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
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

func (s *serviceImpl) ensureFreeTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	taken, err := s.repo.ExistTx(ctx, tx, repository.AvailabilityFilter(booking.RoomID, booking.PlannedCheckIn, booking.PlannedCheckOut, booking.ID))
	if err != nil {
		return fmt.Errorf("failed to check room availability: %w", err)
	}

	if taken {
		return failure.RoomNotAvailableError
	}

	return nil
}

func (s *serviceImpl) table(ctx context.Context) (rateModel.Table, error) {
	table, err := s.rates.Table(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load rate table")

		return table, fmt.Errorf("failed to load rate table: %w", err)
	}

	return table, nil
}

// applyEstimate sets the provisional amounts of a booking that has not started.
func applyEstimate(table rateModel.Table, booking *model.Booking) error {
	bill, err := billing.Compute(table, booking.PlanType, booking.PlannedCheckIn, booking.PlannedCheckOut)
	if err != nil {
		if errors.Is(err, failure.RateNotFoundError) {
			log.Error().Err(err).Str("plan_type", booking.PlanType.String()).Msg("failed to price booking")
		}

		return err
	}

	booking.BaseAmount = bill.TotalAmount
	booking.TotalAmount = bill.TotalAmount.Add(booking.ExtraAmount)

	return nil
}

// logTxError logs unexpected failures. Domain failures are returned as they are.
func (s *serviceImpl) logTxError(err error, id, msg string) error {
	var fail *failure.Failure
	if !errors.As(err, &fail) {
		log.Error().Err(err).Str("booking_id", id).Msg(msg)
	}

	return err
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/receipt/model"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const fileExtension = ".json"

var errReceiptNotFound = failure.NotFound("receipt not found")

// Receipt keeps receipt drafts in object storage, one JSON document per booking.
type Receipt interface {
	Archive(ctx context.Context, draft model.Draft) (string, error)
	Get(ctx context.Context, bookingID string) (model.Draft, error)
}

type serviceImpl struct {
	storage s3.S3
	cfg     *config.Config
	otel    otel.Otel
}

func (s *serviceImpl) objectKey(bookingID string) string {
	return path.Join(s.cfg.External.S3.ReceiptDirectory, bookingID+fileExtension)
}

func New(storage s3.S3, cfg *config.Config, otel otel.Otel) Receipt {
	return &serviceImpl{
		storage: storage,
		cfg:     cfg,
		otel:    otel,
	}
}

// Archive uploads the draft and returns its location.
func (s *serviceImpl) Archive(ctx context.Context, draft model.Draft) (location string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Archive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	data, err := json.Marshal(draft)
	if err != nil {
		return location, fmt.Errorf("failed to marshal receipt draft: %w", err)
	}

	location, err = s.storage.Put(ctx, s.objectKey(draft.BookingID), constant.ContentTypeJSON, data)
	if err != nil {
		return location, fmt.Errorf("failed to archive receipt %s: %w", draft.ReceiptNumber, err)
	}

	log.Info().Str("receipt_number", draft.ReceiptNumber).Str("booking_id", draft.BookingID).Str("location", location).Msg("receipt draft archived")

	return location, nil
}

func (s *serviceImpl) Get(ctx context.Context, bookingID string) (res model.Draft, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	data, err := s.storage.Fetch(ctx, s.objectKey(bookingID))
	if err != nil {
		if errors.Is(err, s3.ErrObjectNotFound) || errors.Is(err, s3.ErrNoBucket) {
			return res, errReceiptNotFound
		}

		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to read receipt draft")

		return res, fmt.Errorf("failed to read receipt draft: %w", err)
	}

	if err = json.Unmarshal(data, &res); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to decode receipt draft")

		return res, fmt.Errorf("failed to decode receipt draft: %w", err)
	}

	return res, nil
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/notification/model"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

// Publisher hands housekeeping events to the notifier process.
type Publisher interface {
	Publish(ctx context.Context, event model.Event) error
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

// Publish keys events by room so one room's events stay ordered.
func (p *publisherImpl) Publish(ctx context.Context, event model.Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = p.client.SendMessages(ctx, p.cfg.Kafka.Topics.Housekeeping, kafka.Message{
		Key:    event.RoomID,
		Schema: string(event.Type),
		Value:  event,
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s for job %s: %w", event.Type, event.JobID, err)
	}

	log.Info().Str("type", string(event.Type)).Str("job_id", event.JobID).Str("room_id", event.RoomID).Msg("housekeeping event published")

	return nil
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/notification/model"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const responseSnippetLimit = 512

var ErrDeliveryFailed = errors.New("webhook delivery failed")

// Dispatcher delivers events to the staff chat webhook.
type Dispatcher interface {
	Dispatch(ctx context.Context, event model.Event) error
}

type webhookPayload struct {
	Text  string      `json:"text"`
	Event model.Event `json:"event"`
}

type dispatcherImpl struct {
	url    string
	client *http.Client
	otel   otel.Otel
}

func NewDispatcher(cfg *config.Config, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		url:    cfg.Notification.WebhookURL,
		client: &http.Client{Timeout: time.Duration(cfg.Notification.TimeoutSeconds) * time.Second},
		otel:   otel,
	}
}

// Dispatch returns an error only when a retry may succeed: transport failures and 5xx.
// Rejected payloads are logged and dropped.
func (d *dispatcherImpl) Dispatch(ctx context.Context, event model.Event) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".Dispatch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if d.url == constant.Empty {
		log.Warn().Str("job_id", event.JobID).Msg("notification webhook not configured, dropping event")

		return nil
	}

	body, err := json.Marshal(webhookPayload{Text: event.Text(), Event: event})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, responseSnippetLimit))

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		log.Warn().Int("status", resp.StatusCode).Str("body", string(snippet)).Str("job_id", event.JobID).
			Msg("notification webhook rejected event")

		return nil
	}

	log.Info().Int("status", resp.StatusCode).Str("type", string(event.Type)).Str("job_id", event.JobID).Msg("notification delivered")

	return nil
}

// NewConsumerHandler forwards housekeeping events from Kafka to the dispatcher.
// Messages that cannot be decoded are skipped so they do not block the partition.
func NewConsumerHandler(dispatcher Dispatcher) kafka.Handler {
	return func(ctx context.Context, message kafkaGo.Message) error {
		schema := model.EventType(kafka.Schema(message))
		if !schema.IsValid() {
			log.Warn().Str("schema", string(schema)).Int64("offset", message.Offset).Msg("skipping unknown event")

			return nil
		}

		event, err := kafka.Decode[model.Event](message)
		if err != nil {
			log.Error().Err(err).Int64("offset", message.Offset).Msg("skipping undecodable event")

			return nil
		}

		return dispatcher.Dispatch(ctx, event)
	}
}

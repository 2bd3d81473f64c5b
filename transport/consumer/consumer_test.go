package consumer_test

import (
	"context"
	"errors"
	"testing"

	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/transport/consumer"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConsumer_Run(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "hotel-notifier"
	cfg.Kafka.Topics.Housekeeping = "hotel.housekeeping"

	handler := func(context.Context, kafkaGo.Message) error { return nil }

	t.Run("consumes the housekeeping topic and closes the client", func(t *testing.T) {
		client := kafkaMocks.NewMockClient(gomock.NewController(t))

		gomock.InOrder(
			client.EXPECT().Consume(gomock.Any(), "hotel-notifier", "hotel.housekeeping", gomock.Any()).Return(nil),
			client.EXPECT().Close().Return(nil),
		)

		err := consumer.New(cfg, client, handler, otelMocks.NewOtel()).Run(context.Background())

		assert.NoError(t, err)
	})

	t.Run("returns the consume error after closing", func(t *testing.T) {
		client := kafkaMocks.NewMockClient(gomock.NewController(t))
		consumeErr := errors.New("topic name cannot be empty")

		client.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(consumeErr)
		client.EXPECT().Close().Return(errors.New("already closed"))

		err := consumer.New(cfg, client, handler, otelMocks.NewOtel()).Run(context.Background())

		assert.ErrorIs(t, err, consumeErr)
	})
}

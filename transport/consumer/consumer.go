package consumer

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"

	"github.com/rs/zerolog/log"
)

// Consumer runs the notifier process: one Kafka consumer group reading housekeeping events.
type Consumer struct {
	Config  *config.Config
	Client  kafka.Client
	Handler kafka.Handler
	Otel    otel.Otel
}

func New(cfg *config.Config, client kafka.Client, handler kafka.Handler, otel otel.Otel) *Consumer {
	return &Consumer{
		Config:  cfg,
		Client:  client,
		Handler: handler,
		Otel:    otel,
	}
}

// Serve consumes until SIGINT or SIGTERM.
func (c *Consumer) Serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("notifier stopped")
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	group, topic := c.Config.Kafka.ConsumerGroup, c.Config.Kafka.Topics.Housekeeping

	log.Info().Str("group", group).Str("topic", topic).Msg("Starting up notifier.")

	err := c.Client.Consume(ctx, group, topic, c.Handler)

	if closeErr := c.Client.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close Kafka client")
	}

	if shutdownErr := c.Otel.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("failed to flush traces")
	}

	log.Info().Msg("Notifier shut down.")

	return err
}

package postgres

//nolint:revive
import (
	"time"

	"hotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads onto a replica. Lifecycle transitions always go
// through Write so the row locks and the read that follows them agree.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres
	policy := retryPolicy{attempts: pg.MaxRetry, wait: time.Duration(pg.RetryWaitTime) * time.Second}

	return &Connection{
		Read:  connect("read", pg.Read, pg.Prefix, policy),
		Write: connect("write", pg.Write, pg.Prefix, policy),
	}
}

type retryPolicy struct {
	attempts int
	wait     time.Duration
}

// connect dials until the database answers or the policy runs out, then
// exits the process. The service is useless without its database.
func connect(role string, node config.PostgresNode, prefix string, policy retryPolicy) *sqlx.DB {
	logger := log.With().
		Str("role", role).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("database", node.DatabaseName(prefix)).
		Logger()

	attempts := max(policy.attempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", node.URL(prefix, nil))
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Int("attempt", attempt).Msg("Connected to postgres")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Int("of", attempts).Msg("Postgres not reachable")

		if attempt < attempts {
			time.Sleep(policy.wait)
		}
	}

	logger.Fatal().Msg("Giving up on postgres")

	return nil
}

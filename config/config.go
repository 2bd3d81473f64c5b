package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// PostgresNode describes one side of the read/write database pair.
type PostgresNode struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"     default:"hotel"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

// DatabaseName applies the optional environment prefix, e.g. "staging_hotel".
func (n PostgresNode) DatabaseName(prefix string) string {
	return prefix + n.Name
}

// URL renders a postgres:// connection string with escaped credentials.
// Extra query parameters are merged after sslmode and timezone.
func (n PostgresNode) URL(prefix string, extra url.Values) string {
	query := url.Values{}
	query.Set("sslmode", n.SSLMode)

	if n.Timezone != "" {
		query.Set("timezone", n.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(n.Username, n.Password),
		Host:     net.JoinHostPort(n.Host, n.Port),
		Path:     "/" + n.DatabaseName(prefix),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"production"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"hotel-front-desk"`
		Timezone string `envconfig:"TIMEZONE" default:"Asia/Bangkok"`
		APIKey   string `envconfig:"API_KEY"`
		CORS     struct {
			Enable           bool     `envconfig:"ENABLE"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS" default:"GET,POST,PATCH,DELETE,OPTIONS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS" default:"Authorization,Content-Type,X-API-Key"`
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
		} `envconfig:"CORS"`
		// Fixed-window limiter keyed by client IP, counted in Redis.
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	// Rooms and rates are read through this cache; bookings never are.
	Cache struct {
		TTL   int `envconfig:"TTL" default:"300"`
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST" default:"localhost"`
				Port     string `envconfig:"PORT" default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	// Tokens are issued by the staff auth service; only the access secret is needed here.
	JWT struct {
		AccessSecret string `envconfig:"ACCESS_SECRET"`
		Issuer       string `envconfig:"ISSUER"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			Prefix         string       `envconfig:"PREFIX"`
			MaxRetry       int          `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string       `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"        default:"localhost:9092"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"hotel-notifier"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Housekeeping string `envconfig:"HOUSEKEEPING" default:"hotel.housekeeping"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	// Billing maps plan types onto rate_type keys of the rates table.
	Billing struct {
		ShortRateType     string `envconfig:"SHORT_RATE_TYPE"     default:"short_3h"`
		OvernightRateType string `envconfig:"OVERNIGHT_RATE_TYPE" default:"overnight"`
		OvertimeRateType  string `envconfig:"OVERTIME_RATE_TYPE"  default:"extended"`
	} `envconfig:"BILLING"`

	// Empty WebhookURL makes the notifier log and acknowledge events.
	Notification struct {
		WebhookURL     string `envconfig:"WEBHOOK_URL"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
	} `envconfig:"NOTIFICATION"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		// Receipts are archived here after checkout. Empty BucketName disables archiving.
		S3 struct {
			APIEndpoint      string `envconfig:"API_ENDPOINT"`
			AccessKeyID      string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey  string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName       string `envconfig:"BUCKET_NAME"`
			PublicDomain     string `envconfig:"PUBLIC_DOMAIN"`
			ReceiptDirectory string `envconfig:"RECEIPT_DIRECTORY" default:"receipts"`
		} `envconfig:"S3"`
	}
}

// Validate reports settings that would only fail later, at first use.
func (c *Config) Validate() error {
	var problems []string

	rateTypes := map[string]string{
		"BILLING_SHORT_RATE_TYPE":     c.Billing.ShortRateType,
		"BILLING_OVERNIGHT_RATE_TYPE": c.Billing.OvernightRateType,
		"BILLING_OVERTIME_RATE_TYPE":  c.Billing.OvertimeRateType,
	}

	seen := map[string]string{}

	for _, key := range []string{"BILLING_SHORT_RATE_TYPE", "BILLING_OVERNIGHT_RATE_TYPE", "BILLING_OVERTIME_RATE_TYPE"} {
		value := strings.TrimSpace(rateTypes[key])
		if value == "" {
			problems = append(problems, key+" must not be empty")

			continue
		}

		if other, ok := seen[value]; ok {
			problems = append(problems, fmt.Sprintf("%s and %s both map to rate type %q", other, key, value))
		}

		seen[value] = key
	}

	if c.Kafka.Topics.Housekeeping != "" && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "KAFKA_BROKERS is required when KAFKA_TOPICS_HOUSEKEEPING is set")
	}

	if c.App.RateLimiter.Enable && (c.App.RateLimiter.MaxRequests <= 0 || c.App.RateLimiter.WindowSeconds <= 0) {
		problems = append(problems, "APP_RATE_LIMITER_MAX_REQUESTS and APP_RATE_LIMITER_WINDOW_SECONDS must be positive")
	}

	if c.Server.Shutdown.GracePeriodSeconds < 0 || c.Server.Shutdown.CleanupPeriodSeconds < 0 {
		problems = append(problems, "SERVER_SHUTDOWN periods must not be negative")
	}

	if c.Notification.TimeoutSeconds <= 0 {
		problems = append(problems, "NOTIFICATION_TIMEOUT_SECONDS must be positive")
	}

	if len(problems) == 0 {
		return nil
	}

	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

// Init loads .env when present, then the environment. A missing .env is
// reported but not fatal; an unparsable or invalid environment is.
func Init() error {
	var dotenvErr error

	once.Do(func() {
		dotenvErr = godotenv.Load(".env")
		if dotenvErr == nil {
			log.Info().Msg("Loaded variables from .env")
		}

		if err := envconfig.Process("", &conf); err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		if err := conf.Validate(); err != nil {
			log.Fatal().Err(err).Msg("Configuration rejected")
		}

		initialized = true

		log.Info().Str("env", conf.Server.Env).Msg("Configuration initialized")
	})

	if dotenvErr != nil {
		return fmt.Errorf("loading .env file: %w", dotenvErr)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Continuing with process environment only")
		}
	}

	return &conf
}

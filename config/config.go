package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey  string `envconfig:"API_KEY"`
		Payment struct {
			WhatsAppNumber  string `envconfig:"WHATSAPP_NUMBER"  default:"6281765219854"`
			WhatsAppContact string `envconfig:"WHATSAPP_CONTACT" default:"081765219854"`
		} `envconfig:"PAYMENT"`
	} `envconfig:"APP"`

	Booking struct {
		LockTimeoutMs        int  `envconfig:"LOCK_TIMEOUT_MS"         default:"5000"`
		PaymentWindowHours   int  `envconfig:"PAYMENT_WINDOW_HOURS"    default:"24"`
		CodeAttempts         int  `envconfig:"CODE_ATTEMPTS"           default:"2"`
		RestoreQuotaOnCancel bool `envconfig:"RESTORE_QUOTA_ON_CANCEL" default:"true"`
		ExpirySweepSeconds   int  `envconfig:"EXPIRY_SWEEP_SECONDS"`
	} `envconfig:"BOOKING"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		Issuer           string `envconfig:"ISSUER"`
		LeewaySeconds    int    `envconfig:"LEEWAY_SECONDS" default:"30"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int      `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int      `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string   `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			MigrationPath  string   `envconfig:"MIGRATION_PATH"  default:"file://migrations/postgres"`
			AutoMigrate    bool     `envconfig:"AUTO_MIGRATE"`
			Prefix         string   `envconfig:"PREFIX"`
			Pool           Pool     `envconfig:"POOL"`
			Read           Endpoint `envconfig:"READ"`
			Write          Endpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingEvents        string `envconfig:"BOOKING_EVENTS"        default:"booking.events"`
			PaymentConfirmations string `envconfig:"PAYMENT_CONFIRMATIONS" default:"payment.confirmations"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			Enable          bool   `envconfig:"ENABLE"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			Region          string `envconfig:"REGION" default:"auto"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// Endpoint is one postgres node. Read and Write may point at the same host.
type Endpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

// Pool sizes each sqlx.DB. Booking writes hold a row lock for the whole
// transaction, so MaxOpen bounds how many reservations can queue on one package.
type Pool struct {
	MaxOpen            int `envconfig:"MAX_OPEN"              default:"20"`
	MaxIdle            int `envconfig:"MAX_IDLE"              default:"10"`
	MaxLifetimeSeconds int `envconfig:"MAX_LIFETIME_SECONDS"  default:"300"`
	MaxIdleTimeSeconds int `envconfig:"MAX_IDLE_TIME_SECONDS" default:"60"`
}

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Init reads .env when present and then the process environment, which wins
// on conflicts. It runs once and later calls return the first result.
func Init() error {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("no .env file, reading the environment only")
		}

		if err := envconfig.Process("", &conf); err != nil {
			loadErr = fmt.Errorf("failed to process environment variables: %w", err)

			return
		}

		log.Info().Str("env", conf.Server.Env).Str("app", conf.App.Name).Msg("configuration loaded")
	})

	return loadErr
}

// Get returns the loaded configuration and exits when it cannot be parsed.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	return &conf
}

package config_test

import (
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleema/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Config{}
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, 24, cfg.Booking.PaymentWindowHours)
	assert.Equal(t, 5000, cfg.Booking.LockTimeoutMs)
	assert.True(t, cfg.Booking.RestoreQuotaOnCancel)
	assert.Equal(t, 3, cfg.DB.Postgres.MaxRetry)
	assert.Equal(t, 20, cfg.DB.Postgres.Pool.MaxOpen)
	assert.Equal(t, "disable", cfg.DB.Postgres.Write.SSLMode)
	assert.Equal(t, "booking.events", cfg.Kafka.Topics.BookingEvents)
	assert.Equal(t, "auto", cfg.External.S3.Region)
	assert.Equal(t, 30, cfg.JWT.LeewaySeconds)
}

func TestEnvironmentNames(t *testing.T) {
	t.Setenv("BOOKING_PAYMENT_WINDOW_HOURS", "6")
	t.Setenv("DB_POSTGRES_WRITE_HOST", "primary.db")
	t.Setenv("DB_POSTGRES_READ_HOST", "replica.db")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("APP_PAYMENT_WHATSAPP_NUMBER", "628111")

	cfg := config.Config{}
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, 6, cfg.Booking.PaymentWindowHours)
	assert.Equal(t, "primary.db", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, "replica.db", cfg.DB.Postgres.Read.Host)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "628111", cfg.App.Payment.WhatsAppNumber)
}

func TestInvalidValue(t *testing.T) {
	t.Setenv("BOOKING_LOCK_TIMEOUT_MS", "soon")

	cfg := config.Config{}
	assert.Error(t, envconfig.Process("", &cfg))
}

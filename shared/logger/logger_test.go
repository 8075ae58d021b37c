package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleema/config"
	"saleema/shared/logger"
)

func restoreGlobals(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
	}{
		{raw: "debug", want: zerolog.DebugLevel},
		{raw: "warn", want: zerolog.WarnLevel},
		{raw: "disabled", want: zerolog.Disabled},
		{raw: "", want: zerolog.InfoLevel},
		{raw: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.ParseLevel(tt.raw))
		})
	}
}

func TestInitWithWriter_JSONOutsideDevelopment(t *testing.T) {
	restoreGlobals(t)

	cfg := &config.Config{}
	cfg.Server.Env = "production"
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "saleema"

	var buf bytes.Buffer
	logger.InitWithWriter(cfg, &buf)

	log.Info().Str("booking_id", "b-1").Msg("booking created")

	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "saleema", entry["service"])
	assert.Equal(t, "b-1", entry["booking_id"])
	assert.Equal(t, "booking created", entry["message"])
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestInitWithWriter_ConsoleInDevelopment(t *testing.T) {
	restoreGlobals(t)

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Server.LogLevel = "debug"

	var buf bytes.Buffer
	logger.InitWithWriter(cfg, &buf)

	log.Debug().Msg("sweep finished")

	assert.Contains(t, buf.String(), "sweep finished")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestErrorWithStack(t *testing.T) {
	restoreGlobals(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("lock wait timeout"))

	assert.Contains(t, buf.String(), "lock wait timeout")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"saleema/config"
	"saleema/di"
	"saleema/helper"
	"saleema/shared/logger"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const traceFlushTimeout = 5 * time.Second

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := di.InitializeApp()

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		app.ExpirySweeper.Start(ctx)
	}()

	go func() {
		defer wg.Done()
		app.ConfirmationConsumer.Start(ctx)
	}()

	app.HTTP.Serve(ctx)

	wg.Wait()

	if err := app.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), traceFlushTimeout)
	defer cancel()

	if err := app.Otel.Shutdown(flushCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Shut down complete.")
}

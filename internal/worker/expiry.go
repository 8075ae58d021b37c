package worker

import (
	"context"
	"saleema/config"
	"saleema/infras/otel"
	"saleema/internal/domains/booking/service"
	"saleema/shared/constant"
	"saleema/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

// ExpirySweeper cancels unpaid bookings whose payment deadline has passed and
// hands their seats back to the package.
type ExpirySweeper struct {
	bookings service.Booking
	interval time.Duration
	otel     otel.Otel
}

func NewExpirySweeper(bookings service.Booking, cfg *config.Config, otel otel.Otel) *ExpirySweeper {
	return &ExpirySweeper{
		bookings: bookings,
		interval: time.Duration(cfg.Booking.ExpirySweepSeconds) * time.Second,
		otel:     otel,
	}
}

func (w *ExpirySweeper) Enabled() bool {
	return w.interval > 0
}

// Start blocks until ctx is done. It returns at once when the sweep interval is zero.
func (w *ExpirySweeper) Start(ctx context.Context) {
	if !w.Enabled() {
		log.Info().Msg("Booking expiry sweeper disabled")

		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", w.interval).Msg("Booking expiry sweeper started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Booking expiry sweeper stopped")

			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep runs one pass and returns the number of bookings expired.
func (w *ExpirySweeper) Sweep(ctx context.Context) int {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".ExpirySweeper.Sweep")
	defer scope.End()

	expired, err := w.bookings.ExpireOverdue(ctx, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to expire overdue bookings")

		return 0
	}

	scope.SetAttribute("expired", expired)

	if expired > 0 {
		log.Info().Int("expired", expired).Msg("Expired overdue bookings")
	}

	return expired
}

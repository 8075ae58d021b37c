package di

import (
	"saleema/config"
	"saleema/infras/kafka"
	"saleema/infras/otel"
	"saleema/internal/worker"
	"saleema/transport/http"

	ticketService "saleema/internal/domains/ticket/service"
)

// App is everything cmd/app runs.
type App struct {
	HTTP                 *http.HTTP
	ExpirySweeper        *worker.ExpirySweeper
	ConfirmationConsumer *worker.ConfirmationConsumer
	Kafka                kafka.Client
	Otel                 otel.Otel
}

func provideTicketRenderer(cfg *config.Config) ticketService.Renderer {
	return ticketService.NewRenderer(cfg.App.Name)
}

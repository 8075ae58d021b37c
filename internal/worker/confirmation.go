package worker

import (
	"context"
	"fmt"
	"saleema/config"
	"saleema/infras/kafka"
	"saleema/infras/otel"
	"saleema/internal/domains/payment/model/dto"
	"saleema/internal/domains/payment/service"
	"saleema/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const confirmationTimeout = 30 * time.Second

// ConfirmationConsumer feeds payment provider confirmations into the payment service.
type ConfirmationConsumer struct {
	client   kafka.Client
	payments service.Payment
	cfg      *config.Config
	otel     otel.Otel
}

func NewConfirmationConsumer(client kafka.Client, payments service.Payment, cfg *config.Config, otel otel.Otel) *ConfirmationConsumer {
	return &ConfirmationConsumer{
		client:   client,
		payments: payments,
		cfg:      cfg,
		otel:     otel,
	}
}

// Start blocks until ctx is done. It returns at once when Kafka is disabled.
func (c *ConfirmationConsumer) Start(ctx context.Context) {
	if !c.cfg.Kafka.Enable {
		log.Info().Msg("Payment confirmation consumer disabled")

		return
	}

	topic := c.cfg.Kafka.Topics.PaymentConfirmations
	log.Info().Str("topic", topic).Msg("Payment confirmation consumer started")

	if err := c.client.Consume(ctx, c.cfg.Kafka.ConsumerGroup, topic, c.Handle); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Payment confirmation consumer stopped")
	}
}

// Handle applies one confirmation. The returned error is only logged by the
// consumer loop; malformed messages and rejected transitions are dropped so
// the partition keeps moving.
func (c *ConfirmationConsumer) Handle(ctx context.Context, message kafkaGo.Message) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), confirmationTimeout)
	defer cancel()

	ctx, scope := c.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".ConfirmationConsumer.Handle")
	defer scope.End()

	confirmation, err := kafka.Decode[dto.Confirmation](message)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	if confirmation.BookingID == constant.Empty {
		confirmation.BookingID = string(message.Key)
	}

	scope.SetAttributes(map[string]any{
		"booking_id": confirmation.BookingID,
		"status":     confirmation.Status,
	})

	if err := c.payments.Confirm(ctx, confirmation); err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to apply payment confirmation for booking %s: %w", confirmation.BookingID, err)
	}

	log.Info().Str("booking_id", confirmation.BookingID).Str("status", confirmation.Status).Msg("Applied payment confirmation")

	return nil
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"saleema/config"
	"saleema/infras/kafka"
	"saleema/infras/metrics"
	"saleema/infras/otel"
	"saleema/infras/postgres"
	"saleema/internal/domains/booking/model"
	"saleema/internal/domains/booking/model/dto"
	"saleema/internal/domains/booking/repository"
	paymentRepo "saleema/internal/domains/payment/repository"
	ticketService "saleema/internal/domains/ticket/service"
	packageService "saleema/internal/domains/tourpackage/service"
	gDto "saleema/shared/dto"
	"saleema/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	// Create reserves seats and records the booking with its payment in one transaction.
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (dto.CancelBookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
	IssueTicket(ctx context.Context, id string) (dto.Ticket, error)
	CheckReviewEligibility(ctx context.Context, id string) (dto.ReviewEligibilityResponse, error)
	// ExpireOverdue cancels pending unpaid bookings whose payment deadline is
	// not after now and returns how many were cancelled.
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

type serviceImpl struct {
	repo        repository.Booking
	paymentRepo paymentRepo.Payment
	inventory   packageService.Inventory
	packages    packageService.Package
	tickets     ticketService.Ticket
	tx          postgres.Transactor
	kafka       kafka.Client
	metrics     metrics.Booking
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	paymentRepo paymentRepo.Payment,
	inventory packageService.Inventory,
	packages packageService.Package,
	tickets ticketService.Ticket,
	tx postgres.Transactor,
	kafka kafka.Client,
	metrics metrics.Booking,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		paymentRepo: paymentRepo,
		inventory:   inventory,
		packages:    packages,
		tickets:     tickets,
		tx:          tx,
		kafka:       kafka,
		metrics:     metrics,
		cfg:         cfg,
		otel:        otel,
	}
}

// publish emits a booking event after commit. Delivery failures are logged
// and never surface to the caller.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := model.NewEvent(eventType, booking, timezone.Now())

	go func() {
		c := context.WithoutCancel(ctx)

		msg := kafka.Message{
			Key:     booking.ID,
			Value:   event,
			Headers: map[string]string{kafka.HeaderEventType: eventType},
		}
		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, msg); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Str("event", eventType).Msg("failed to publish booking event")
		}
	}()
}

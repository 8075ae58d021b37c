package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"saleema/config"
	"saleema/infras/otel"
	"saleema/infras/s3"
	"saleema/internal/domains/ticket/model"
	"saleema/shared/constant"

	"github.com/rs/zerolog/log"
)

type Ticket interface {
	// Issue renders the ticket and archives a copy when object storage is enabled.
	Issue(ctx context.Context, ticket model.Ticket) ([]byte, error)
}

type serviceImpl struct {
	renderer Renderer
	storage  s3.S3
	cfg      *config.Config
	otel     otel.Otel
}

func New(renderer Renderer, storage s3.S3, cfg *config.Config, otel otel.Otel) Ticket {
	return &serviceImpl{
		renderer: renderer,
		storage:  storage,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) Issue(ctx context.Context, ticket model.Ticket) (content []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ticket.Issue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	content, err = s.renderer.Render(ticket)
	if err != nil {
		log.Error().Err(err).Str("booking_code", ticket.BookingCode).Msg("failed to render ticket")

		return nil, fmt.Errorf("failed to render ticket: %w", err)
	}

	if !s.cfg.External.S3.Enable || s.storage == nil {
		return content, nil
	}

	url, err := s.storage.UploadFileBytes(ctx, constant.Empty, model.ArchiveDirectory, ticket.FileName(), constant.ContentTypePDF, content)
	if err != nil {
		log.Warn().Err(err).Str("booking_code", ticket.BookingCode).Msg("failed to archive ticket")

		return content, nil
	}

	log.Info().Str("booking_code", ticket.BookingCode).Str("url", url).Msg("ticket archived")

	return content, nil
}

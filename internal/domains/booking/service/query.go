package service

import (
	"context"
	"fmt"
	"saleema/internal/domains/booking/model"
	"saleema/internal/domains/booking/model/dto"
	"saleema/shared"
	"saleema/shared/constant"
	gDto "saleema/shared/dto"

	"github.com/rs/zerolog/log"
)

// Get is not cached. Status and payment state must be read fresh.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.authorizedDetail(ctx, id, true)
	if err != nil {
		return res, err
	}

	res.FromModel(detail)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter.UserID, _ = shared.Caller(ctx)
	if filter.UserID == constant.Empty {
		return res, model.ErrNotOwner // nolint:wrapcheck
	}

	filterGroup, err := filter.ToFilterGroup()
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	total, err := s.repo.CountDetail(ctx, filterGroup)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAllDetail(ctx, params, filterGroup)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// authorizedDetail loads a booking with its package and checks the caller
// owns it. Privileged callers pass when allowPrivileged is set.
func (s *serviceImpl) authorizedDetail(ctx context.Context, id string, allowPrivileged bool) (model.Detail, error) {
	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return detail, fmt.Errorf("failed to get booking: %w", err)
	}

	if detail.ID == constant.Empty {
		return detail, model.ErrBookingNotFound
	}

	userID, privileged := shared.Caller(ctx)
	if detail.OwnedBy(userID) || (allowPrivileged && privileged) {
		return detail, nil
	}

	return detail, model.ErrNotOwner
}

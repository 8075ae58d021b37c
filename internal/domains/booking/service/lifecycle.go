package service

import (
	"context"
	"errors"
	"fmt"
	"saleema/infras/metrics"
	"saleema/infras/postgres"
	"saleema/internal/domains/booking/model"
	"saleema/internal/domains/booking/model/dto"
	paymentModel "saleema/internal/domains/payment/model"
	ticketModel "saleema/internal/domains/ticket/model"
	"saleema/shared"
	"saleema/shared/constant"
	"saleema/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	expiryBatchSize = 100
	expiryReason    = "payment deadline passed"
)

var errNoLongerOverdue = errors.New("booking is no longer overdue")

// cancelPolicy describes who is cancelling and which checks apply on top of
// the common ones.
type cancelPolicy struct {
	actor   string
	trigger string
	// authorize runs against the locked row.
	authorize func(model.Booking) error
	// enforceWindow rejects cancelling a trip that already departed.
	enforceWindow bool
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (res dto.CancelBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.Caller(ctx)

	policy := cancelPolicy{
		actor:   userID,
		trigger: metrics.TriggerUser,
		authorize: func(b model.Booking) error {
			if !b.OwnedBy(userID) {
				return model.ErrNotOwner
			}

			return nil
		},
		enforceWindow: true,
	}

	booking, err := s.cancel(ctx, id, req.Reason, policy)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, privileged := shared.Caller(ctx)
	if !privileged {
		return res, model.ErrNotOwner // nolint:wrapcheck
	}

	target := model.Status(req.Status)
	if !target.Valid() {
		return res, model.ErrInvalidStatusTransition // nolint:wrapcheck
	}

	if target == model.StatusCancelled {
		policy := cancelPolicy{
			actor:         actor,
			trigger:       metrics.TriggerAdmin,
			authorize:     func(model.Booking) error { return nil },
			enforceWindow: true,
		}

		if _, err = s.cancel(ctx, id, req.Reason, policy); err != nil {
			return res, err
		}

		return s.Get(ctx, id)
	}

	now := timezone.Now()

	var booking model.Booking

	err = s.tx.WithTx(ctx, s.cfg.Booking.LockTimeoutMs, func(sqltx *sqlx.Tx) error {
		locked, err := s.lockBooking(ctx, sqltx, id)
		if err != nil {
			return err
		}

		booking = locked

		if !booking.Status.CanAdvanceTo(target) {
			return model.ErrInvalidStatusTransition
		}

		if target == model.StatusCompleted && !booking.Started(now) {
			return model.ErrInvalidStatusTransition
		}

		fields := map[string]any{
			model.FieldStatus:     target,
			model.FieldModifiedAt: now,
			model.FieldModifiedBy: actor,
		}

		if err := s.repo.UpdateTx(ctx, sqltx, fields, id); err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking status")

			return fmt.Errorf("failed to update booking status: %w", err)
		}

		booking.Status = target

		return nil
	})
	if postgres.IsLockNotAvailable(err) {
		return res, model.ErrBusy // nolint:wrapcheck
	}

	if err != nil {
		return res, err
	}

	s.publish(ctx, model.EventStatusChanged, booking)

	return s.Get(ctx, id)
}

func (s *serviceImpl) ExpireOverdue(ctx context.Context, now time.Time) (expired int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ExpireOverdue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	overdue, err := s.repo.GetOverdue(ctx, now, expiryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to list overdue bookings")

		return 0, fmt.Errorf("failed to list overdue bookings: %w", err)
	}

	policy := cancelPolicy{
		actor:   constant.RoleSystem,
		trigger: metrics.TriggerExpired,
		authorize: func(b model.Booking) error {
			if b.Status != model.StatusPending || b.PaymentStatus != paymentModel.StatusUnpaid || b.PaymentDeadline.After(now) {
				return errNoLongerOverdue
			}

			return nil
		},
	}

	for _, booking := range overdue {
		_, err := s.cancel(ctx, booking.ID, expiryReason, policy)

		switch {
		case err == nil:
			expired++
		case errors.Is(err, errNoLongerOverdue), errors.Is(err, model.ErrAlreadyCancelled):
			log.Info().Str("booking_id", booking.ID).Msg("booking changed before expiry, skipped")
		default:
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to expire booking")
		}
	}

	scope.SetAttribute("booking.expired", expired)

	return expired, nil
}

// cancel moves a booking to cancelled and, when configured, gives its seats
// back to the package in the same transaction.
func (s *serviceImpl) cancel(ctx context.Context, id, reason string, policy cancelPolicy) (booking model.Booking, err error) {
	now := timezone.Now()

	err = s.tx.WithTx(ctx, s.cfg.Booking.LockTimeoutMs, func(sqltx *sqlx.Tx) error {
		locked, err := s.lockBooking(ctx, sqltx, id)
		if err != nil {
			return err
		}

		booking = locked

		if err := policy.authorize(booking); err != nil {
			return err
		}

		switch {
		case booking.Status == model.StatusCancelled:
			return model.ErrAlreadyCancelled
		case !booking.Status.Active():
			return model.ErrInvalidStatusTransition
		case policy.enforceWindow && booking.Started(now):
			return model.ErrTripAlreadyStarted
		}

		var cancelReason *string
		if reason != constant.Empty {
			cancelReason = &reason
		}

		fields := map[string]any{
			model.FieldStatus:       model.StatusCancelled,
			model.FieldCancelReason: cancelReason,
			model.FieldCancelledAt:  now,
			model.FieldModifiedAt:   now,
			model.FieldModifiedBy:   policy.actor,
		}

		if err := s.repo.UpdateTx(ctx, sqltx, fields, id); err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to cancel booking")

			return fmt.Errorf("failed to cancel booking: %w", err)
		}

		if s.cfg.Booking.RestoreQuotaOnCancel {
			if err := s.inventory.Release(ctx, sqltx, booking.PackageID, booking.Participants); err != nil {
				return err //nolint:wrapcheck
			}
		}

		booking.Status = model.StatusCancelled
		booking.CancelReason = cancelReason
		booking.CancelledAt = &now

		return nil
	})
	if postgres.IsLockNotAvailable(err) {
		return booking, model.ErrBusy // nolint:wrapcheck
	}

	if err != nil {
		return booking, err
	}

	s.metrics.ObserveCancellation(policy.trigger)

	if s.cfg.Booking.RestoreQuotaOnCancel {
		s.packages.InvalidateCache(context.WithoutCancel(ctx), booking.PackageID)
	}

	s.publish(ctx, model.EventCancelled, booking)

	return booking, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdate(ctx, sqltx, id)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to lock booking")

		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, model.ErrBookingNotFound
	}

	return booking, nil
}

func (s *serviceImpl) IssueTicket(ctx context.Context, id string) (res dto.Ticket, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.IssueTicket")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.authorizedDetail(ctx, id, true)
	if err != nil {
		return res, err
	}

	if detail.Status == model.StatusCancelled {
		return res, model.ErrBookingCancelled // nolint:wrapcheck
	}

	if detail.PaymentStatus != paymentModel.StatusPaid {
		return res, model.ErrPaymentIncomplete // nolint:wrapcheck
	}

	ticket := toTicket(detail)

	content, err := s.tickets.Issue(ctx, ticket)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to issue ticket")

		return res, fmt.Errorf("failed to issue ticket: %w", err)
	}

	res.FileName = ticket.FileName()
	res.Content = content

	return res, nil
}

func (s *serviceImpl) CheckReviewEligibility(ctx context.Context, id string) (res dto.ReviewEligibilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckReviewEligibility")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	detail, err := s.authorizedDetail(ctx, id, false)
	if err != nil {
		return res, err
	}

	res.BookingID = detail.ID
	res.PackageID = detail.PackageID
	res.Eligible = eligibleForReview(detail.Booking)

	return res, nil
}

// eligibleForReview: the trip is completed or the booking has been paid.
func eligibleForReview(b model.Booking) bool {
	return b.Status == model.StatusCompleted || b.PaymentStatus == paymentModel.StatusPaid
}

func toTicket(detail model.Detail) ticketModel.Ticket {
	passengers := make([]string, len(detail.Passengers))
	for i, p := range detail.Passengers {
		passengers[i] = p.FullName
	}

	return ticketModel.Ticket{
		BookingCode:     detail.BookingCode,
		PackageName:     detail.PackageName,
		PackageLocation: detail.PackageLocation,
		DepartureDate:   detail.DepartureDate,
		Participants:    detail.Participants,
		TotalPrice:      detail.TotalPrice,
		ContactName:     detail.ContactName,
		ContactEmail:    detail.ContactEmail,
		ContactPhone:    detail.ContactPhone,
		Passengers:      passengers,
	}
}

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
	packageModel "saleema/internal/domains/tourpackage/model"
	"saleema/shared"
	"saleema/shared/constant"
	sharedModel "saleema/shared/model"
	"saleema/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := shared.Caller(ctx)

	departure, err := validateCreate(req, timezone.Now())
	if err != nil {
		return res, err
	}

	scope.SetAttributes(map[string]any{
		"package.id":         req.PackageID,
		"booking.user_id":    userID,
		"booking.passengers": req.Participants,
	})

	attempts := max(1, s.cfg.Booking.CodeAttempts)

	var booking model.Booking

	for attempt := 1; attempt <= attempts; attempt++ {
		booking, err = s.reserve(ctx, userID, req, departure)
		if !errors.Is(err, model.ErrDuplicateBookingCode) {
			break
		}

		log.Warn().Int("attempt", attempt).Str("package_id", req.PackageID).Msg("booking code collision, retrying reservation")
	}

	s.metrics.ObserveReservation(reservationOutcome(err))

	if err != nil {
		return res, err
	}

	s.packages.InvalidateCache(context.WithoutCancel(ctx), booking.PackageID)
	s.publish(ctx, model.EventCreated, booking)

	res.FromModel(booking)

	return res, nil
}

// reserve runs one reservation attempt. A booking code collision rolls the
// whole attempt back, including the quota increment.
func (s *serviceImpl) reserve(ctx context.Context, userID string, req dto.CreateBookingRequest, departure time.Time) (booking model.Booking, err error) {
	now := timezone.Now()
	passengers := req.ToPassengers()

	err = s.tx.WithTx(ctx, s.cfg.Booking.LockTimeoutMs, func(sqltx *sqlx.Tx) error {
		lockStart := time.Now()
		pkg, err := s.inventory.Lock(ctx, sqltx, req.PackageID)
		s.metrics.ObserveLockWait(time.Since(lockStart))

		if err != nil {
			return err
		}

		if !pkg.CanSeat(req.Participants) {
			return packageModel.ErrQuotaFull
		}

		price, err := totalPrice(pkg.Price, req.Participants)
		if err != nil {
			return err
		}

		contact := model.DeriveContact(req.ToContact(), passengers)

		booking = model.Booking{
			ID:              uuid.NewString(),
			UserID:          userID,
			PackageID:       pkg.ID,
			BookingCode:     generateCode(now),
			BookingDate:     now,
			DepartureDate:   departure,
			Participants:    req.Participants,
			TotalPrice:      price,
			Status:          model.StatusPending,
			PaymentStatus:   paymentModel.StatusUnpaid,
			ContactName:     contact.Name,
			ContactPhone:    contact.Phone,
			ContactEmail:    contact.Email,
			Passengers:      passengers,
			SpecialRequests: req.SpecialRequests,
			PaymentDeadline: now.Add(time.Duration(s.cfg.Booking.PaymentWindowHours) * time.Hour),
			Metadata:        sharedModel.NewMetadata(userID, now),
		}

		if err := s.repo.InsertTx(ctx, sqltx, booking); err != nil {
			if postgres.IsUniqueViolation(err, model.ConstraintBookingCode) {
				return model.ErrDuplicateBookingCode
			}

			log.Error().Err(err).Msg("failed to insert booking")

			return fmt.Errorf("failed to insert booking: %w", err)
		}

		payment := paymentModel.Payment{
			ID:        uuid.NewString(),
			BookingID: booking.ID,
			Amount:    booking.TotalPrice,
			Status:    paymentModel.StatusUnpaid,
			Metadata:  sharedModel.NewMetadata(userID, now),
		}

		if err := s.paymentRepo.InsertTx(ctx, sqltx, payment); err != nil {
			log.Error().Err(err).Msg("failed to insert payment")

			return fmt.Errorf("failed to insert payment: %w", err)
		}

		return s.inventory.Reserve(ctx, sqltx, pkg, req.Participants) //nolint:wrapcheck
	})
	if postgres.IsLockNotAvailable(err) {
		log.Warn().Err(err).Str("package_id", req.PackageID).Msg("package lock wait timed out")

		return booking, model.ErrBusy // nolint:wrapcheck
	}

	return booking, err
}

func validateCreate(req dto.CreateBookingRequest, now time.Time) (time.Time, error) {
	if req.Participants <= 0 {
		return time.Time{}, model.ErrInvalidParticipantCount
	}

	if len(req.Passengers) != req.Participants {
		return time.Time{}, model.ErrPassengerCountMismatch
	}

	departure, err := timezone.ParseDate(req.DepartureDate)
	if err != nil {
		return time.Time{}, model.ErrInvalidDepartureDate
	}

	if !departure.After(now) {
		return time.Time{}, model.ErrDepartureInPast
	}

	return departure, nil
}

func reservationOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeReserved
	case errors.Is(err, packageModel.ErrQuotaFull):
		return metrics.OutcomeQuotaFull
	case errors.Is(err, packageModel.ErrPackageNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, model.ErrBusy):
		return metrics.OutcomeBusy
	case errors.Is(err, model.ErrDuplicateBookingCode):
		return metrics.OutcomeDuplicateCode
	default:
		return metrics.OutcomeError
	}
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Payment=MockPaymentService

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"saleema/config"
	"saleema/infras/otel"
	"saleema/infras/postgres"
	"saleema/infras/s3"
	bookingModel "saleema/internal/domains/booking/model"
	bookingRepo "saleema/internal/domains/booking/repository"
	"saleema/internal/domains/payment/model"
	"saleema/internal/domains/payment/model/dto"
	"saleema/internal/domains/payment/repository"
	"saleema/shared"
	"saleema/shared/constant"
	"saleema/shared/timezone"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const instructionText = "Klik tombol WhatsApp untuk melanjutkan pembayaran. Tim kami akan memandu Anda melalui WhatsApp."

// Payment is the only writer of payment status, and through it of
// bookings.payment_status.
type Payment interface {
	GetDetail(ctx context.Context, bookingID string) (dto.PaymentResponse, error)
	// SubmitProof moves an unpaid or failed payment to pending verification.
	SubmitProof(ctx context.Context, bookingID string, req dto.SubmitProofRequest) (dto.PaymentResponse, error)
	// UpdateStatus is the privileged path, including the only way to reach paid.
	UpdateStatus(ctx context.Context, bookingID string, req dto.UpdateStatusRequest) (dto.PaymentResponse, error)
	// Confirm applies a confirmation delivered by the payment provider. Replays are no-ops.
	Confirm(ctx context.Context, confirmation dto.Confirmation) error
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	tx          postgres.Transactor
	storage     s3.S3
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.Payment, bookingRepo bookingRepo.Booking, tx postgres.Transactor, storage s3.S3, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		tx:          tx,
		storage:     storage,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) GetDetail(ctx context.Context, bookingID string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.GetDetail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.authorizedBooking(ctx, bookingID, true)
	if err != nil {
		return res, err
	}

	payment, err := s.repo.GetByBooking(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, model.ErrPaymentNotFound // nolint:wrapcheck
	}

	res.FromModel(payment, booking)
	res.Instructions = s.instructions(booking)

	return res, nil
}

func (s *serviceImpl) SubmitProof(ctx context.Context, bookingID string, req dto.SubmitProofRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.SubmitProof")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.authorizedBooking(ctx, bookingID, false)
	if err != nil {
		return res, err
	}

	proofURL, err := s.storeProof(ctx, booking, req)
	if err != nil {
		return res, err
	}

	method := req.Method
	if method == constant.Empty {
		method = model.DefaultMethod
	}

	userID, _ := shared.Caller(ctx)

	err = s.tx.WithTx(ctx, s.cfg.Booking.LockTimeoutMs, func(sqltx *sqlx.Tx) error {
		locked, payment, err := s.lock(ctx, sqltx, bookingID)
		if err != nil {
			return err
		}

		if locked.Status == bookingModel.StatusCancelled {
			return model.ErrBookingCancelled
		}

		if payment.Status != model.StatusUnpaid && payment.Status != model.StatusFailed {
			return model.ErrProofNotAccepted
		}

		fields := map[string]any{
			model.FieldStatus:   model.StatusPending,
			model.FieldProofURL: proofURL,
			model.FieldMethod:   method,
		}

		return s.apply(ctx, sqltx, payment, fields, userID)
	})
	if postgres.IsLockNotAvailable(err) {
		return res, bookingModel.ErrBusy // nolint:wrapcheck
	}

	if err != nil {
		return res, err
	}

	return s.GetDetail(ctx, bookingID)
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, bookingID string, req dto.UpdateStatusRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, privileged := shared.Caller(ctx)
	if !privileged {
		return res, bookingModel.ErrNotOwner // nolint:wrapcheck
	}

	if actor == constant.Empty {
		actor = constant.RoleSystem
	}

	if err = s.transition(ctx, bookingID, model.Status(req.Status), req.Method, actor); err != nil {
		return res, err
	}

	return s.GetDetail(ctx, bookingID)
}

func (s *serviceImpl) Confirm(ctx context.Context, confirmation dto.Confirmation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Confirm")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.transition(ctx, confirmation.BookingID, model.Status(confirmation.Status), confirmation.Method, constant.RoleSystem)
}

// transition moves the payment to target and mirrors it onto the booking in
// one transaction. Settling a pending booking also confirms it.
func (s *serviceImpl) transition(ctx context.Context, bookingID string, target model.Status, method, actor string) error {
	if !target.Valid() {
		return model.ErrInvalidStatus
	}

	err := s.tx.WithTx(ctx, s.cfg.Booking.LockTimeoutMs, func(sqltx *sqlx.Tx) error {
		booking, payment, err := s.lock(ctx, sqltx, bookingID)
		if err != nil {
			return err
		}

		if payment.Status == target {
			return nil
		}

		if !payment.Status.CanMoveTo(target) {
			return model.ErrInvalidTransition
		}

		if target == model.StatusPaid && booking.Status == bookingModel.StatusCancelled {
			return model.ErrBookingCancelled
		}

		fields := map[string]any{model.FieldStatus: target}

		if method != constant.Empty {
			fields[model.FieldMethod] = method
		}

		if target == model.StatusPaid {
			fields[model.FieldPaidAt] = timezone.Now()
		}

		if err := s.apply(ctx, sqltx, payment, fields, actor); err != nil {
			return err
		}

		if target == model.StatusPaid && booking.Status == bookingModel.StatusPending {
			return s.confirmBooking(ctx, sqltx, bookingID, actor)
		}

		return nil
	})
	if postgres.IsLockNotAvailable(err) {
		return bookingModel.ErrBusy
	}

	return err
}

// lock takes the booking row before the payment row, the same order the
// booking lifecycle uses.
func (s *serviceImpl) lock(ctx context.Context, sqltx *sqlx.Tx, bookingID string) (bookingModel.Booking, model.Payment, error) {
	booking, err := s.bookingRepo.GetForUpdate(ctx, sqltx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to lock booking")

		return booking, model.Payment{}, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, model.Payment{}, bookingModel.ErrBookingNotFound
	}

	payment, err := s.repo.GetByBookingForUpdate(ctx, sqltx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to lock payment")

		return booking, payment, fmt.Errorf("failed to lock payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return booking, payment, model.ErrPaymentNotFound
	}

	return booking, payment, nil
}

// apply writes the payment fields and mirrors the resulting status onto the booking.
func (s *serviceImpl) apply(ctx context.Context, sqltx *sqlx.Tx, payment model.Payment, fields map[string]any, actor string) error {
	now := timezone.Now()

	fields[constant.FieldModifiedAt] = now
	fields[constant.FieldModifiedBy] = actor

	if err := s.repo.UpdateTx(ctx, sqltx, fields, payment.ID); err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("failed to update payment")

		return fmt.Errorf("failed to update payment: %w", err)
	}

	mirror := map[string]any{
		bookingModel.FieldPaymentStatus: fields[model.FieldStatus],
		bookingModel.FieldModifiedAt:    now,
		bookingModel.FieldModifiedBy:    actor,
	}

	if err := s.bookingRepo.UpdateTx(ctx, sqltx, mirror, payment.BookingID); err != nil {
		log.Error().Err(err).Str("booking_id", payment.BookingID).Msg("failed to mirror payment status")

		return fmt.Errorf("failed to mirror payment status: %w", err)
	}

	return nil
}

func (s *serviceImpl) confirmBooking(ctx context.Context, sqltx *sqlx.Tx, bookingID, actor string) error {
	fields := map[string]any{
		bookingModel.FieldStatus:     bookingModel.StatusConfirmed,
		bookingModel.FieldModifiedAt: timezone.Now(),
		bookingModel.FieldModifiedBy: actor,
	}

	if err := s.bookingRepo.UpdateTx(ctx, sqltx, fields, bookingID); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to confirm booking")

		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) storeProof(ctx context.Context, booking bookingModel.Detail, req dto.SubmitProofRequest) (string, error) {
	if req.File == nil {
		if req.ProofURL == constant.Empty {
			return constant.Empty, model.ErrProofRequired
		}

		return req.ProofURL, nil
	}

	if !s.cfg.External.S3.Enable {
		return constant.Empty, model.ErrProofStorageDisabled
	}

	fileName := booking.BookingCode + "-" + uuid.NewString() + path.Ext(req.File.Name)

	proofURL, err := s.storage.UploadFileBytes(ctx, constant.Empty, model.ProofDirectory, fileName, req.File.ContentType, req.File.Data)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to upload payment proof")

		return constant.Empty, fmt.Errorf("failed to upload payment proof: %w", err)
	}

	return proofURL, nil
}

func (s *serviceImpl) authorizedBooking(ctx context.Context, bookingID string, allowPrivileged bool) (bookingModel.Detail, error) {
	booking, err := s.bookingRepo.GetDetail(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, bookingModel.ErrBookingNotFound
	}

	userID, privileged := shared.Caller(ctx)
	if booking.OwnedBy(userID) || (allowPrivileged && privileged) {
		return booking, nil
	}

	return booking, bookingModel.ErrNotOwner
}

func (s *serviceImpl) instructions(booking bookingModel.Detail) *dto.Instructions {
	message := fmt.Sprintf("Halo Saleema Tour, saya ingin melanjutkan pembayaran untuk:\n\nKode Booking: %s\nPaket: %s\nTotal Pembayaran: %s\n\nTerima kasih!",
		booking.BookingCode, booking.PackageName, shared.FormatRupiah(booking.TotalPrice))

	return &dto.Instructions{
		Method:          dto.MethodWhatsApp,
		WhatsAppContact: s.cfg.App.Payment.WhatsAppContact,
		WhatsAppURL:     "https://wa.me/" + s.cfg.App.Payment.WhatsAppNumber + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20"),
		Message:         instructionText,
	}
}

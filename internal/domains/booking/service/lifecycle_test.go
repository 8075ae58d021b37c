package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"saleema/infras/metrics"
	"saleema/internal/domains/booking/model"
	"saleema/internal/domains/booking/model/dto"
	paymentModel "saleema/internal/domains/payment/model"
	ticketModel "saleema/internal/domains/ticket/model"
	"saleema/shared/constant"
	"saleema/shared/timezone"
)

func pendingBooking() model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:              "bk-1",
		UserID:          "user-1",
		PackageID:       "pkg-1",
		BookingCode:     "BK-2026-12345",
		DepartureDate:   now.AddDate(0, 0, 30),
		Participants:    2,
		TotalPrice:      3_000_000,
		Status:          model.StatusPending,
		PaymentStatus:   paymentModel.StatusUnpaid,
		PaymentDeadline: now.Add(24 * time.Hour),
	}
}

func TestCancel_RestoresQuota(t *testing.T) {
	f := newFixture(t)
	booking := pendingBooking()

	f.expectTx(1)
	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-1").Return(booking, nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), "bk-1").
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ string) error {
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
			assert.Equal(t, "plans changed", *fields[model.FieldCancelReason].(*string))
			assert.Equal(t, "user-1", fields[model.FieldModifiedBy])
			assert.IsType(t, time.Time{}, fields[model.FieldCancelledAt])

			return nil
		})
	f.inventory.EXPECT().Release(gomock.Any(), gomock.Nil(), "pkg-1", 2).Return(nil)
	f.packages.EXPECT().InvalidateCache(gomock.Any(), "pkg-1")

	res, err := f.service().Cancel(userCtx("user-1"), "bk-1", dto.CancelBookingRequest{Reason: "plans changed"})

	require.NoError(t, err)
	assert.Equal(t, string(model.StatusCancelled), res.Status)
	assert.Equal(t, "plans changed", *res.CancelReason)
	assert.NotNil(t, res.CancelledAt)
	assert.Equal(t, 1, f.metrics.Cancellation(metrics.TriggerUser))
}

func TestCancel_KeepsQuotaWhenRestoreDisabled(t *testing.T) {
	f := newFixture(t)
	f.cfg.Booking.RestoreQuotaOnCancel = false

	f.expectTx(1)
	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-1").Return(pendingBooking(), nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), "bk-1").
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ string) error {
			assert.Nil(t, fields[model.FieldCancelReason])

			return nil
		})

	res, err := f.service().Cancel(userCtx("user-1"), "bk-1", dto.CancelBookingRequest{})

	require.NoError(t, err)
	assert.Nil(t, res.CancelReason)
	assert.Equal(t, 1, f.metrics.Cancellation(metrics.TriggerUser))
}

func TestCancel_Rejections(t *testing.T) {
	// lib/pq hands DATE columns back as midnight UTC.
	departsToday, err := pq.ParseTimestamp(nil, timezone.Now().Format(constant.DateOnlyFormat))
	require.NoError(t, err)

	tests := []struct {
		name    string
		ctx     context.Context
		mutate  func(b *model.Booking)
		wantErr error
	}{
		{
			name:    "not the owner",
			ctx:     userCtx("user-2"),
			wantErr: model.ErrNotOwner,
		},
		{
			name:    "admins cancel through the status endpoint",
			ctx:     adminCtx(),
			wantErr: model.ErrNotOwner,
		},
		{
			name:    "already cancelled",
			ctx:     userCtx("user-1"),
			mutate:  func(b *model.Booking) { b.Status = model.StatusCancelled },
			wantErr: model.ErrAlreadyCancelled,
		},
		{
			name:    "completed trip",
			ctx:     userCtx("user-1"),
			mutate:  func(b *model.Booking) { b.Status = model.StatusCompleted },
			wantErr: model.ErrInvalidStatusTransition,
		},
		{
			name:    "unrecognised status",
			ctx:     userCtx("user-1"),
			mutate:  func(b *model.Booking) { b.Status = model.Status("archived") },
			wantErr: model.ErrInvalidStatusTransition,
		},
		{
			name:    "departure day loaded from the database",
			ctx:     userCtx("user-1"),
			mutate:  func(b *model.Booking) { b.DepartureDate = departsToday },
			wantErr: model.ErrTripAlreadyStarted,
		},
		{
			name:    "departure already passed",
			ctx:     userCtx("user-1"),
			mutate:  func(b *model.Booking) { b.DepartureDate = timezone.Now().Add(-time.Hour) },
			wantErr: model.ErrTripAlreadyStarted,
		},
		{
			name:    "departing right now",
			ctx:     userCtx("user-1"),
			mutate:  func(b *model.Booking) { b.DepartureDate = timezone.Now() },
			wantErr: model.ErrTripAlreadyStarted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			booking := pendingBooking()

			if tt.mutate != nil {
				tt.mutate(&booking)
			}

			f.expectTx(1)
			f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-1").Return(booking, nil)

			_, err := f.service().Cancel(tt.ctx, "bk-1", dto.CancelBookingRequest{})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.metrics.Cancellation(metrics.TriggerUser))
		})
	}
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture(t)

	f.expectTx(1)
	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-404").Return(model.Booking{}, nil)

	_, err := f.service().Cancel(userCtx("user-1"), "bk-404", dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, model.ErrBookingNotFound)
}

func TestCancel_ReleaseFailureFailsTheCancel(t *testing.T) {
	f := newFixture(t)
	releaseErr := errors.New("failed to release seats: quota guard rejected update")

	f.expectTx(1)
	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-1").Return(pendingBooking(), nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), "bk-1").Return(nil)
	f.inventory.EXPECT().Release(gomock.Any(), gomock.Nil(), "pkg-1", 2).Return(releaseErr)

	_, err := f.service().Cancel(userCtx("user-1"), "bk-1", dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, releaseErr)
	assert.Equal(t, 0, f.metrics.Cancellation(metrics.TriggerUser))
}

func TestCancel_LockTimeout(t *testing.T) {
	f := newFixture(t)
	lockErr := fmt.Errorf("failed to lock: %w", &pq.Error{Code: constant.PqErrorCodeLockNotAvailable})

	f.expectTx(1)
	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-1").Return(model.Booking{}, lockErr)

	_, err := f.service().Cancel(userCtx("user-1"), "bk-1", dto.CancelBookingRequest{})

	assert.ErrorIs(t, err, model.ErrBusy)
}

func TestUpdateStatus(t *testing.T) {
	departed := func(b *model.Booking) {
		b.Status = model.StatusConfirmed
		b.DepartureDate = timezone.Now().AddDate(0, 0, -3)
	}

	tests := []struct {
		name    string
		target  model.Status
		mutate  func(b *model.Booking)
		wantErr error
	}{
		{name: "pending to confirmed", target: model.StatusConfirmed},
		{name: "confirmed to completed after departure", target: model.StatusCompleted, mutate: departed},
		{
			name:    "confirmed to completed before departure",
			target:  model.StatusCompleted,
			mutate:  func(b *model.Booking) { b.Status = model.StatusConfirmed },
			wantErr: model.ErrInvalidStatusTransition,
		},
		{name: "skipping confirmation", target: model.StatusCompleted, mutate: departedPending, wantErr: model.ErrInvalidStatusTransition},
		{
			name:    "moving backwards",
			target:  model.StatusPending,
			mutate:  func(b *model.Booking) { b.Status = model.StatusConfirmed },
			wantErr: model.ErrInvalidStatusTransition,
		},
		{
			name:    "reviving a cancelled booking",
			target:  model.StatusConfirmed,
			mutate:  func(b *model.Booking) { b.Status = model.StatusCancelled },
			wantErr: model.ErrInvalidStatusTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			booking := pendingBooking()

			if tt.mutate != nil {
				tt.mutate(&booking)
			}

			f.expectTx(1)
			f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-1").Return(booking, nil)

			if tt.wantErr == nil {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), "bk-1").
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ string) error {
						assert.Equal(t, tt.target, fields[model.FieldStatus])
						assert.Equal(t, "admin-1", fields[model.FieldModifiedBy])

						return nil
					})

				updated := booking
				updated.Status = tt.target
				f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(model.Detail{Booking: updated}, nil)
			}

			res, err := f.service().UpdateStatus(adminCtx(), "bk-1", dto.UpdateStatusRequest{Status: string(tt.target)})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(tt.target), res.Status)
		})
	}
}

func departedPending(b *model.Booking) {
	b.DepartureDate = timezone.Now().AddDate(0, 0, -3)
}

func TestUpdateStatus_RequiresPrivilegedCaller(t *testing.T) {
	f := newFixture(t)

	_, err := f.service().UpdateStatus(userCtx("user-1"), "bk-1", dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)})

	assert.ErrorIs(t, err, model.ErrNotOwner)
}

func TestUpdateStatus_CancelByAdmin(t *testing.T) {
	f := newFixture(t)
	booking := pendingBooking()

	f.expectTx(1)
	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-1").Return(booking, nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), "bk-1").Return(nil)
	f.inventory.EXPECT().Release(gomock.Any(), gomock.Nil(), "pkg-1", 2).Return(nil)
	f.packages.EXPECT().InvalidateCache(gomock.Any(), "pkg-1")

	cancelled := booking
	cancelled.Status = model.StatusCancelled
	f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(model.Detail{Booking: cancelled}, nil)

	res, err := f.service().UpdateStatus(adminCtx(), "bk-1", dto.UpdateStatusRequest{Status: string(model.StatusCancelled), Reason: "operator request"})

	require.NoError(t, err)
	assert.Equal(t, string(model.StatusCancelled), res.Status)
	assert.Equal(t, 1, f.metrics.Cancellation(metrics.TriggerAdmin))
}

func TestExpireOverdue(t *testing.T) {
	f := newFixture(t)

	overdue := pendingBooking()
	overdue.PaymentDeadline = timezone.Now().Add(-time.Hour)

	paidMeanwhile := pendingBooking()
	paidMeanwhile.ID = "bk-2"
	paidMeanwhile.PaymentDeadline = timezone.Now().Add(-time.Hour)

	paidLocked := paidMeanwhile
	paidLocked.PaymentStatus = paymentModel.StatusPaid

	failing := pendingBooking()
	failing.ID = "bk-3"
	failing.PaymentDeadline = timezone.Now().Add(-time.Hour)

	f.repo.EXPECT().GetOverdue(gomock.Any(), gomock.Any(), 100).Return([]model.Booking{overdue, paidMeanwhile, failing}, nil)
	f.expectTx(3)

	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-1").Return(overdue, nil)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), "bk-1").
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ string) error {
			assert.Equal(t, constant.RoleSystem, fields[model.FieldModifiedBy])

			return nil
		})
	f.inventory.EXPECT().Release(gomock.Any(), gomock.Nil(), "pkg-1", 2).Return(nil)
	f.packages.EXPECT().InvalidateCache(gomock.Any(), "pkg-1")

	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-2").Return(paidLocked, nil)

	f.repo.EXPECT().GetForUpdate(gomock.Any(), gomock.Nil(), "bk-3").Return(model.Booking{}, errors.New("connection reset"))

	expired, err := f.service().ExpireOverdue(context.Background(), timezone.Now())

	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, 1, f.metrics.Cancellation(metrics.TriggerExpired))
}

func TestExpireOverdue_ListFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetOverdue(gomock.Any(), gomock.Any(), 100).Return(nil, errors.New("db down"))

	_, err := f.service().ExpireOverdue(context.Background(), timezone.Now())

	assert.ErrorContains(t, err, "failed to list overdue bookings")
}

func paidDetail() model.Detail {
	booking := pendingBooking()
	booking.Status = model.StatusConfirmed
	booking.PaymentStatus = paymentModel.StatusPaid
	booking.ContactName = "Aisyah"
	booking.Passengers = model.Passengers{{FullName: "Aisyah"}, {FullName: "Fatimah"}}

	return model.Detail{Booking: booking, PackageName: "Umrah Plus Turkey", PackageLocation: "Makkah"}
}

func TestIssueTicket(t *testing.T) {
	t.Run("paid booking gets a ticket", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(paidDetail(), nil)
		f.tickets.EXPECT().Issue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ticket ticketModel.Ticket) ([]byte, error) {
				assert.Equal(t, "BK-2026-12345", ticket.BookingCode)
				assert.Equal(t, []string{"Aisyah", "Fatimah"}, ticket.Passengers)

				return []byte("%PDF-1.3"), nil
			})

		res, err := f.service().IssueTicket(userCtx("user-1"), "bk-1")

		require.NoError(t, err)
		assert.Equal(t, "ticket-BK-2026-12345.pdf", res.FileName)
		assert.Equal(t, []byte("%PDF-1.3"), res.Content)
	})

	t.Run("admin can download any ticket", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(paidDetail(), nil)
		f.tickets.EXPECT().Issue(gomock.Any(), gomock.Any()).Return([]byte("%PDF"), nil)

		_, err := f.service().IssueTicket(adminCtx(), "bk-1")

		assert.NoError(t, err)
	})

	rejections := []struct {
		name    string
		ctx     context.Context
		mutate  func(d *model.Detail)
		wantErr error
	}{
		{
			name:    "unpaid",
			ctx:     userCtx("user-1"),
			mutate:  func(d *model.Detail) { d.PaymentStatus = paymentModel.StatusUnpaid },
			wantErr: model.ErrPaymentIncomplete,
		},
		{
			name:    "payment awaiting verification",
			ctx:     userCtx("user-1"),
			mutate:  func(d *model.Detail) { d.PaymentStatus = paymentModel.StatusPending },
			wantErr: model.ErrPaymentIncomplete,
		},
		{
			name:    "cancelled after payment",
			ctx:     userCtx("user-1"),
			mutate:  func(d *model.Detail) { d.Status = model.StatusCancelled },
			wantErr: model.ErrBookingCancelled,
		},
		{
			name:    "someone else's booking",
			ctx:     userCtx("user-2"),
			wantErr: model.ErrNotOwner,
		},
		{
			name:    "missing booking",
			ctx:     userCtx("user-1"),
			mutate:  func(d *model.Detail) { *d = model.Detail{} },
			wantErr: model.ErrBookingNotFound,
		},
	}

	for _, tt := range rejections {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			detail := paidDetail()

			if tt.mutate != nil {
				tt.mutate(&detail)
			}

			f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(detail, nil)

			_, err := f.service().IssueTicket(tt.ctx, "bk-1")

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckReviewEligibility(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		status   model.Status
		payment  paymentModel.Status
		eligible bool
		wantErr  error
	}{
		{name: "completed trip", ctx: userCtx("user-1"), status: model.StatusCompleted, payment: paymentModel.StatusPaid, eligible: true},
		{name: "paid but not travelled", ctx: userCtx("user-1"), status: model.StatusConfirmed, payment: paymentModel.StatusPaid, eligible: true},
		{name: "pending and unpaid", ctx: userCtx("user-1"), status: model.StatusPending, payment: paymentModel.StatusUnpaid},
		{name: "cancelled before payment", ctx: userCtx("user-1"), status: model.StatusCancelled, payment: paymentModel.StatusUnpaid},
		{name: "other users cannot ask", ctx: userCtx("user-2"), status: model.StatusCompleted, wantErr: model.ErrNotOwner},
		{name: "admins are not reviewers", ctx: adminCtx(), status: model.StatusCompleted, wantErr: model.ErrNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			detail := model.Detail{Booking: pendingBooking()}
			detail.Status = tt.status
			detail.PaymentStatus = tt.payment

			f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(detail, nil)

			res, err := f.service().CheckReviewEligibility(tt.ctx, "bk-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "pkg-1", res.PackageID)
			assert.Equal(t, tt.eligible, res.Eligible)
		})
	}
}

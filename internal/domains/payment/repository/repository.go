package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"saleema/infras/otel"
	"saleema/infras/postgres"
	"saleema/internal/domains/payment/model"
	"saleema/shared"
	"saleema/shared/constant"
	gRepo "saleema/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Payment interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, payment model.Payment) error
	GetByBooking(ctx context.Context, bookingID string) (model.Payment, error)
	// GetByBookingForUpdate locks the payment row of a booking.
	GetByBookingForUpdate(ctx context.Context, sqltx *sqlx.Tx, bookingID string) (model.Payment, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetByBooking(ctx context.Context, bookingID string) (model.Payment, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.GetByBooking")
	defer scope.End()

	return r.Repository.Get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetByBookingForUpdate(ctx context.Context, sqltx *sqlx.Tx, bookingID string) (model.Payment, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.GetByBookingForUpdate")
	defer scope.End()

	return r.Repository.GetForUpdateTx(ctx, sqltx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, id string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.UpdateTx")
	defer scope.End()

	return r.Repository.UpdateTx(ctx, sqltx, fields, shared.FilterByID(id, model.FieldID, model.TableName)) //nolint:wrapcheck
}

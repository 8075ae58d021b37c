package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"saleema/infras/otel"
	"saleema/infras/postgres"
	"saleema/internal/domains/tourpackage/model"
	"saleema/shared/constant"
	gDto "saleema/shared/dto"
	"saleema/shared/logger"
	gRepo "saleema/shared/repository"
	"saleema/shared/timezone"

	"github.com/jmoiron/sqlx"
)

const (
	queryIncrementQuotaFilled = `UPDATE packages SET quota_filled = quota_filled + $1, modified_at = $2
		WHERE id = $3 AND is_active AND quota_filled + $1 <= quota`
	queryDecrementQuotaFilled = `UPDATE packages SET quota_filled = quota_filled - $1, modified_at = $2
		WHERE id = $3 AND quota_filled >= $1`
)

type Package interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Package, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Package, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// GetActiveForUpdate locks the active package row for the rest of the transaction.
	GetActiveForUpdate(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Package, error)
	// IncrementQuotaFilled returns model.ErrQuotaGuard when the seats do not fit.
	IncrementQuotaFilled(ctx context.Context, sqltx *sqlx.Tx, id string, seats int) error
	// DecrementQuotaFilled returns model.ErrQuotaGuard when fewer seats are filled than released.
	DecrementQuotaFilled(ctx context.Context, sqltx *sqlx.Tx, id string, seats int) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Package]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Package {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Package](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetActiveForUpdate(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Package, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".package.GetActiveForUpdate")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return r.Repository.GetForUpdateTx(ctx, sqltx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) IncrementQuotaFilled(ctx context.Context, sqltx *sqlx.Tx, id string, seats int) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".package.IncrementQuotaFilled")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryIncrementQuotaFilled)

	return r.guardedUpdate(ctx, sqltx, queryIncrementQuotaFilled, id, seats)
}

func (r *repositoryImpl) DecrementQuotaFilled(ctx context.Context, sqltx *sqlx.Tx, id string, seats int) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".package.DecrementQuotaFilled")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryDecrementQuotaFilled)

	return r.guardedUpdate(ctx, sqltx, queryDecrementQuotaFilled, id, seats)
}

func (r *repositoryImpl) guardedUpdate(ctx context.Context, sqltx *sqlx.Tx, query, id string, seats int) error {
	result, err := sqltx.ExecContext(ctx, query, seats, timezone.Now(), id)
	if err != nil {
		if postgres.IsCheckViolation(err) {
			return model.ErrQuotaGuard
		}

		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to update quota (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	if affected == 0 {
		return model.ErrQuotaGuard
	}

	return nil
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./inventory.go -destination=../mocks/inventory_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"saleema/infras/otel"
	"saleema/internal/domains/tourpackage/model"
	"saleema/internal/domains/tourpackage/repository"
	"saleema/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Inventory is the only writer of packages.quota_filled. Every method must run
// inside the caller's transaction.
type Inventory interface {
	// Lock reads the active package under an exclusive row lock.
	Lock(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Package, error)
	// Reserve consumes seats on a package previously returned by Lock.
	Reserve(ctx context.Context, sqltx *sqlx.Tx, pkg model.Package, seats int) error
	// Release gives seats back to the package.
	Release(ctx context.Context, sqltx *sqlx.Tx, id string, seats int) error
}

type inventoryImpl struct {
	repo repository.Package
	otel otel.Otel
}

func NewInventory(repo repository.Package, otel otel.Otel) Inventory {
	return &inventoryImpl{
		repo: repo,
		otel: otel,
	}
}

func (i *inventoryImpl) Lock(ctx context.Context, sqltx *sqlx.Tx, id string) (pkg model.Package, err error) {
	ctx, scope := i.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Lock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	pkg, err = i.repo.GetActiveForUpdate(ctx, sqltx, id)
	if err != nil {
		log.Error().Err(err).Str("package_id", id).Msg("failed to lock package")

		return pkg, fmt.Errorf("failed to lock package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return pkg, model.ErrPackageNotFound // nolint:wrapcheck
	}

	return pkg, nil
}

func (i *inventoryImpl) Reserve(ctx context.Context, sqltx *sqlx.Tx, pkg model.Package, seats int) (err error) {
	ctx, scope := i.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Reserve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"package.id":        pkg.ID,
		"package.available": pkg.Available(),
		"booking.seats":     seats,
	})

	if !pkg.CanSeat(seats) {
		return model.ErrQuotaFull // nolint:wrapcheck
	}

	err = i.repo.IncrementQuotaFilled(ctx, sqltx, pkg.ID, seats)
	if errors.Is(err, model.ErrQuotaGuard) {
		return model.ErrQuotaFull // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("package_id", pkg.ID).Msg("failed to reserve seats")

		return fmt.Errorf("failed to reserve seats: %w", err)
	}

	return nil
}

func (i *inventoryImpl) Release(ctx context.Context, sqltx *sqlx.Tx, id string, seats int) (err error) {
	ctx, scope := i.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Release")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = i.repo.DecrementQuotaFilled(ctx, sqltx, id, seats)
	if errors.Is(err, model.ErrQuotaGuard) {
		log.Error().Str("package_id", id).Int("seats", seats).Msg("release exceeds filled quota")

		return fmt.Errorf("failed to release seats on package %s: %w", id, err)
	}

	if err != nil {
		log.Error().Err(err).Str("package_id", id).Msg("failed to release seats")

		return fmt.Errorf("failed to release seats: %w", err)
	}

	return nil
}

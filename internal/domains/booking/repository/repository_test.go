package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleema/infras/otel/mocks"
	"saleema/infras/postgres"
	"saleema/internal/domains/booking/model"
	"saleema/internal/domains/booking/repository"
	"saleema/shared"
)

func newRepo(t *testing.T) (repository.Booking, sqlmock.Sqlmock, *sqlx.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock, sqlxDB
}

func beginTx(t *testing.T, mock sqlmock.Sqlmock, db *sqlx.DB) *sqlx.Tx {
	t.Helper()

	mock.ExpectBegin()

	tx, err := db.Beginx()
	require.NoError(t, err)

	return tx
}

func TestGetOverdue(t *testing.T) {
	repo, mock, _ := newRepo(t)
	now := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta("FROM bookings") + ".*" +
		regexp.QuoteMeta("WHERE (bookings.status = $1 AND bookings.payment_status = $2 AND bookings.payment_deadline <= $3)") + ".*" +
		regexp.QuoteMeta("ORDER BY bookings.payment_deadline ASC LIMIT $4")).
		ExpectQuery().
		WithArgs("pending", "unpaid", now, 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "payment_deadline"}).
			AddRow("bk-1", "pending", now.Add(-2*time.Hour)).
			AddRow("bk-2", "pending", now.Add(-time.Hour)))

	got, err := repo.GetOverdue(context.Background(), now, 100)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "bk-1", got[0].ID)
	assert.Equal(t, "bk-2", got[1].ID)
	assert.Equal(t, model.StatusPending, got[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdate(t *testing.T) {
	repo, mock, db := newRepo(t)
	tx := beginTx(t, mock, db)
	departure := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta("FROM bookings") + ".*" +
		regexp.QuoteMeta("WHERE (bookings.id = $1)") + ".*" +
		regexp.QuoteMeta("FOR UPDATE OF bookings")).
		ExpectQuery().
		WithArgs("bk-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "package_id", "total_participants", "status", "departure_date"}).
			AddRow("bk-1", "pkg-1", 2, "confirmed", departure))

	got, err := repo.GetForUpdate(context.Background(), tx, "bk-1")
	require.NoError(t, err)

	assert.Equal(t, "pkg-1", got.PackageID)
	assert.Equal(t, 2, got.Participants)
	assert.Equal(t, model.StatusConfirmed, got.Status)
	assert.True(t, departure.Equal(got.DepartureDate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdate_MissingRow(t *testing.T) {
	repo, mock, db := newRepo(t)
	tx := beginTx(t, mock, db)

	mock.ExpectPrepare(regexp.QuoteMeta("FOR UPDATE OF bookings")).
		ExpectQuery().
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.GetForUpdate(context.Background(), tx, "missing")
	require.NoError(t, err)

	assert.Empty(t, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTx(t *testing.T) {
	repo, mock, db := newRepo(t)
	tx := beginTx(t, mock, db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET modified_by = $1, status = $2") + ".*" +
		regexp.QuoteMeta("WHERE (bookings.id = $3)")).
		WithArgs("user-1", "cancelled", "bk-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	fields := map[string]any{
		model.FieldStatus:     model.StatusCancelled,
		model.FieldModifiedBy: "user-1",
	}

	require.NoError(t, repo.UpdateTx(context.Background(), tx, fields, "bk-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDetail_JoinsPackage(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("packages.name AS package_name") + ".*" +
		regexp.QuoteMeta("FROM bookings JOIN packages ON packages.id = bookings.package_id") + ".*" +
		regexp.QuoteMeta("WHERE (bookings.id = $1)")).
		ExpectQuery().
		WithArgs("bk-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_code", "package_name", "package_location"}).
			AddRow("bk-1", "BK-2026-12345", "Umrah Plus Turkey", "Istanbul"))

	got, err := repo.GetDetail(context.Background(), shared.FilterByID("bk-1", model.FieldID, model.TableName))
	require.NoError(t, err)

	assert.Equal(t, "BK-2026-12345", got.BookingCode)
	assert.Equal(t, "Umrah Plus Turkey", got.PackageName)
	assert.Equal(t, "Istanbul", got.PackageLocation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountDetail(t *testing.T) {
	repo, mock, _ := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(bookings.id) FROM bookings JOIN packages") + ".*" +
		regexp.QuoteMeta("WHERE (bookings.user_id = $1)")).
		ExpectQuery().
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	got, err := repo.CountDetail(context.Background(), shared.FilterByID("user-1", model.FieldUserID, model.TableName))
	require.NoError(t, err)

	assert.Equal(t, 3, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

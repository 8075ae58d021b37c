package model_test

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleema/internal/domains/booking/model"
	"saleema/shared/timezone"
)

func TestStatus_CanAdvanceTo(t *testing.T) {
	assert.True(t, model.StatusPending.CanAdvanceTo(model.StatusConfirmed))
	assert.True(t, model.StatusConfirmed.CanAdvanceTo(model.StatusCompleted))
	assert.False(t, model.StatusPending.CanAdvanceTo(model.StatusCompleted))
	assert.False(t, model.StatusConfirmed.CanAdvanceTo(model.StatusPending))
	assert.False(t, model.StatusCompleted.CanAdvanceTo(model.StatusConfirmed))
	assert.False(t, model.StatusCancelled.CanAdvanceTo(model.StatusPending))
	assert.False(t, model.StatusCompleted.CanAdvanceTo(""))
}

func TestStatus_Active(t *testing.T) {
	assert.True(t, model.StatusPending.Active())
	assert.True(t, model.StatusConfirmed.Active())
	assert.False(t, model.StatusCancelled.Active())
	assert.False(t, model.StatusCompleted.Active())
	assert.False(t, model.Status("archived").Active())
}

func TestBooking_Started(t *testing.T) {
	tests := []struct {
		name string
		zone string
		now  string
		want bool
	}{
		{name: "eve of departure ahead of UTC", zone: "Asia/Jakarta", now: "2026-10-19T23:00:00+07:00", want: false},
		{name: "early departure morning ahead of UTC", zone: "Asia/Jakarta", now: "2026-10-20T03:00:00+07:00", want: true},
		{name: "after departure day ahead of UTC", zone: "Asia/Jakarta", now: "2026-10-21T08:00:00+07:00", want: true},
		{name: "eve of departure behind UTC", zone: "America/New_York", now: "2026-10-19T21:00:00-04:00", want: false},
		{name: "departure morning behind UTC", zone: "America/New_York", now: "2026-10-20T00:30:00-04:00", want: true},
		{name: "local midnight counts as started", zone: "Asia/Jakarta", now: "2026-10-20T00:00:00+07:00", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := timezone.GetLocation().String()
			timezone.SetLocation(tt.zone)
			t.Cleanup(func() { timezone.SetLocation(previous) })

			// DATE columns come back from lib/pq as midnight UTC.
			departure, err := pq.ParseTimestamp(nil, "2026-10-20")
			require.NoError(t, err)

			now, err := time.Parse(time.RFC3339, tt.now)
			require.NoError(t, err)

			assert.Equal(t, tt.want, model.Booking{DepartureDate: departure}.Started(now))
		})
	}
}

func TestBooking_OwnedBy(t *testing.T) {
	b := model.Booking{UserID: "user-1"}

	assert.True(t, b.OwnedBy("user-1"))
	assert.False(t, b.OwnedBy("user-2"))
	assert.False(t, model.Booking{}.OwnedBy(""))
}

func TestPassengers_ValueScan(t *testing.T) {
	passengers := model.Passengers{
		{FullName: "Aisyah", PhoneNumber: "0811", Email: "aisyah@example.com", DocumentType: "passport", DocumentNumber: "X123"},
		{FullName: "Umar"},
	}

	value, err := passengers.Value()
	require.NoError(t, err)

	var scanned model.Passengers
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, passengers, scanned)

	require.NoError(t, scanned.Scan(`[{"fullname":"Fatimah"}]`))
	assert.Equal(t, model.Passengers{{FullName: "Fatimah"}}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestPassengers_NilValueIsEmptyArray(t *testing.T) {
	var passengers model.Passengers

	value, err := passengers.Value()

	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)
}

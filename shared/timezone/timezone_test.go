package timezone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleema/shared/timezone"
)

func withZone(t *testing.T, name string) {
	t.Helper()

	previous := timezone.GetLocation().String()
	timezone.SetLocation(name)

	t.Cleanup(func() { timezone.SetLocation(previous) })
}

func TestSetLocation(t *testing.T) {
	tests := []struct {
		name string
		zone string
		want string
	}{
		{name: "known zone", zone: "Asia/Jakarta", want: "Asia/Jakarta"},
		{name: "empty falls back", zone: "", want: "UTC"},
		{name: "unknown falls back", zone: "Mars/Olympus", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withZone(t, tt.zone)

			assert.Equal(t, tt.want, timezone.GetLocation().String())
			assert.Equal(t, tt.want, timezone.Now().Location().String())
		})
	}
}

func TestParseDate_IsMidnightInAppZone(t *testing.T) {
	withZone(t, "Asia/Jakarta")

	got, err := timezone.ParseDate("2026-03-01")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 2, 28, 17, 0, 0, 0, time.UTC), got.UTC())

	_, err = timezone.ParseDate("01/03/2026")
	assert.Error(t, err)
}

func TestDate_KeepsCalendarDay(t *testing.T) {
	tests := []struct {
		name  string
		zone  string
		input time.Time
		want  string
	}{
		{name: "scanned date ahead of UTC", zone: "Asia/Jakarta", input: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), want: "2026-10-20T00:00:00+07:00"},
		{name: "scanned date behind UTC", zone: "America/New_York", input: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), want: "2026-10-20T00:00:00-04:00"},
		{name: "already in app zone", zone: "Asia/Jakarta", input: time.Date(2026, 10, 20, 0, 0, 0, 0, time.FixedZone("WIB", 7*3600)), want: "2026-10-20T00:00:00+07:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withZone(t, tt.zone)

			assert.Equal(t, tt.want, timezone.Date(tt.input).Format(time.RFC3339))
			assert.Equal(t, "2026-10-20", timezone.FormatDate(tt.input))
		})
	}
}

func TestFormat(t *testing.T) {
	withZone(t, "Asia/Jakarta")

	assert.Equal(t, "2026-03-01 07:00", timezone.Format(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "2006-01-02 15:04"))
}

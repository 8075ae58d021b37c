package timezone

import (
	"saleema/config"
	"saleema/shared/constant"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

const fallbackZone = "UTC"

var appLocation atomic.Pointer[time.Location]

func init() {
	SetLocation(config.Get().App.Timezone)
}

// SetLocation swaps the application zone. Unknown names fall back to UTC.
func SetLocation(name string) {
	if name == constant.Empty {
		log.Warn().Msg("no timezone configured, using UTC")

		name = fallbackZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("failed to load timezone, using UTC")

		loc = time.UTC
	}

	appLocation.Store(loc)
	log.Debug().Str("timezone", loc.String()).Msg("application timezone set")
}

func GetLocation() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(GetLocation())
}

func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Parse reads value in the application zone when layout has no offset.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, GetLocation()) //nolint:wrapcheck
}

// ParseDate reads a YYYY-MM-DD date as midnight in the application zone.
func ParseDate(value string) (time.Time, error) {
	return Parse(constant.DateOnlyFormat, value)
}

// Date re-anchors the calendar date of t at midnight in the application zone.
// lib/pq scans DATE columns as midnight UTC, so converting them with In would
// move the day for any zone away from UTC.
func Date(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, GetLocation())
}

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return Date(t).Format(constant.DateOnlyFormat)
}

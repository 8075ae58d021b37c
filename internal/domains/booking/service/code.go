package service

import (
	"fmt"
	"math"
	"math/rand/v2"
	"saleema/internal/domains/booking/model"
	"time"
)

const (
	codeSuffixMin   = 10000
	codeSuffixRange = 90000
)

// generateCode returns BK-<year>-<five digits>. Uniqueness is enforced by the
// bookings_booking_code_key index, not here.
func generateCode(now time.Time) string {
	return fmt.Sprintf("BK-%d-%05d", now.Year(), rand.IntN(codeSuffixRange)+codeSuffixMin) //nolint:gosec
}

func totalPrice(price int64, participants int) (int64, error) {
	if price < 0 || participants <= 0 {
		return 0, model.ErrTotalPriceOverflow
	}

	if price > math.MaxInt64/int64(participants) {
		return 0, model.ErrTotalPriceOverflow
	}

	return price * int64(participants), nil
}

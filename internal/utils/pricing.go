package utils

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// RentalDays is the number of billable days between pickup and return:
// partial days round up and the result is never less than one.
func RentalDays(pickup, ret time.Time) int {
	days := int(math.Ceil(float64(ret.Sub(pickup)) / float64(day)))
	if days < 1 {
		return 1
	}
	return days
}

// LineSubtotal is days × daily rate rounded to cents. The Contracts API
// computes the billed amount; this is only for comparison and display.
func LineSubtotal(days int, dailyRate float64) float64 {
	return math.Round(float64(days)*dailyRate*100) / 100
}

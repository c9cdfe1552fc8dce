package service

import (
	"math"
	"time"
)

// NormalizeToDay truncates a timestamp to UTC midnight. All calendar-day
// arithmetic in the booking engine runs on normalized instants so that
// time-of-day and timezone offsets never shift the day count.
func NormalizeToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// RentalDays returns the number of chargeable calendar days between start
// and end. Zero or negative means the range is invalid: the end date must
// be strictly after the start date.
func RentalDays(start, end time.Time) int {
	diff := NormalizeToDay(end).Sub(NormalizeToDay(start))
	return int(math.Ceil(diff.Hours() / 24))
}

// TotalPrice returns the booking price for the given day count at the
// vehicle's daily rate. The result is fixed at booking creation; later rate
// changes never touch existing bookings.
func TotalPrice(days int, dailyRate float64) float64 {
	return float64(days) * dailyRate
}

package domain

import "time"

// DurationMinutes returns a reservation's length in minutes. Positive for any
// valid reservation (start < end).
func DurationMinutes(r Reservation) int {
	return int(r.EndDatetime.Sub(r.StartDatetime) / time.Minute)
}

// SpanHeightFraction derives the block height of a reservation relative to a
// one-hour slot, for proportional rendering. A 90-minute booking spans 1.5
// slots.
func SpanHeightFraction(r Reservation) float64 {
	return float64(DurationMinutes(r)) / 60
}

package domain

import "time"

// The occupancy checks below match reservations against the calendar day of
// their start only. A reservation crossing midnight therefore occupies slots
// on its first day alone; its tail does not render on the following day. This
// mirrors the shipped grid behavior and is kept pending product
// clarification.

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Occupied reports whether any reservation in the working set covers the
// one-hour slot starting at hour on day.
func Occupied(workingSet []Reservation, day time.Time, hour int) bool {
	slotStart := SlotStart(day, hour)
	slotEnd := SlotStart(day, hour+1)
	for _, r := range workingSet {
		if SameDay(r.StartDatetime, day) && Overlaps(r.StartDatetime, r.EndDatetime, slotStart, slotEnd) {
			return true
		}
	}
	return false
}

// ReservationAt returns the reservation anchored exactly at hour on day, if
// any. The anchor slot is where a multi-hour block renders its header.
func ReservationAt(workingSet []Reservation, day time.Time, hour int) (Reservation, bool) {
	for _, r := range workingSet {
		if SameDay(r.StartDatetime, day) && r.StartDatetime.Hour() == hour {
			return r, true
		}
	}
	return Reservation{}, false
}

// ContinuationAt returns the reservation covering the slot at hour on day
// whose own start is strictly earlier, i.e. the slot is a trailing cell of a
// multi-hour block.
func ContinuationAt(workingSet []Reservation, day time.Time, hour int) (Reservation, bool) {
	slotStart := SlotStart(day, hour)
	for _, r := range workingSet {
		if SameDay(r.StartDatetime, day) && r.StartDatetime.Before(slotStart) && r.EndDatetime.After(slotStart) {
			return r, true
		}
	}
	return Reservation{}, false
}

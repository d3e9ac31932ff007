package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func reservationBetween(t *testing.T, start, end time.Time) Reservation {
	t.Helper()
	id, err := uuid.NewV7()
	if err != nil {
		t.Fatalf("uuid: %v", err)
	}
	return Reservation{
		ID:            id,
		RoomID:        uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		UserName:      "M. Martin",
		Title:         "Cours de Maths",
		StartDatetime: start,
		EndDatetime:   end,
		PeopleCount:   28,
	}
}

func TestOccupied_TwoHourReservation(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	res := reservationBetween(t,
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local),
		time.Date(2024, 3, 4, 11, 0, 0, 0, time.Local),
	)
	ws := []Reservation{res}

	cases := []struct {
		hour int
		want bool
	}{
		{8, false},
		{9, true},
		{10, true},
		{11, false},
		{12, false},
	}
	for _, tc := range cases {
		if got := Occupied(ws, day, tc.hour); got != tc.want {
			t.Fatalf("Occupied(day, %d) = %v, want %v", tc.hour, got, tc.want)
		}
	}

	if got := DurationMinutes(res); got != 120 {
		t.Fatalf("DurationMinutes = %d, want 120", got)
	}
	if got := SpanHeightFraction(res); got != 2.0 {
		t.Fatalf("SpanHeightFraction = %v, want 2.0", got)
	}
}

func TestOccupied_PartialHourStillBlocksSlot(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	// 08:00–09:30 covers the 8 slot fully and the 9 slot partially.
	res := reservationBetween(t,
		time.Date(2024, 3, 4, 8, 0, 0, 0, time.Local),
		time.Date(2024, 3, 4, 9, 30, 0, 0, time.Local),
	)
	ws := []Reservation{res}

	if !Occupied(ws, day, 8) {
		t.Fatalf("Occupied(day, 8) = false, want true")
	}
	if !Occupied(ws, day, 9) {
		t.Fatalf("Occupied(day, 9) = false, want true")
	}
	if Occupied(ws, day, 10) {
		t.Fatalf("Occupied(day, 10) = true, want false")
	}
	if got := DurationMinutes(res); got != 90 {
		t.Fatalf("DurationMinutes = %d, want 90", got)
	}
	if got := SpanHeightFraction(res); got != 1.5 {
		t.Fatalf("SpanHeightFraction = %v, want 1.5", got)
	}
}

func TestOccupied_DisjointReservationsDoNotBlockEachOther(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	a := reservationBetween(t,
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local),
		time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local),
	)
	b := reservationBetween(t,
		time.Date(2024, 3, 4, 14, 0, 0, 0, time.Local),
		time.Date(2024, 3, 4, 16, 0, 0, 0, time.Local),
	)
	ws := []Reservation{a, b}

	for hour := FirstBookableHour; hour <= LastBookableHour; hour++ {
		inA := hour == 9
		inB := hour == 14 || hour == 15
		if got := Occupied(ws, day, hour); got != (inA || inB) {
			t.Fatalf("Occupied(day, %d) = %v, want %v", hour, got, inA || inB)
		}
	}
}

func TestReservationAt_AnchorsOnStartHourOnly(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	res := reservationBetween(t,
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local),
		time.Date(2024, 3, 4, 11, 0, 0, 0, time.Local),
	)
	ws := []Reservation{res}

	got, ok := ReservationAt(ws, day, 9)
	if !ok {
		t.Fatalf("ReservationAt(day, 9): not found")
	}
	if got.ID != res.ID {
		t.Fatalf("ReservationAt returned %s, want %s", got.ID, res.ID)
	}
	if _, ok := ReservationAt(ws, day, 10); ok {
		t.Fatalf("ReservationAt(day, 10): found, want anchor hour only")
	}
}

func TestContinuationAt(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	res := reservationBetween(t,
		time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local),
		time.Date(2024, 3, 4, 12, 0, 0, 0, time.Local),
	)
	ws := []Reservation{res}

	if _, ok := ContinuationAt(ws, day, 9); ok {
		t.Fatalf("anchor hour reported as continuation")
	}
	for _, hour := range []int{10, 11} {
		got, ok := ContinuationAt(ws, day, hour)
		if !ok {
			t.Fatalf("ContinuationAt(day, %d): not found", hour)
		}
		if got.ID != res.ID {
			t.Fatalf("ContinuationAt(day, %d) = %s, want %s", hour, got.ID, res.ID)
		}
	}
	if _, ok := ContinuationAt(ws, day, 12); ok {
		t.Fatalf("hour at end instant reported as continuation")
	}
}

func TestOccupied_MidnightSpanMatchesStartDayOnly(t *testing.T) {
	// Documented behavior: a reservation crossing midnight occupies slots on
	// the day it started, never on the following day.
	res := reservationBetween(t,
		time.Date(2024, 3, 4, 20, 0, 0, 0, time.Local),
		time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local),
	)
	ws := []Reservation{res}

	firstDay := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	secondDay := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)

	if !Occupied(ws, firstDay, 20) {
		t.Fatalf("Occupied(first day, 20) = false, want true")
	}
	if Occupied(ws, secondDay, 8) {
		t.Fatalf("Occupied(second day, 8) = true, want false (start-day keyed)")
	}
	if _, ok := ContinuationAt(ws, secondDay, 8); ok {
		t.Fatalf("ContinuationAt(second day, 8): found, want start-day keyed")
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	s := time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)
	e := s.Add(time.Hour)

	if Overlaps(s, e, e, e.Add(time.Hour)) {
		t.Fatalf("adjacent intervals reported as overlapping")
	}
	if !Overlaps(s, e, s.Add(30*time.Minute), e.Add(time.Hour)) {
		t.Fatalf("intersecting intervals reported as disjoint")
	}
	if !Overlaps(s, e.Add(2*time.Hour), s.Add(time.Hour), s.Add(90*time.Minute)) {
		t.Fatalf("contained interval reported as disjoint")
	}
}

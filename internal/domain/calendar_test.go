package domain

import (
	"testing"
	"time"
)

func TestMondayOf(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday maps to itself",
			in:   time.Date(2024, 3, 4, 15, 30, 0, 0, time.Local),
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local),
		},
		{
			name: "wednesday maps back two days",
			in:   time.Date(2024, 3, 6, 9, 0, 0, 0, time.Local),
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local),
		},
		{
			name: "saturday maps back five days",
			in:   time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local),
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local),
		},
		{
			name: "sunday belongs to the week ending on it",
			in:   time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local),
			want: time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local),
		},
		{
			name: "month boundary",
			in:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local),
			want: time.Date(2024, 2, 26, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MondayOf(tc.in)
			if !got.Equal(tc.want) {
				t.Fatalf("MondayOf(%v) = %v, want %v", tc.in, got, tc.want)
			}
			if got.Weekday() != time.Monday {
				t.Fatalf("weekday = %v, want Monday", got.Weekday())
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
				t.Fatalf("time of day not zeroed: %v", got)
			}
		})
	}
}

func TestMondayOf_AtMostSixDaysBack(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	for i := 0; i < 60; i++ {
		d := AddDays(start, i)
		m := MondayOf(d)
		if m.After(d) {
			t.Fatalf("MondayOf(%v) = %v is after input", d, m)
		}
		within := false
		for k := 0; k <= 6; k++ {
			if AddDays(m, k).Equal(StartOfDay(d)) {
				within = true
				break
			}
		}
		if !within {
			t.Fatalf("MondayOf(%v) = %v more than six days back", d, m)
		}
	}
}

func TestBuildWeek(t *testing.T) {
	monday := MondayOf(time.Date(2024, 3, 6, 0, 0, 0, 0, time.Local))
	days := BuildWeek(monday)

	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	if !days[0].Equal(monday) {
		t.Fatalf("days[0] = %v, want %v", days[0], monday)
	}
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(AddDays(days[i-1], 1)) {
			t.Fatalf("days[%d] = %v not consecutive after %v", i, days[i], days[i-1])
		}
	}
	if days[6].Weekday() != time.Sunday {
		t.Fatalf("days[6] weekday = %v, want Sunday", days[6].Weekday())
	}
}

func TestShiftWeek_RoundTrips(t *testing.T) {
	w := MondayOf(time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local))
	for i := 0; i < 10; i++ {
		next := ShiftWeek(w, 1)
		if next.Weekday() != time.Monday {
			t.Fatalf("ShiftWeek(+1) weekday = %v, want Monday", next.Weekday())
		}
		if !next.Equal(AddDays(w, 7)) {
			t.Fatalf("ShiftWeek(+1) = %v, want %v", next, AddDays(w, 7))
		}
		back := ShiftWeek(next, -1)
		if !back.Equal(w) {
			t.Fatalf("ShiftWeek round trip: got %v, want %v", back, w)
		}
		w = next
	}
}

func TestBookableHours(t *testing.T) {
	hours := BookableHours()
	if len(hours) != 14 {
		t.Fatalf("len(hours) = %d, want 14", len(hours))
	}
	if hours[0] != 7 || hours[len(hours)-1] != 20 {
		t.Fatalf("hours = %v, want 7..20", hours)
	}
	for i := 1; i < len(hours); i++ {
		if hours[i] != hours[i-1]+1 {
			t.Fatalf("hours not consecutive: %v", hours)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	b := time.Date(2024, 3, 4, 23, 59, 59, 0, time.Local)
	if !SameDay(a, b) {
		t.Fatalf("SameDay(%v, %v) = false, want true", a, b)
	}
	c := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	if SameDay(a, c) {
		t.Fatalf("SameDay(%v, %v) = true, want false", a, c)
	}
	// Same day-of-month in a different month is a different day.
	d := time.Date(2024, 4, 4, 12, 0, 0, 0, time.Local)
	if SameDay(a, d) {
		t.Fatalf("SameDay(%v, %v) = true, want false", a, d)
	}
}

func TestSlotStart(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	got := SlotStart(day, 9)
	want := time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("SlotStart = %v, want %v", got, want)
	}
}

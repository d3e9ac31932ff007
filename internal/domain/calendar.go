package domain

import "time"

const (
	// FirstBookableHour and LastBookableHour bound the booking grid: slots
	// run 07:00 through 20:00, one hour each.
	FirstBookableHour = 7
	LastBookableHour  = 20

	daysPerWeek = 7
)

// BookableHours returns the fixed ordered hour sequence 7..20.
func BookableHours() []int {
	hours := make([]int, 0, LastBookableHour-FirstBookableHour+1)
	for h := FirstBookableHour; h <= LastBookableHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// StartOfDay returns t at midnight, keeping its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// MondayOf returns the Monday at midnight of the week containing t. A Sunday
// belongs to the week ending on it, so its Monday is six days back.
func MondayOf(t time.Time) time.Time {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	return AddDays(StartOfDay(t), -offset)
}

// BuildWeek expands a week start into its seven consecutive days, Monday
// first.
func BuildWeek(weekStart time.Time) []time.Time {
	days := make([]time.Time, daysPerWeek)
	for i := range days {
		days[i] = AddDays(weekStart, i)
	}
	return days
}

// ShiftWeek moves a week start by whole weeks in either direction.
func ShiftWeek(weekStart time.Time, weeks int) time.Time {
	return AddDays(weekStart, weeks*daysPerWeek)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SlotStart returns the instant a one-hour slot begins on the given day.
func SlotStart(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}

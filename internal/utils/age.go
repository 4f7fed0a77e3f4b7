package utils

import (
	"fmt"
	"strings"
	"time"
)

// Age is a calendar-aware breakdown of the span between a birth instant and
// now. It is a display value; the underlying instant stays exact.
type Age struct {
	Years  int
	Months int
	Days   int
}

// AgeBreakdown computes the calendar age at now for the given birth instant.
// Components are subtracted year, then month, then day; a negative day
// difference borrows the prior month's day count, and a negative month
// difference after that borrows a year.
func AgeBreakdown(birth, now time.Time) Age {
	years := now.Year() - birth.Year()
	months := int(now.Month()) - int(birth.Month())
	days := now.Day() - birth.Day()

	if days < 0 {
		months--
		// Day 0 of the current month is the last day of the previous month.
		prevMonthLastDay := time.Date(now.Year(), now.Month(), 0, 0, 0, 0, 0, now.Location()).Day()
		days += prevMonthLastDay
	}
	if months < 0 {
		years--
		months += 12
	}

	return Age{Years: years, Months: months, Days: days}
}

// String renders an age label like "2y 3m 14d". Years and months are shown
// only when non-zero; days are shown when non-negative, and always for a
// newborn so the label is never empty.
func (a Age) String() string {
	var parts []string
	if a.Years > 0 {
		parts = append(parts, fmt.Sprintf("%dy", a.Years))
	}
	if a.Months > 0 {
		parts = append(parts, fmt.Sprintf("%dm", a.Months))
	}
	if a.Days >= 0 || (a.Years == 0 && a.Months == 0) {
		parts = append(parts, fmt.Sprintf("%dd", a.Days))
	}
	return strings.Join(parts, " ")
}

// FormatAge returns the display label for a bird's age at now, or
// "Age unknown" when no birth instant is stored.
func FormatAge(birth, now time.Time) string {
	if birth.IsZero() {
		return "Age unknown"
	}
	return AgeBreakdown(birth, now).String()
}

// AgeInDays returns the whole number of days between birth and now.
func AgeInDays(birth, now time.Time) int {
	return int(now.Sub(birth).Hours() / 24)
}

// BirthDateFromAge synthesizes a birth instant by subtracting an entered age
// offset from now. Used when a bird is added by age rather than birth date.
func BirthDateFromAge(now time.Time, years, months, days int) time.Time {
	return now.AddDate(-years, -months, -days)
}

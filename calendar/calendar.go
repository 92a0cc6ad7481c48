package calendar

import "time"

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonth advances t by exactly one calendar month, preserving the
// day-of-month unless the target month is shorter, in which case the result
// is clamped to the last day of the target month (Jan 31 -> Feb 28/29).
func AddMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears advances t by the given number of years, clamping Feb 29 to
// Feb 28 on non-leap target years.
func AddYears(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	year += years
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// Date builds a date at midnight in loc, clamping day to the last valid day
// of the month when the nominal day does not exist (day 31 in February).
func Date(year int, month time.Month, day int, loc *time.Location) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// MonthsBetween counts whole elapsed months from from to to. A partial final
// month (to's day-of-month earlier than from's) is not counted. The result is
// negative when to precedes from by at least a full month.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// WholeMonthsSince counts whole months elapsed between a nominal start date
// and now. Same counting rule as MonthsBetween.
func WholeMonthsSince(start, now time.Time) int {
	return MonthsBetween(start, now)
}

// DaysUntil returns the number of whole days from now until t, truncated
// toward zero. Negative when t has already passed.
func DaysUntil(now, t time.Time) int {
	return int(t.Sub(now).Hours() / 24)
}

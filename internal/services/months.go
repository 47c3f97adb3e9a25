package services

import "time"

// monthsBefore steps back n calendar months from (year, month) and
// returns the resulting (year, month). n may be negative to step
// forward. Stepping from the first of the month keeps the arithmetic
// exact across months of different lengths.
func monthsBefore(year, month, n int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -n, 0)
	return t.Year(), int(t.Month())
}

// nextMonth returns the calendar month following (year, month),
// wrapping December into January of the next year.
func nextMonth(year, month int) (int, int) {
	return monthsBefore(year, month, -1)
}

// monthStart returns the UTC instant the month begins.
func monthStart(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

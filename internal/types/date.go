package types

import "time"

// NextRunDate advances start by one billing interval. The math is
// calendar-based rather than fixed-duration: advancing Jan 31 by one month
// lands on the last day of February.
func NextRunDate(start time.Time, interval BillingInterval) (time.Time, error) {
	if err := interval.Validate(); err != nil {
		return start, err
	}
	return AddClampedDate(start, 0, interval.Months(), 0), nil
}

// AddClampedDate adds the given years/months/days to t, clamping the day of
// month to the last valid day of the target month. This avoids the
// time.AddDate normalisation where Jan 31 + 1 month becomes Mar 3.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	// Last valid day of the target month
	firstOfNextMonth := time.Date(newY, newM+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNextMonth.Add(-24 * time.Hour).Day()

	newD := d + days
	if newD > lastDay {
		newD = lastDay
	}

	return time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location())
}

// DaysOverdue returns the whole days between due and now, zero when the
// due date is in the future.
func DaysOverdue(due time.Time, now time.Time) int {
	if !due.Before(now) {
		return 0
	}
	return int(now.Sub(due).Hours() / 24)
}

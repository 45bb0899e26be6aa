package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddClampedDateClampsToMonthEnd(t *testing.T) {
	jan31 := time.Date(2025, 1, 31, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 2, 28, 10, 30, 0, 0, time.UTC), AddClampedDate(jan31, 0, 1, 0))
	assert.Equal(t, time.Date(2025, 4, 30, 10, 30, 0, 0, time.UTC), AddClampedDate(jan31, 0, 3, 0))

	// Leap year keeps the 29th
	jan31leap := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), AddClampedDate(jan31leap, 0, 1, 0))
}

func TestAddClampedDateCrossesYearBoundary(t *testing.T) {
	nov30 := time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), AddClampedDate(nov30, 0, 3, 0))

	dec15 := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), AddClampedDate(dec15, 0, 1, 0))
}

func TestNextRunDate(t *testing.T) {
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	next, err := NextRunDate(start, BillingIntervalMonthly)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), next)

	next, err = NextRunDate(start, BillingIntervalQuarterly)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), next)

	next, err = NextRunDate(start, BillingIntervalYearly)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), next)

	_, err = NextRunDate(start, BillingInterval("weekly"))
	assert.Error(t, err)
}

func TestDaysOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysOverdue(now.AddDate(0, 0, 5), now))
	assert.Equal(t, 0, DaysOverdue(now, now))
	assert.Equal(t, 0, DaysOverdue(now.Add(-12*time.Hour), now))
	assert.Equal(t, 1, DaysOverdue(now.AddDate(0, 0, -1), now))
	assert.Equal(t, 30, DaysOverdue(now.AddDate(0, 0, -30), now))
}

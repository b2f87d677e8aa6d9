package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
	"github.com/straye-as/crm-portal/internal/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestForecastBounds(t *testing.T) {
	now := time.Date(2026, time.November, 5, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		period     domain.ForecastPeriod
		start, end time.Time
	}{
		{domain.ForecastMonth, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)},
		{domain.ForecastQuarter, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
		{domain.ForecastYear, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := forecastBounds(tt.period, now)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestPreviousMonthBounds_January(t *testing.T) {
	start, end := previousMonthBounds(time.Date(2026, time.January, 31, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekBuckets(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	buckets := weekBuckets(now)

	assert.Len(t, buckets, 7)
	assert.Equal(t, now.Add(-49*24*time.Hour), buckets[0].Start)
	assert.Equal(t, now, buckets[6].End)
	for i := 1; i < len(buckets); i++ {
		assert.Equal(t, buckets[i-1].End, buckets[i].Start)
	}

	assert.Equal(t, 6, bucketIndex(buckets, now))
	assert.Equal(t, -1, bucketIndex(buckets, now.Add(time.Nanosecond)))
	assert.Equal(t, 0, bucketIndex(buckets, buckets[0].Start))
	assert.Equal(t, -1, bucketIndex(buckets, buckets[0].Start.Add(-time.Nanosecond)))
}

func TestRunBulk_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var seen []string

	res := runBulk(ctx, []string{"a", "b", "c"}, zap.NewNop(), func(_ context.Context, id string) error {
		seen = append(seen, id)
		if id == "a" {
			cancel()
		}
		return nil
	})

	assert.Equal(t, []string{"a"}, seen)
	assert.Equal(t, []string{"a"}, res.Succeeded)
	assert.Equal(t, "b", res.FailedID)
	assert.Equal(t, []string{"c"}, res.Skipped)
	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(fmt.Errorf("get deal: %w", repository.ErrNotFound)), ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, notFound(other))
}

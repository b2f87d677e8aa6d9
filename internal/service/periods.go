package service

import (
	"time"

	"github.com/straye-as/crm-portal/internal/domain"
)

// monthBounds returns the calendar month containing t as [start, end)
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// previousMonthBounds returns the calendar month before the one containing t
func previousMonthBounds(t time.Time) (time.Time, time.Time) {
	start, _ := monthBounds(t)
	return start.AddDate(0, -1, 0), start
}

// forecastBounds returns the calendar month, quarter or year containing now as [start, end)
func forecastBounds(period domain.ForecastPeriod, now time.Time) (time.Time, time.Time) {
	switch period {
	case domain.ForecastQuarter:
		firstMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		start := time.Date(now.Year(), firstMonth, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 3, 0)
	case domain.ForecastYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0)
	default:
		return monthBounds(now)
	}
}

func within(t, start, end time.Time) bool {
	return !t.IsZero() && !t.Before(start) && t.Before(end)
}

const week = 7 * 24 * time.Hour

// weekBuckets returns seven rolling 7-day windows ending at now, oldest first.
// The last window is closed at now so a record created exactly now is counted.
func weekBuckets(now time.Time) []domain.WeeklyLeads {
	buckets := make([]domain.WeeklyLeads, 7)
	for i := range buckets {
		label := "This Week"
		if i < 6 {
			label = "Week " + string(rune('1'+i))
		}
		buckets[i] = domain.WeeklyLeads{
			Week:  label,
			Start: now.Add(-time.Duration(7-i) * week),
			End:   now.Add(-time.Duration(6-i) * week),
		}
	}
	return buckets
}

// bucketIndex finds the bucket holding t, or -1
func bucketIndex(buckets []domain.WeeklyLeads, t time.Time) int {
	if t.IsZero() {
		return -1
	}
	last := len(buckets) - 1
	for i, b := range buckets {
		if t.Before(b.Start) {
			continue
		}
		if t.Before(b.End) || (i == last && t.Equal(b.End)) {
			return i
		}
	}
	return -1
}

package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, activity string, date Date, minutes int) TimeRecord {
	return TimeRecord{
		ID:              id,
		Activity:        activity,
		Date:            date,
		StartTime:       TimeOfDay{0, 0},
		EndTime:         TimeOfDay{minutes / 60, minutes % 60},
		DurationMinutes: minutes,
	}
}

func TestAggregateAll(t *testing.T) {
	records := []TimeRecord{
		record("1", "A", monday, 60),
		record("2", "A", monday.AddDays(1), 30),
		record("3", "B", monday.AddDays(-3), 30),
	}

	stats := Aggregate(records, ScopeAll())

	assert.Equal(t, 120, stats.TotalMinutes)
	assert.Equal(t, 3, stats.RecordCount)
	assert.Equal(t, "A", stats.TopActivity)
	assert.Equal(t, []string{"A", "B"}, stats.Activities)
	require.NotNil(t, stats.EarliestDate)
	assert.Equal(t, monday.AddDays(-3), *stats.EarliestDate)

	assert.Equal(t, ActivityStats{Activity: "A", TotalMinutes: 90, Count: 2, AverageMinutes: 45, Percentage: 75}, stats.ByActivity["A"])
	assert.Equal(t, ActivityStats{Activity: "B", TotalMinutes: 30, Count: 1, AverageMinutes: 30, Percentage: 25}, stats.ByActivity["B"])
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil, ScopeAll())
	assert.Equal(t, 0, stats.TotalMinutes)
	assert.Empty(t, stats.ByActivity)
	assert.Empty(t, stats.TopActivity)
	assert.Nil(t, stats.EarliestDate)
}

func TestAggregateTopActivityTieBreak(t *testing.T) {
	records := []TimeRecord{
		record("1", "B", monday, 30),
		record("2", "A", monday, 20),
		record("3", "A", monday, 10),
	}
	assert.Equal(t, "B", Aggregate(records, ScopeAll()).TopActivity)
}

func TestAggregateZeroTotal(t *testing.T) {
	records := []TimeRecord{record("1", "Marker", monday, 0)}
	stats := Aggregate(records, ScopeAll())

	assert.Equal(t, 0, stats.TotalMinutes)
	assert.Equal(t, "Marker", stats.TopActivity)
	assert.Equal(t, 0.0, stats.ByActivity["Marker"].Percentage)
	assert.Equal(t, 1, stats.ByActivity["Marker"].Count)
}

func TestAggregateWeekScope(t *testing.T) {
	week := DefaultWeekWindow.Range(monday)
	records := []TimeRecord{
		record("1", "A", monday.AddDays(-1), 600), // previous Sunday
		record("2", "B", monday, 45),
		record("3", "A", monday.AddDays(6), 15),
		record("4", "C", monday.AddDays(7), 90), // next Monday
	}

	stats := Aggregate(records, ScopeWeek(week))
	assert.Equal(t, 60, stats.TotalMinutes)
	assert.Equal(t, 2, stats.RecordCount)
	assert.Equal(t, "B", stats.TopActivity)
	assert.Equal(t, []string{"B", "A"}, stats.Activities)
	require.NotNil(t, stats.EarliestDate)
	assert.Equal(t, monday, *stats.EarliestDate)

	w, ok := ScopeWeek(week).Week()
	assert.True(t, ok)
	assert.Equal(t, week, w)
	_, ok = ScopeAll().Week()
	assert.False(t, ok)
}

func TestAggregateIsIdempotent(t *testing.T) {
	records := []TimeRecord{
		record("1", "A", monday, 60),
		record("2", "B", monday, 30),
	}
	before := make([]TimeRecord, len(records))
	copy(before, records)

	first := Aggregate(records, ScopeAll())
	second := Aggregate(records, ScopeAll())

	assert.Equal(t, first, second)
	assert.Equal(t, before, records)
}

func TestDailyTotals(t *testing.T) {
	week := DefaultWeekWindow.Range(NewDate(2024, time.March, 13))
	records := []TimeRecord{
		record("1", "A", monday, 60),
		record("2", "B", monday, 30),
		record("3", "A", monday.AddDays(4), 15),
		record("4", "A", monday.AddDays(-1), 500),
	}

	totals := DailyTotals(records, week)
	require.Len(t, totals, 7)
	assert.Equal(t, DayTotal{Date: monday, TotalMinutes: 90, Count: 2}, totals[0])
	assert.Equal(t, DayTotal{Date: monday.AddDays(4), TotalMinutes: 15, Count: 1}, totals[4])
	assert.Equal(t, DayTotal{Date: monday.AddDays(6)}, totals[6])
}

package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekRange(t *testing.T) {
	wednesday := NewDate(2024, time.March, 13)

	t.Run("MondayStart", func(t *testing.T) {
		w := DefaultWeekWindow.Range(wednesday)
		assert.Equal(t, NewDate(2024, time.March, 11), w.Start)
		assert.Equal(t, NewDate(2024, time.March, 17), w.End)
	})

	t.Run("SundayStart", func(t *testing.T) {
		w := NewWeekWindow(time.Sunday).Range(wednesday)
		assert.Equal(t, NewDate(2024, time.March, 10), w.Start)
		assert.Equal(t, NewDate(2024, time.March, 16), w.End)
	})

	t.Run("ReferenceOnBoundaries", func(t *testing.T) {
		ww := DefaultWeekWindow
		assert.Equal(t, NewDate(2024, time.March, 11), ww.Range(NewDate(2024, time.March, 11)).Start)
		assert.Equal(t, NewDate(2024, time.March, 11), ww.Range(NewDate(2024, time.March, 17)).Start)
		assert.Equal(t, NewDate(2024, time.March, 18), ww.Range(NewDate(2024, time.March, 18)).Start)
	})

	t.Run("AcrossYearEnd", func(t *testing.T) {
		w := DefaultWeekWindow.Range(NewDate(2024, time.December, 31))
		assert.Equal(t, NewDate(2024, time.December, 30), w.Start)
		assert.Equal(t, NewDate(2025, time.January, 5), w.End)
	})
}

func TestWeekRangeAlwaysSevenConsecutiveDays(t *testing.T) {
	ref := NewDate(2023, time.December, 20)
	for start := time.Sunday; start <= time.Saturday; start++ {
		ww := NewWeekWindow(start)
		for i := 0; i < 60; i++ {
			d := ref.AddDays(i)
			w := ww.Range(d)
			days := w.Days()

			require.Len(t, days, 7)
			assert.Equal(t, w.Start, days[0])
			assert.Equal(t, w.End, days[6])
			assert.Equal(t, start, w.Start.Weekday())
			for j := 1; j < len(days); j++ {
				assert.Equal(t, days[j-1].AddDays(1), days[j])
			}
			assert.True(t, ww.IsInWeek(d, d))
		}
	}
}

func TestIsInWeek(t *testing.T) {
	ref := NewDate(2024, time.March, 13)
	ww := DefaultWeekWindow

	assert.True(t, ww.IsInWeek(NewDate(2024, time.March, 11), ref))
	assert.True(t, ww.IsInWeek(NewDate(2024, time.March, 17), ref))
	assert.False(t, ww.IsInWeek(NewDate(2024, time.March, 10), ref))
	assert.False(t, ww.IsInWeek(NewDate(2024, time.March, 18), ref))
}

func TestParseWeekday(t *testing.T) {
	for input, want := range map[string]time.Weekday{
		"monday": time.Monday,
		"Mon":    time.Monday,
		" SUN ":  time.Sunday,
		"6":      time.Saturday,
	} {
		got, err := ParseWeekday(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseWeekday("someday")
	assert.Error(t, err)
}

package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationCalculator(t *testing.T) {
	calc := DurationCalculator{}

	t.Run("SameDay", func(t *testing.T) {
		res := calc.Compute(TimeOfDay{9, 0}, TimeOfDay{10, 30})
		assert.True(t, res.Valid)
		assert.Nil(t, res.Err)
		assert.Equal(t, 90, res.Minutes)

		res = calc.Compute(TimeOfDay{0, 0}, TimeOfDay{23, 59})
		assert.True(t, res.Valid)
		assert.Equal(t, 1439, res.Minutes)
	})

	t.Run("OvernightWrap", func(t *testing.T) {
		res := calc.Compute(TimeOfDay{23, 30}, TimeOfDay{0, 15})
		assert.True(t, res.Valid)
		assert.Equal(t, 45, res.Minutes)

		res = calc.Compute(TimeOfDay{9, 1}, TimeOfDay{9, 0})
		assert.True(t, res.Valid)
		assert.Equal(t, 1439, res.Minutes)
	})

	t.Run("ZeroLengthRejectedByDefault", func(t *testing.T) {
		res := calc.Compute(TimeOfDay{9, 0}, TimeOfDay{9, 0})
		assert.False(t, res.Valid)
		assert.Equal(t, 0, res.Minutes)
		require.NotNil(t, res.Err)
		assert.Equal(t, ReasonNonPositive, res.Err.Reason)
	})

	t.Run("ZeroLengthOptIn", func(t *testing.T) {
		res := DurationCalculator{AllowZero: true}.Compute(TimeOfDay{9, 0}, TimeOfDay{9, 0})
		assert.True(t, res.Valid)
		assert.Equal(t, 0, res.Minutes)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		res := calc.Compute(TimeOfDay{24, 0}, TimeOfDay{1, 0})
		assert.False(t, res.Valid)
		assert.Equal(t, 0, res.Minutes)
		require.NotNil(t, res.Err)
		assert.Equal(t, "startTime", res.Err.Field)

		res = calc.Compute(TimeOfDay{1, 0}, TimeOfDay{1, 60})
		assert.False(t, res.Valid)
		require.NotNil(t, res.Err)
		assert.Equal(t, "endTime", res.Err.Field)
		assert.Equal(t, ReasonEndOutOfRange, res.Err.Reason)
	})

	t.Run("SameDayMatchesDifference", func(t *testing.T) {
		for start := 0; start < minutesPerDay; start += 37 {
			for end := start + 1; end < minutesPerDay; end += 53 {
				res := calc.Compute(TimeOfDay{start / 60, start % 60}, TimeOfDay{end / 60, end % 60})
				require.True(t, res.Valid)
				require.Equal(t, end-start, res.Minutes)
			}
		}
	})
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))

	assert.Equal(t, "0 minutes", FormatMinutesLong(-5))
	assert.Equal(t, "1 hours 30 minutes", FormatMinutesLong(90))
	assert.Equal(t, "3 hours", FormatMinutesLong(180))
}

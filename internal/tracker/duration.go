package tracker

const minutesPerDay = 24 * 60

// Reasons reported by DurationCalculator.
const (
	ReasonStartOutOfRange = "start time out of range"
	ReasonEndOutOfRange   = "end time out of range"
	ReasonNonPositive     = "duration must be positive"
)

// DurationResult is the outcome of DurationCalculator.Compute. Minutes is 0
// whenever Valid is false.
type DurationResult struct {
	Minutes int
	Valid   bool
	Err     *ValidationError
}

// DurationCalculator turns a start/end pair within a day into elapsed
// minutes. An end earlier than the start crosses midnight.
type DurationCalculator struct {
	// AllowZero accepts start == end as a zero-length record.
	AllowZero bool
}

// Compute returns the elapsed minutes between start and end.
func (dc DurationCalculator) Compute(start, end TimeOfDay) DurationResult {
	if !start.Valid() {
		return invalidDuration("startTime", ReasonStartOutOfRange)
	}
	if !end.Valid() {
		return invalidDuration("endTime", ReasonEndOutOfRange)
	}

	minutes := end.Minutes() - start.Minutes()
	if minutes < 0 {
		minutes += minutesPerDay
	}
	if minutes == 0 && !dc.AllowZero {
		return invalidDuration("endTime", ReasonNonPositive)
	}

	return DurationResult{Minutes: minutes, Valid: true}
}

func invalidDuration(field, reason string) DurationResult {
	return DurationResult{Err: newValidationError(field, reason)}
}

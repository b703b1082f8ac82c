package tracker

import (
	"fmt"
	"strings"
	"time"
)

const daysPerWeek = 7

// WeekRange is a window of seven consecutive dates, both ends inclusive.
type WeekRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Days returns the seven dates of the window in order.
func (w WeekRange) Days() []Date {
	days := make([]Date, daysPerWeek)
	for i := range days {
		days[i] = w.Start.AddDays(i)
	}
	return days
}

// Contains reports whether d falls inside the window.
func (w WeekRange) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// WeekWindow computes week windows that begin on StartDay.
type WeekWindow struct {
	StartDay time.Weekday
}

// NewWeekWindow returns a window starting on the given weekday.
func NewWeekWindow(start time.Weekday) WeekWindow {
	return WeekWindow{StartDay: start}
}

// DefaultWeekWindow starts weeks on Monday.
var DefaultWeekWindow = WeekWindow{StartDay: time.Monday}

// Range returns the week containing ref.
func (ww WeekWindow) Range(ref Date) WeekRange {
	offset := (int(ref.Weekday()) - int(ww.StartDay) + daysPerWeek) % daysPerWeek
	start := ref.AddDays(-offset)
	return WeekRange{Start: start, End: start.AddDays(daysPerWeek - 1)}
}

// IsInWeek reports whether date falls in the week containing ref.
func (ww WeekWindow) IsInWeek(date, ref Date) bool {
	return ww.Range(ref).Contains(date)
}

// ParseWeekday accepts English weekday names ("monday", "Mon") or their
// numeric time.Weekday value ("0" for Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] || s == fmt.Sprint(int(d)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", s)
}

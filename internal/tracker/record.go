package tracker

// TimeRecord is one tracked activity on one day. DurationMinutes is derived
// from StartTime and EndTime and is never edited directly.
type TimeRecord struct {
	ID              string    `json:"id"`
	Activity        string    `json:"activity"`
	Date            Date      `json:"date"`
	StartTime       TimeOfDay `json:"startTime"`
	EndTime         TimeOfDay `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
}

// RecordPatch carries the fields an update replaces. Nil fields keep their
// current value.
type RecordPatch struct {
	Activity  *string    `json:"activity,omitempty"`
	Date      *Date      `json:"date,omitempty"`
	StartTime *TimeOfDay `json:"startTime,omitempty"`
	EndTime   *TimeOfDay `json:"endTime,omitempty"`
}

func (p RecordPatch) apply(r TimeRecord) TimeRecord {
	if p.Activity != nil {
		r.Activity = *p.Activity
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.StartTime != nil {
		r.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		r.EndTime = *p.EndTime
	}
	return r
}

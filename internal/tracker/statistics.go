package tracker

// ActivityStats summarises one activity within a scope.
type ActivityStats struct {
	Activity       string  `json:"activity"`
	TotalMinutes   int     `json:"totalMinutes"`
	Count          int     `json:"count"`
	AverageMinutes float64 `json:"averageMinutes"`
	Percentage     float64 `json:"percentage"`
}

// TimeStatistics is a projection of a record snapshot. It is rebuilt on
// every call and never cached.
type TimeStatistics struct {
	TotalMinutes int                      `json:"totalMinutes"`
	ByActivity   map[string]ActivityStats `json:"byActivity"`
	// Activities lists the keys of ByActivity in first-occurrence order.
	Activities   []string `json:"activities"`
	TopActivity  string   `json:"topActivity,omitempty"`
	EarliestDate *Date    `json:"earliestDate,omitempty"`
	RecordCount  int      `json:"recordCount"`
}

// Scope selects the records an aggregation considers.
type Scope struct {
	week *WeekRange
}

// ScopeAll considers every record.
func ScopeAll() Scope {
	return Scope{}
}

// ScopeWeek considers only records dated inside w.
func ScopeWeek(w WeekRange) Scope {
	return Scope{week: &w}
}

// Week returns the window of a week scope.
func (s Scope) Week() (WeekRange, bool) {
	if s.week == nil {
		return WeekRange{}, false
	}
	return *s.week, true
}

func (s Scope) includes(r TimeRecord) bool {
	return s.week == nil || s.week.Contains(r.Date)
}

// Aggregate computes totals, per-activity breakdowns, the top activity and
// the earliest date over the records in scope. Ties for the top activity go
// to the one that appears first in records.
func Aggregate(records []TimeRecord, scope Scope) TimeStatistics {
	stats := TimeStatistics{
		ByActivity: make(map[string]ActivityStats),
		Activities: make([]string, 0),
	}

	for _, r := range records {
		if !scope.includes(r) {
			continue
		}

		stats.RecordCount++
		stats.TotalMinutes += r.DurationMinutes

		a, ok := stats.ByActivity[r.Activity]
		if !ok {
			a.Activity = r.Activity
			stats.Activities = append(stats.Activities, r.Activity)
		}
		a.TotalMinutes += r.DurationMinutes
		a.Count++
		stats.ByActivity[r.Activity] = a

		if stats.EarliestDate == nil || r.Date.Before(*stats.EarliestDate) {
			d := r.Date
			stats.EarliestDate = &d
		}
	}

	top := -1
	for _, name := range stats.Activities {
		a := stats.ByActivity[name]
		a.AverageMinutes = float64(a.TotalMinutes) / float64(a.Count)
		if stats.TotalMinutes > 0 {
			a.Percentage = float64(a.TotalMinutes) / float64(stats.TotalMinutes) * 100.0
		}
		stats.ByActivity[name] = a

		if a.TotalMinutes > top {
			top = a.TotalMinutes
			stats.TopActivity = name
		}
	}

	return stats
}

// DayTotal is the minutes recorded on one date.
type DayTotal struct {
	Date         Date `json:"date"`
	TotalMinutes int  `json:"totalMinutes"`
	Count        int  `json:"count"`
}

// DailyTotals returns one entry per day of week, in order, including days
// with no records.
func DailyTotals(records []TimeRecord, week WeekRange) []DayTotal {
	days := week.Days()
	totals := make([]DayTotal, len(days))
	for i, d := range days {
		totals[i].Date = d
	}

	for _, r := range records {
		if !week.Contains(r.Date) {
			continue
		}
		i := week.Start.DaysUntil(r.Date)
		totals[i].TotalMinutes += r.DurationMinutes
		totals[i].Count++
	}
	return totals
}

package main

import (
	"encoding/json"
	"net/http"
	"time"

	"timeTrackerService/internal/tracker"
)

func NewStatsHandler(t *tracker.Tracker) *StatsHandler {
	return &StatsHandler{tracker: t}
}

type StatsHandler struct {
	tracker *tracker.Tracker
}

// StatsResponse wraps an aggregation with the window it covers.
type StatsResponse struct {
	Scope      string             `json:"scope"`
	Week       *tracker.WeekRange `json:"week,omitempty"`
	TotalLabel string             `json:"totalLabel"`
	tracker.TimeStatistics
}

type DailyResponse struct {
	Week tracker.WeekRange `json:"week"`
	Days []DayResponse     `json:"days"`
}

type DayResponse struct {
	tracker.DayTotal
	Label string `json:"label"`
}

type DurationPreviewRequest struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type DurationPreviewResponse struct {
	DurationMinutes int    `json:"durationMinutes"`
	DurationLabel   string `json:"durationLabel"`
	DurationText    string `json:"durationText"`
	IsValid         bool   `json:"isValid"`
	Error           string `json:"error,omitempty"`
	Field           string `json:"field,omitempty"`
}

type TodayResponse struct {
	Date        tracker.Date      `json:"date"`
	DisplayName string            `json:"displayName"`
	ServerTime  string            `json:"serverTime"`
	Timezone    string            `json:"timezone"`
	Week        tracker.WeekRange `json:"week"`
}

// referenceDate reads ?date=, defaulting to today in the fixed timezone.
func (h *StatsHandler) referenceDate(w http.ResponseWriter, r *http.Request) (tracker.Date, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.tracker.Times().Today(), true
	}
	d, err := tracker.ParseDate(raw)
	if err != nil {
		writeFieldError(w, "date", err)
		return tracker.Date{}, false
	}
	return d, true
}

func (h *StatsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	if scope == "" {
		scope = "all"
	}

	resp := StatsResponse{Scope: scope}
	switch scope {
	case "all":
		resp.TimeStatistics = h.tracker.Statistics(tracker.ScopeAll())
	case "week":
		ref, ok := h.referenceDate(w, r)
		if !ok {
			return
		}
		week, stats := h.tracker.WeekStatistics(ref)
		resp.Week = &week
		resp.TimeStatistics = stats
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "scope must be all or week")
		return
	}

	resp.TotalLabel = tracker.FormatMinutes(resp.TotalMinutes)
	writeJSON(w, http.StatusOK, resp)
}

func (h *StatsHandler) GetDailyTotals(w http.ResponseWriter, r *http.Request) {
	ref, ok := h.referenceDate(w, r)
	if !ok {
		return
	}

	week, totals := h.tracker.DailyTotals(ref)
	resp := DailyResponse{Week: week, Days: make([]DayResponse, len(totals))}
	for i, d := range totals {
		resp.Days[i] = DayResponse{DayTotal: d, Label: h.tracker.Times().DisplayName(d.Date)}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *StatsHandler) PreviewDuration(w http.ResponseWriter, r *http.Request) {
	var req DurationPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	start, err := tracker.ParseTimeOfDay(req.StartTime)
	if err != nil {
		writeJSON(w, http.StatusOK, DurationPreviewResponse{Error: err.Error(), Field: "startTime"})
		return
	}
	end, err := tracker.ParseTimeOfDay(req.EndTime)
	if err != nil {
		writeJSON(w, http.StatusOK, DurationPreviewResponse{Error: err.Error(), Field: "endTime"})
		return
	}

	res := h.tracker.PreviewDuration(start, end)
	resp := DurationPreviewResponse{
		DurationMinutes: res.Minutes,
		DurationLabel:   tracker.FormatMinutes(res.Minutes),
		DurationText:    tracker.FormatMinutesLong(res.Minutes),
		IsValid:         res.Valid,
	}
	if res.Err != nil {
		resp.Error = res.Err.Reason
		resp.Field = res.Err.Field
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *StatsHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	times := h.tracker.Times()
	today := times.Today()
	writeJSON(w, http.StatusOK, TodayResponse{
		Date:        today,
		DisplayName: times.DisplayName(today),
		ServerTime:  times.Now().Format(time.RFC3339),
		Timezone:    times.Location().String(),
		Week:        h.tracker.Week().Range(today),
	})
}

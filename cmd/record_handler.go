package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timeTrackerService/internal/observability"
	"timeTrackerService/internal/tracker"
)

func NewRecordHandler(t *tracker.Tracker) *RecordHandler {
	return &RecordHandler{tracker: t}
}

type RecordHandler struct {
	tracker *tracker.Tracker
}

// RecordRequest is the body of POST /records. Date defaults to today.
type RecordRequest struct {
	Activity  string `json:"activity"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// RecordPatchRequest is the body of PATCH /records/{id}.
type RecordPatchRequest struct {
	Activity  *string `json:"activity"`
	Date      *string `json:"date"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

// RecordResponse adds display labels to a stored record.
type RecordResponse struct {
	tracker.TimeRecord
	DayLabel      string `json:"dayLabel"`
	DurationLabel string `json:"durationLabel"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

func (h *RecordHandler) toResponse(rec tracker.TimeRecord) RecordResponse {
	return RecordResponse{
		TimeRecord:    rec,
		DayLabel:      h.tracker.Times().DisplayName(rec.Date),
		DurationLabel: tracker.FormatMinutes(rec.DurationMinutes),
	}
}

func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records := h.tracker.Records()
	resp := make([]RecordResponse, len(records))
	for i, rec := range records {
		resp[i] = h.toResponse(rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.tracker.Record(chi.URLParam(r, "id"))
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(rec))
}

func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	date := h.tracker.Times().Today()
	if req.Date != "" {
		parsed, err := tracker.ParseDate(req.Date)
		if err != nil {
			writeFieldError(w, "date", err)
			return
		}
		date = parsed
	}
	start, err := tracker.ParseTimeOfDay(req.StartTime)
	if err != nil {
		writeFieldError(w, "startTime", err)
		return
	}
	end, err := tracker.ParseTimeOfDay(req.EndTime)
	if err != nil {
		writeFieldError(w, "endTime", err)
		return
	}

	rec, err := h.tracker.AddRecord(r.Context(), req.Activity, date, start, end)
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.toResponse(rec))
}

func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	patch := tracker.RecordPatch{Activity: req.Activity}
	if req.Date != nil {
		d, err := tracker.ParseDate(*req.Date)
		if err != nil {
			writeFieldError(w, "date", err)
			return
		}
		patch.Date = &d
	}
	if req.StartTime != nil {
		t, err := tracker.ParseTimeOfDay(*req.StartTime)
		if err != nil {
			writeFieldError(w, "startTime", err)
			return
		}
		patch.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := tracker.ParseTimeOfDay(*req.EndTime)
		if err != nil {
			writeFieldError(w, "endTime", err)
			return
		}
		patch.EndTime = &t
	}

	rec, err := h.tracker.UpdateRecord(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(rec))
}

func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.RemoveRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeTrackerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeTrackerError(w http.ResponseWriter, err error) {
	var ve *tracker.ValidationError
	switch {
	case errors.As(err, &ve):
		observability.RecordValidationFailure()
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Message: ve.Reason, Field: ve.Field})
	case errors.Is(err, tracker.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Printf("Unexpected tracker error: %v", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Internal server error")
	}
}

func writeFieldError(w http.ResponseWriter, field string, err error) {
	observability.RecordValidationFailure()
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_failed", Message: err.Error(), Field: field})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

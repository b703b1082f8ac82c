package tracker

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ReasonEmptyActivity is reported when a record has a blank label.
const ReasonEmptyActivity = "activity must not be empty"

// RecordStore holds the ordered collection of time records. Every mutation
// runs as a single critical section, so concurrent callers never lose a
// write.
type RecordStore struct {
	mu      sync.RWMutex
	records []TimeRecord
	calc    DurationCalculator
	newID   func() string
}

// StoreOption configures a RecordStore.
type StoreOption func(*RecordStore)

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(gen func() string) StoreOption {
	return func(s *RecordStore) {
		s.newID = gen
	}
}

// NewRecordStore creates an empty store validating durations with calc.
func NewRecordStore(calc DurationCalculator, opts ...StoreOption) *RecordStore {
	s := &RecordStore{
		records: make([]TimeRecord, 0),
		calc:    calc,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculator returns the duration policy the store validates with.
func (s *RecordStore) Calculator() DurationCalculator {
	return s.calc
}

// validate normalises r and recomputes its duration.
func (s *RecordStore) validate(r TimeRecord) (TimeRecord, error) {
	r.Activity = strings.TrimSpace(r.Activity)
	if r.Activity == "" {
		return TimeRecord{}, newValidationError("activity", ReasonEmptyActivity)
	}
	if r.Date.IsZero() {
		return TimeRecord{}, newValidationError("date", "date is required")
	}

	res := s.calc.Compute(r.StartTime, r.EndTime)
	if !res.Valid {
		return TimeRecord{}, res.Err
	}
	r.DurationMinutes = res.Minutes
	return r, nil
}

// indexOf must be called with s.mu held.
func (s *RecordStore) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Add validates and appends a new record, returning it with its id and
// duration assigned.
func (s *RecordStore) Add(activity string, date Date, start, end TimeOfDay) (TimeRecord, error) {
	rec, err := s.validate(TimeRecord{
		Activity:  activity,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		return TimeRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.newID()
	s.records = append(s.records, rec)
	return rec, nil
}

// Update merges patch into the record with the given id, re-validates it and
// replaces it in place.
func (s *RecordStore) Update(id string, patch RecordPatch) (TimeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return TimeRecord{}, notFound(id)
	}

	rec, err := s.validate(patch.apply(s.records[i]))
	if err != nil {
		return TimeRecord{}, err
	}
	s.records[i] = rec
	return rec, nil
}

// Remove deletes the record with the given id.
func (s *RecordStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}

	next := make([]TimeRecord, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)
	s.records = next
	return nil
}

// Get returns the record with the given id.
func (s *RecordStore) Get(id string) (TimeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return TimeRecord{}, notFound(id)
	}
	return s.records[i], nil
}

// All returns a copy of the records in insertion order.
func (s *RecordStore) All() []TimeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TimeRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Seed replaces the store's contents with records loaded from persistence.
// Each record is re-validated and its duration recomputed; records without
// an id get a fresh one. The store is left untouched if any record is
// rejected or an id repeats.
func (s *RecordStore) Seed(records []TimeRecord) error {
	seeded := make([]TimeRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for i, r := range records {
		rec, err := s.validate(r)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if rec.ID == "" {
			rec.ID = s.newID()
		}
		if _, dup := seen[rec.ID]; dup {
			return fmt.Errorf("record %d: duplicate id %s", i, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		seeded = append(seeded, rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = seeded
	return nil
}

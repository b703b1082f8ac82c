package tracker

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Operation names passed to the change callback.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
)

// Config holds the tracker's collaborators and policies.
type Config struct {
	Clock     Clock
	Location  *time.Location
	Locale    Locale
	WeekStart time.Weekday
	AllowZero bool
}

// DefaultConfig pins dates to DefaultTimezone, starts weeks on Monday and
// rejects zero-length records. It falls back to UTC if the zone database is
// unavailable.
func DefaultConfig() Config {
	loc, err := LoadTimezone(DefaultTimezone)
	if err != nil {
		log.Printf("Warning: %v, using UTC", err)
		loc = time.UTC
	}
	return Config{
		Clock:     SystemClock{},
		Location:  loc,
		Locale:    EnglishLocale,
		WeekStart: time.Monday,
	}
}

// Tracker owns a RecordStore and writes the full collection to its
// persistence after every successful mutation. Mutations and their saves
// are serialised so snapshots reach persistence in the order they were made.
type Tracker struct {
	mu sync.Mutex

	store       *RecordStore
	times       *TimeUtils
	week        WeekWindow
	persistence Persistence

	// Callbacks
	onChange       func(op string, record TimeRecord)
	onPersistError func(err error)
}

// NewTracker creates a tracker. A nil persistence keeps records in memory
// only.
func NewTracker(cfg Config, persistence Persistence, opts ...StoreOption) *Tracker {
	if persistence == nil {
		persistence = NewMemoryPersistence()
	}
	return &Tracker{
		store:       NewRecordStore(DurationCalculator{AllowZero: cfg.AllowZero}, opts...),
		times:       NewTimeUtils(cfg.Clock, cfg.Location, cfg.Locale),
		week:        NewWeekWindow(cfg.WeekStart),
		persistence: persistence,
	}
}

// SetCallbacks sets the functions notified after successful mutations and
// after failed saves. Either may be nil.
func (t *Tracker) SetCallbacks(onChange func(op string, record TimeRecord), onPersistError func(err error)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.onChange = onChange
	t.onPersistError = onPersistError
}

// Resume seeds the store from persistence. On failure the store stays
// empty and the error is returned so the caller can decide whether to run
// without the stored history.
func (t *Tracker) Resume(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	records, err := t.persistence.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	if err := t.store.Seed(records); err != nil {
		return fmt.Errorf("seed records: %w", err)
	}

	log.Printf("🔄 Resumed %d time records", len(records))
	return nil
}

// AddRecord validates and stores a new record, then persists the collection.
func (t *Tracker) AddRecord(ctx context.Context, activity string, date Date, start, end TimeOfDay) (TimeRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, err := t.store.Add(activity, date, start, end)
	if err != nil {
		return TimeRecord{}, err
	}
	t.afterMutation(ctx, OpAdd, rec)
	return rec, nil
}

// UpdateRecord applies patch to the record with the given id, then persists
// the collection.
func (t *Tracker) UpdateRecord(ctx context.Context, id string, patch RecordPatch) (TimeRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, err := t.store.Update(id, patch)
	if err != nil {
		return TimeRecord{}, err
	}
	t.afterMutation(ctx, OpUpdate, rec)
	return rec, nil
}

// RemoveRecord deletes the record with the given id, then persists the
// collection.
func (t *Tracker) RemoveRecord(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, err := t.store.Get(id)
	if err != nil {
		return err
	}
	if err := t.store.Remove(id); err != nil {
		return err
	}
	t.afterMutation(ctx, OpRemove, rec)
	return nil
}

// afterMutation must be called with t.mu held. The in-memory store stays
// authoritative when the save fails.
func (t *Tracker) afterMutation(ctx context.Context, op string, rec TimeRecord) {
	if err := t.persistence.Save(ctx, t.store.All()); err != nil {
		log.Printf("Failed to persist time records after %s of %s: %v", op, rec.ID, err)
		if t.onPersistError != nil {
			t.onPersistError(err)
		}
	}
	if t.onChange != nil {
		t.onChange(op, rec)
	}
}

// Record returns the record with the given id.
func (t *Tracker) Record(id string) (TimeRecord, error) {
	return t.store.Get(id)
}

// Records returns a snapshot of all records in insertion order.
func (t *Tracker) Records() []TimeRecord {
	return t.store.All()
}

// PreviewDuration runs the store's duration policy without storing anything.
func (t *Tracker) PreviewDuration(start, end TimeOfDay) DurationResult {
	return t.store.Calculator().Compute(start, end)
}

// Statistics aggregates the current snapshot over scope.
func (t *Tracker) Statistics(scope Scope) TimeStatistics {
	return Aggregate(t.store.All(), scope)
}

// WeekStatistics aggregates the week containing ref.
func (t *Tracker) WeekStatistics(ref Date) (WeekRange, TimeStatistics) {
	week := t.week.Range(ref)
	return week, Aggregate(t.store.All(), ScopeWeek(week))
}

// DailyTotals returns per-day minutes for the week containing ref.
func (t *Tracker) DailyTotals(ref Date) (WeekRange, []DayTotal) {
	week := t.week.Range(ref)
	return week, DailyTotals(t.store.All(), week)
}

// Times returns the tracker's fixed-timezone helpers.
func (t *Tracker) Times() *TimeUtils {
	return t.times
}

// Week returns the tracker's week window.
func (t *Tracker) Week() WeekWindow {
	return t.week
}

// Close closes the persistence.
func (t *Tracker) Close() error {
	return t.persistence.Close()
}

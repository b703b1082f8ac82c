package tracker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const (
	dbTimeout      = time.Second * 3
	DefaultPGTable = "time_records"
)

// PostgresPersistence stores one row per record, keeping the collection's
// order in a position column.
type PostgresPersistence struct {
	Conn  *pgxpool.Pool
	table string
}

// NewPostgresPersistence wraps conn and stores records in table.
func NewPostgresPersistence(conn *pgxpool.Pool, table string) *PostgresPersistence {
	if table == "" {
		table = DefaultPGTable
	}
	return &PostgresPersistence{Conn: conn, table: table}
}

func (p *PostgresPersistence) quotedTable() string {
	return pq.QuoteIdentifier(p.table)
}

// EnsureSchema creates the records table if it does not exist.
func (p *PostgresPersistence) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id               TEXT PRIMARY KEY,
		position         INTEGER NOT NULL,
		activity         TEXT NOT NULL,
		record_date      DATE NOT NULL,
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL
	)`, p.quotedTable())

	if _, err := p.Conn.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create %s table: %w", p.table, err)
	}
	return nil
}

// Load reads all rows in position order.
func (p *PostgresPersistence) Load(ctx context.Context) ([]TimeRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT id, activity, record_date, start_time, end_time, duration_minutes
		FROM %s ORDER BY position`, p.quotedTable())

	rows, err := p.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := make([]TimeRecord, 0)
	for rows.Next() {
		var (
			r          TimeRecord
			date       time.Time
			start, end string
		)
		if err := rows.Scan(&r.ID, &r.Activity, &date, &start, &end, &r.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Date = DateIn(date, time.UTC)
		if r.StartTime, err = ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		if r.EndTime, err = ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("record %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Save replaces every row inside one transaction. Any failure rolls the
// transaction back and leaves the previous rows in place.
func (p *PostgresPersistence) Save(ctx context.Context, records []TimeRecord) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := p.Conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after Commit is a no-op.
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", p.quotedTable())); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.ID, i, r.Activity, r.Date.Midnight(time.UTC), r.StartTime.String(), r.EndTime.String(), r.DurationMinutes}
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{p.table},
		[]string{"id", "position", "activity", "record_date", "start_time", "end_time", "duration_minutes"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}

	log.Printf("Saved %d time records to Postgres table %s", len(records), p.table)
	return nil
}

// Close releases the pool.
func (p *PostgresPersistence) Close() error {
	p.Conn.Close()
	return nil
}

package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/lyrics-serve/internal/shared"
)

// Entry describes one served request.
type Entry struct {
	RequestID string
	Method    string
	Path      string
	Status    int
	Bytes     int64
	Duration  time.Duration
	ServedAt  time.Time
}

// PathCount pairs a request path with how often it was requested.
type PathCount struct {
	Path  string
	Count int
}

// Summary aggregates the journal.
type Summary struct {
	Requests int
	Errors   int
	Bytes    int64
	TopPaths []PathCount
}

// Journal stores [Entry] rows in SQLite.
type Journal struct {
	db     *sql.DB
	closed bool
	mu     sync.Mutex
}

// Open creates a journal backed by a fresh in-memory database with the schema applied.
func Open() (*Journal, error) {
	db, err := shared.NewDatabase(shared.MemoryDSN)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare journal: %w", err)
	}

	return New(db), nil
}

// New wraps an already migrated database.
func New(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// Record inserts e. A zero ServedAt is replaced with the current time.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.ServedAt.IsZero() {
		e.ServedAt = time.Now()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO requests (request_id, method, path, status, bytes, duration_us, served_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RequestID, e.Method, e.Path, e.Status, e.Bytes, e.Duration.Microseconds(), e.ServedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	return nil
}

// Entries returns every recorded request in the order it was recorded.
func (j *Journal) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT request_id, method, path, status, bytes, duration_us, served_at
		FROM requests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationUS, servedAt int64
		if err := rows.Scan(&e.RequestID, &e.Method, &e.Path, &e.Status, &e.Bytes, &durationUS, &servedAt); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		e.Duration = time.Duration(durationUS) * time.Microsecond
		e.ServedAt = time.UnixMilli(servedAt)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Summary totals the journal and lists up to top of the most requested paths.
//
// Responses with a status of 400 or above count as errors.
func (j *Journal) Summary(ctx context.Context, top int) (*Summary, error) {
	s := &Summary{}
	err := j.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status >= 400 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(bytes), 0)
		FROM requests`).Scan(&s.Requests, &s.Errors, &s.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize requests: %w", err)
	}

	if top <= 0 {
		return s, nil
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS hits
		FROM requests
		GROUP BY path
		ORDER BY hits DESC, path ASC
		LIMIT ?`, top)
	if err != nil {
		return nil, fmt.Errorf("failed to query top paths: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan path count: %w", err)
		}
		s.TopPaths = append(s.TopPaths, pc)
	}

	return s, rows.Err()
}

// Close releases the database; the recorded entries are gone afterwards.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// EventKind distinguishes journal rows.
type EventKind string

const (
	// EventModeSwitch records a change of control mode.
	EventModeSwitch EventKind = "mode_switch"
	// EventCommand records a media command dispatch attempt.
	EventCommand EventKind = "command"
)

// Event is one journal row.
type Event struct {
	ID        string
	SessionID string
	Kind      EventKind
	Mode      string
	Command   string
	OK        bool
	Error     string
	CreatedAt time.Time
}

// Session groups the events of one run.
type Session struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
}

// EventRepository appends to and reads from the events table.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// StartSession inserts a new session row starting at now.
func (s *Store) StartSession(now time.Time) (*Session, error) {
	sess := &Session{
		ID:        uuid.New().String(),
		StartedAt: now,
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		sess.ID, now.UnixNano(),
	)
	if err != nil {
		return nil, err
	}

	return sess, nil
}

// EndSession stamps the session's end time.
func (s *Store) EndSession(id string, now time.Time) error {
	res, err := s.db.Exec(
		`UPDATE sessions SET ended_at = ? WHERE id = ?`,
		now.UnixNano(), id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// Record inserts e, assigning an ID and timestamp when unset.
func (r *EventRepository) Record(e *Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	var session any
	if e.SessionID != "" {
		session = e.SessionID
	}

	_, err := r.db.Exec(
		`INSERT INTO events (id, session_id, kind, mode, command, ok, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, session, string(e.Kind), e.Mode, e.Command, e.OK, e.Error, e.CreatedAt.UnixNano(),
	)
	return err
}

// Recent returns up to n events, newest first.
func (r *EventRepository) Recent(n int) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT id, COALESCE(session_id, ''), kind, mode, command, ok, error, created_at
		 FROM events ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e       Event
			kind    string
			created int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.Mode, &e.Command, &e.OK, &e.Error, &created); err != nil {
			return nil, err
		}
		e.Kind = EventKind(kind)
		e.CreatedAt = time.Unix(0, created)
		events = append(events, e)
	}

	return events, rows.Err()
}

// CountByCommand returns how many times each command succeeded.
func (r *EventRepository) CountByCommand() (map[string]int, error) {
	rows, err := r.db.Query(
		`SELECT command, COUNT(*) FROM events
		 WHERE kind = ? AND ok = 1
		 GROUP BY command`,
		string(EventCommand),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			cmd string
			n   int
		)
		if err := rows.Scan(&cmd, &n); err != nil {
			return nil, err
		}
		counts[cmd] = n
	}

	return counts, rows.Err()
}

// LastCommand returns the newest successful command event, or ErrNotFound
// when none was journaled.
func (r *EventRepository) LastCommand() (*Event, error) {
	var id string
	err := r.db.QueryRow(
		`SELECT id FROM events
		 WHERE kind = ? AND ok = 1
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		string(EventCommand),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(id)
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(id string) (*Event, error) {
	var (
		e       Event
		kind    string
		created int64
	)

	err := r.db.QueryRow(
		`SELECT id, COALESCE(session_id, ''), kind, mode, command, ok, error, created_at
		 FROM events WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.SessionID, &kind, &e.Mode, &e.Command, &e.OK, &e.Error, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	e.Kind = EventKind(kind)
	e.CreatedAt = time.Unix(0, created)
	return &e, nil
}

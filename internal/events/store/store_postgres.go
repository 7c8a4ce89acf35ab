package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"inspekt/internal/events"
	"inspekt/pkg/domain"
	"inspekt/pkg/platform/sentinel"
)

// PostgresStore persists events in PostgreSQL. Merge idempotence maps onto
// ON CONFLICT DO NOTHING and Complete onto a single transaction, so both
// guarantees hold across process restarts.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Postgres-backed event store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is the DDL for the events table. Applied by deployment tooling;
// exported so integration tests can create the table themselves.
const Schema = `
CREATE TABLE IF NOT EXISTS events (
	id             TEXT PRIMARY KEY,
	scheduled_date DATE NOT NULL,
	due_date       DATE NOT NULL,
	property_id    TEXT NOT NULL,
	kind           TEXT NOT NULL,
	assignee_id    TEXT NOT NULL,
	vendor_id      TEXT,
	status         TEXT NOT NULL,
	parent_id      TEXT
);
CREATE INDEX IF NOT EXISTS events_due_date_idx ON events (due_date);
CREATE INDEX IF NOT EXISTS events_property_idx ON events (property_id);
`

const selectColumns = `id, to_char(scheduled_date, 'YYYY-MM-DD'), to_char(due_date, 'YYYY-MM-DD'), property_id, kind, assignee_id, COALESCE(vendor_id, ''), status, COALESCE(parent_id, '')`

func (s *PostgresStore) MergeNew(ctx context.Context, evs []*events.Event) (int, error) {
	if len(evs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin merge tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `
		INSERT INTO events (id, scheduled_date, due_date, property_id, kind, assignee_id, vendor_id, status, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, NULLIF($9, ''))
		ON CONFLICT (id) DO NOTHING
	`
	added := 0
	for _, e := range evs {
		res, err := tx.ExecContext(ctx, insert,
			e.ID.String(),
			e.ScheduledDate.Time(),
			e.DueDate.Time(),
			e.PropertyID.String(),
			e.Kind.String(),
			e.AssigneeID.String(),
			e.VendorID.String(),
			string(e.Status),
			e.ParentID.String(),
		)
		if err != nil {
			return 0, fmt.Errorf("merge event %s: %w", e.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("merge event %s: %w", e.ID, err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit merge tx: %w", err)
	}
	return added, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.EventID) (*events.Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM events WHERE id = $1`, id.String())
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find event %s: %w", id, err)
	}
	return e, nil
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]*events.Event, error) {
	query := `SELECT ` + selectColumns + ` FROM events`
	var conds []string
	var args []any

	if !f.Property.IsNil() && f.Property.String() != domain.ScopeAll {
		args = append(args, f.Property.String())
		conds = append(conds, fmt.Sprintf("property_id = $%d", len(args)))
	}
	if len(f.Kinds) > 0 {
		placeholders := make([]string, 0, len(f.Kinds))
		for _, k := range f.Kinds {
			args = append(args, k.String())
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, "kind IN ("+strings.Join(placeholders, ", ")+")")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY scheduled_date, id"

	return s.queryEvents(ctx, query, args...)
}

func (s *PostgresStore) Overdue(ctx context.Context, asOf domain.Day) ([]*events.Event, error) {
	const query = `
		SELECT ` + selectColumns + `
		FROM events
		WHERE due_date < $1 AND status <> $2
		ORDER BY scheduled_date, id
	`
	return s.queryEvents(ctx, query, asOf.Time(), string(events.StatusCompleted))
}

func (s *PostgresStore) SetStatus(ctx context.Context, id domain.EventID, status events.Status) error {
	res, err := s.db.ExecContext(ctx, `UPDATE events SET status = $1 WHERE id = $2`, string(status), id.String())
	if err != nil {
		return fmt.Errorf("set status %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set status %s: %w", id, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Complete(ctx context.Context, parentID domain.EventID, correctives []*events.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin complete tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var status string
	err = tx.QueryRowContext(ctx, `SELECT status FROM events WHERE id = $1 FOR UPDATE`, parentID.String()).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lock parent %s: %w", parentID, err)
	}
	if events.Status(status) == events.StatusCompleted {
		return sentinel.ErrInvalidState
	}

	if _, err := tx.ExecContext(ctx, `UPDATE events SET status = $1 WHERE id = $2`,
		string(events.StatusCompleted), parentID.String()); err != nil {
		return fmt.Errorf("complete parent %s: %w", parentID, err)
	}

	const insert = `
		INSERT INTO events (id, scheduled_date, due_date, property_id, kind, assignee_id, vendor_id, status, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
	`
	for _, c := range correctives {
		if _, err := tx.ExecContext(ctx, insert,
			c.ID.String(),
			c.ScheduledDate.Time(),
			c.DueDate.Time(),
			c.PropertyID.String(),
			c.Kind.String(),
			c.AssigneeID.String(),
			c.VendorID.String(),
			string(c.Status),
			c.ParentID.String(),
		); err != nil {
			return fmt.Errorf("insert corrective %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit complete tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryEvents(ctx context.Context, query string, args ...any) ([]*events.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []*events.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*events.Event, error) {
	var e events.Event
	var idRaw, scheduledRaw, dueRaw, propRaw, kindRaw, assigneeRaw, vendorRaw, statusRaw, parentRaw string
	if err := row.Scan(&idRaw, &scheduledRaw, &dueRaw, &propRaw, &kindRaw, &assigneeRaw, &vendorRaw, &statusRaw, &parentRaw); err != nil {
		return nil, err
	}

	scheduled, err := domain.ParseDay(scheduledRaw)
	if err != nil {
		return nil, err
	}
	due, err := domain.ParseDay(dueRaw)
	if err != nil {
		return nil, err
	}

	e.ID = domain.EventID(idRaw)
	e.ScheduledDate = scheduled
	e.DueDate = due
	e.PropertyID = domain.PropertyID(propRaw)
	e.Kind = domain.InspectionKind(kindRaw)
	e.AssigneeID = domain.StaffID(assigneeRaw)
	e.VendorID = domain.VendorID(vendorRaw)
	e.Status = events.Status(statusRaw)
	e.ParentID = domain.EventID(parentRaw)
	return &e, nil
}

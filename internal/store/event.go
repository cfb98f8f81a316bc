package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"clinic-consent-api/internal/model"
)

func (s *Store) InsertEvent(ctx context.Context, e *model.AuditEvent) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO event_log (event_time, description) VALUES ($1,$2) RETURNING id`,
		e.Timestamp, e.Description,
	).Scan(&e.ID)
}

// EventsSince is for operators and tests; the application only writes.
func (s *Store) EventsSince(ctx context.Context, since time.Time) ([]model.AuditEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, event_time, description FROM event_log WHERE event_time >= $1 ORDER BY id`, since)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.AuditEvent, error) {
		var e model.AuditEvent
		err := row.Scan(&e.ID, &e.Timestamp, &e.Description)
		return e, err
	})
}

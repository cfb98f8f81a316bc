package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"clinic-consent-api/internal/model"
)

func (s *Store) InsertAuthorization(ctx context.Context, a *model.AuthorizationRequest) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO authorizations (id, target_id, requester_id, code, created_at) VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.TargetID, a.RequesterID, a.Code, a.CreatedAt,
	)
	return mapErr(err)
}

func (s *Store) PendingAuthorizations(ctx context.Context, targetID string) ([]model.AuthorizationRequest, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, target_id, requester_id, code, created_at
		 FROM authorizations WHERE target_id = $1 ORDER BY seq`, targetID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.AuthorizationRequest, error) {
		var a model.AuthorizationRequest
		err := row.Scan(&a.ID, &a.TargetID, &a.RequesterID, &a.Code, &a.CreatedAt)
		return a, err
	})
}

func (s *Store) DeleteAuthorization(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM authorizations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// PurgeAuthorizations drops every pending row. Live requests are held in
// process memory, so rows left by a previous run can never be confirmed.
func (s *Store) PurgeAuthorizations(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM authorizations`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

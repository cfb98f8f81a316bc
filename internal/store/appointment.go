package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"clinic-consent-api/internal/model"
)

func (s *Store) HasBookingOn(ctx context.Context, patientID string, date time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM appointments WHERE patient_id = $1 AND app_date = $2)`,
		patientID, date,
	).Scan(&exists)
	return exists, err
}

// CreateAppointment reports a second booking for the same patient and date
// as model.ErrConflict.
func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, created_at, app_date, physician_id, patient_id)
		 VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.CreatedAt, a.Date, a.PhysicianID, a.PatientID,
	)
	return mapErr(err)
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, created_at, app_date, physician_id, patient_id
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.CreatedAt, &a.Date, &a.PhysicianID, &a.PatientID)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *Store) PatientAppointmentsFrom(ctx context.Context, patientID string, from time.Time) ([]model.AppointmentView, error) {
	return s.listViews(ctx,
		`SELECT a.id, a.created_at, a.app_date, a.physician_id, a.patient_id,
		        u.first_name || ' ' || u.last_name
		 FROM appointments a JOIN users u ON u.id = a.physician_id
		 WHERE a.patient_id = $1 AND a.app_date >= $2
		 ORDER BY a.seq`, patientID, from)
}

func (s *Store) PhysicianAppointmentsOn(ctx context.Context, physicianID string, day time.Time) ([]model.AppointmentView, error) {
	return s.listViews(ctx,
		`SELECT a.id, a.created_at, a.app_date, a.physician_id, a.patient_id,
		        u.first_name || ' ' || u.last_name
		 FROM appointments a JOIN users u ON u.id = a.patient_id
		 WHERE a.physician_id = $1 AND a.app_date = $2
		 ORDER BY a.seq`, physicianID, day)
}

func (s *Store) listViews(ctx context.Context, q string, args ...any) ([]model.AppointmentView, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.AppointmentView, error) {
		var v model.AppointmentView
		err := row.Scan(&v.ID, &v.CreatedAt, &v.Date, &v.PhysicianID, &v.PatientID, &v.CounterpartName)
		return v, err
	})
}

package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"clinic-consent-api/internal/model"
)

func (s *Store) ConsultedAppointmentIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT appointment_id FROM consultations WHERE appointment_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

func (s *Store) CreateConsultation(ctx context.Context, c *model.Consultation) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO consultations (id, created_at, appointment_id, patient_id, physician_id, notes, prescription)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.CreatedAt, c.AppointmentID, c.PatientID, c.PhysicianID, c.Notes, c.Prescription,
	)
	return mapErr(err)
}

func (s *Store) PatientConsultations(ctx context.Context, patientID string) ([]model.Consultation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, appointment_id, patient_id, physician_id, notes, prescription
		 FROM consultations WHERE patient_id = $1 ORDER BY seq`, patientID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Consultation, error) {
		var c model.Consultation
		err := row.Scan(&c.ID, &c.CreatedAt, &c.AppointmentID, &c.PatientID, &c.PhysicianID, &c.Notes, &c.Prescription)
		return c, err
	})
}

package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"clinic-consent-api/internal/model"
)

const accountColumns = `
	u.id, u.login, u.password_hash, u.first_name, u.last_name, u.role,
	COALESCE(a.perm_level, 0),
	COALESCE(p.second_contact_no, ''), COALESCE(p.second_contact_name, ''),
	COALESCE(d.practice_no, ''), COALESCE(d.specialization, '')
	FROM users u
	LEFT JOIN admins a ON a.user_id = u.id
	LEFT JOIN patients p ON p.user_id = u.id
	LEFT JOIN physicians d ON d.user_id = u.id`

func (s *Store) CreateAccount(ctx context.Context, acc model.Account) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	u := acc.Identity()
	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, login, password_hash, first_name, last_name, role)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Login, u.PasswordHash, u.FirstName, u.LastName, string(acc.Role()),
	)
	if err != nil {
		return mapErr(err)
	}

	switch v := acc.(type) {
	case *model.Admin:
		_, err = tx.Exec(ctx, `INSERT INTO admins (user_id, perm_level) VALUES ($1,$2)`, u.ID, v.PermLevel)
	case *model.Patient:
		_, err = tx.Exec(ctx,
			`INSERT INTO patients (user_id, second_contact_no, second_contact_name) VALUES ($1,$2,$3)`,
			u.ID, v.SecondContactNo, v.SecondContactName)
	case *model.Physician:
		_, err = tx.Exec(ctx,
			`INSERT INTO physicians (user_id, practice_no, specialization) VALUES ($1,$2,$3)`,
			u.ID, v.PracticeNo, v.Specialization)
	}
	if err != nil {
		return mapErr(err)
	}
	return tx.Commit(ctx)
}

func (s *Store) AccountByLogin(ctx context.Context, login string) (model.Account, error) {
	return scanAccount(s.pool.QueryRow(ctx, `SELECT `+accountColumns+` WHERE u.login = $1`, login))
}

func (s *Store) AccountByID(ctx context.Context, id string) (model.Account, error) {
	return scanAccount(s.pool.QueryRow(ctx, `SELECT `+accountColumns+` WHERE u.id = $1`, id))
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var (
		u                    model.User
		role                 string
		perm                 int
		contactNo, contactNm string
		practice, spec       string
	)
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.FirstName, &u.LastName, &role,
		&perm, &contactNo, &contactNm, &practice, &spec)
	if err != nil {
		return nil, mapErr(err)
	}
	switch model.Role(role) {
	case model.RoleAdmin:
		return &model.Admin{User: u, PermLevel: perm}, nil
	case model.RolePatient:
		return &model.Patient{User: u, SecondContactNo: contactNo, SecondContactName: contactNm}, nil
	case model.RolePhysician:
		return &model.Physician{User: u, PracticeNo: practice, Specialization: spec}, nil
	}
	return nil, fmt.Errorf("user %s has unknown role %q", u.ID, role)
}

// UpdateAccount rewrites names, role details and, when set, the password
// hash. Login and role are fixed.
func (s *Store) UpdateAccount(ctx context.Context, acc model.Account) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	u := acc.Identity()
	var role string
	if err := tx.QueryRow(ctx, `SELECT role FROM users WHERE id = $1 FOR UPDATE`, u.ID).Scan(&role); err != nil {
		return mapErr(err)
	}
	if model.Role(role) != acc.Role() {
		return model.ErrForbidden
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET first_name=$1, last_name=$2,
		        password_hash = COALESCE(NULLIF($3, ''), password_hash)
		 WHERE id=$4`,
		u.FirstName, u.LastName, u.PasswordHash, u.ID)
	if err != nil {
		return err
	}

	switch v := acc.(type) {
	case *model.Admin:
		_, err = tx.Exec(ctx, `UPDATE admins SET perm_level=$1 WHERE user_id=$2`, v.PermLevel, u.ID)
	case *model.Patient:
		_, err = tx.Exec(ctx,
			`UPDATE patients SET second_contact_no=$1, second_contact_name=$2 WHERE user_id=$3`,
			v.SecondContactNo, v.SecondContactName, u.ID)
	case *model.Physician:
		_, err = tx.Exec(ctx,
			`UPDATE physicians SET practice_no=$1, specialization=$2 WHERE user_id=$3`,
			v.PracticeNo, v.Specialization, u.ID)
	}
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) PhysiciansBySpecialization(ctx context.Context, specialization string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT d.user_id FROM physicians d JOIN users u ON u.id = d.user_id
		 WHERE d.specialization = $1 ORDER BY u.seq`, specialization)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *Store) Specializations(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT specialization FROM physicians ORDER BY specialization`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Package memory is an in-process store with the same contract as the
// PostgreSQL store, for single-process local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"clinic-consent-api/internal/model"
)

type Store struct {
	mu            sync.Mutex
	accounts      []model.Account
	appointments  []model.Appointment
	consultations []model.Consultation
	auths         []model.AuthorizationRequest
	events        []model.AuditEvent
	nextEvent     int64
}

func New() *Store {
	return &Store{}
}

// accounts

func (s *Store) CreateAccount(_ context.Context, a model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.accounts {
		if x.Identity().Login == a.Identity().Login || x.Identity().ID == a.Identity().ID {
			return model.ErrConflict
		}
	}
	s.accounts = append(s.accounts, clone(a))
	return nil
}

func (s *Store) AccountByLogin(_ context.Context, login string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Identity().Login == login {
			return clone(a), nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) AccountByID(_ context.Context, id string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.accountIndex(id); i >= 0 {
		return clone(s.accounts[i]), nil
	}
	return nil, model.ErrNotFound
}

// UpdateAccount replaces the stored row; the role of an account never changes.
func (s *Store) UpdateAccount(_ context.Context, a model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.accountIndex(a.Identity().ID)
	if i < 0 {
		return model.ErrNotFound
	}
	if s.accounts[i].Role() != a.Role() {
		return model.ErrForbidden
	}
	next := clone(a)
	if next.Identity().PasswordHash == "" {
		next.Identity().PasswordHash = s.accounts[i].Identity().PasswordHash
	}
	next.Identity().Login = s.accounts[i].Identity().Login
	s.accounts[i] = next
	return nil
}

func (s *Store) accountIndex(id string) int {
	for i, a := range s.accounts {
		if a.Identity().ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nameOf(id string) string {
	if i := s.accountIndex(id); i >= 0 {
		return s.accounts[i].Identity().FullName()
	}
	return ""
}

func clone(a model.Account) model.Account {
	switch v := a.(type) {
	case *model.Admin:
		c := *v
		return &c
	case *model.Patient:
		c := *v
		return &c
	case *model.Physician:
		c := *v
		return &c
	}
	return a
}

// physicians

func (s *Store) PhysiciansBySpecialization(_ context.Context, specialization string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, a := range s.accounts {
		if p, ok := a.(*model.Physician); ok && p.Specialization == specialization {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (s *Store) Specializations(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, a := range s.accounts {
		if p, ok := a.(*model.Physician); ok && !seen[p.Specialization] {
			seen[p.Specialization] = true
			out = append(out, p.Specialization)
		}
	}
	sort.Strings(out)
	return out, nil
}

// appointments

func (s *Store) HasBookingOn(_ context.Context, patientID string, date time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasBooking(patientID, date), nil
}

func (s *Store) hasBooking(patientID string, date time.Time) bool {
	for _, a := range s.appointments {
		if a.PatientID == patientID && a.Date.Equal(date) {
			return true
		}
	}
	return false
}

// CreateAppointment enforces one booking per patient per date, like the
// unique index in PostgreSQL.
func (s *Store) CreateAppointment(_ context.Context, a *model.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasBooking(a.PatientID, a.Date) {
		return model.ErrConflict
	}
	s.appointments = append(s.appointments, *a)
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id string) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			c := a
			return &c, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) DeleteAppointment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.appointments {
		if a.ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (s *Store) PatientAppointmentsFrom(_ context.Context, patientID string, from time.Time) ([]model.AppointmentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AppointmentView
	for _, a := range s.appointments {
		if a.PatientID == patientID && !a.Date.Before(from) {
			out = append(out, model.AppointmentView{Appointment: a, CounterpartName: s.nameOf(a.PhysicianID)})
		}
	}
	return out, nil
}

func (s *Store) PhysicianAppointmentsOn(_ context.Context, physicianID string, day time.Time) ([]model.AppointmentView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AppointmentView
	for _, a := range s.appointments {
		if a.PhysicianID == physicianID && a.Date.Equal(day) {
			out = append(out, model.AppointmentView{Appointment: a, CounterpartName: s.nameOf(a.PatientID)})
		}
	}
	return out, nil
}

// consultations

func (s *Store) ConsultedAppointmentIDs(_ context.Context, ids []string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := map[string]bool{}
	for _, c := range s.consultations {
		if want[c.AppointmentID] {
			out[c.AppointmentID] = true
		}
	}
	return out, nil
}

func (s *Store) CreateConsultation(_ context.Context, c *model.Consultation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, x := range s.consultations {
		if x.AppointmentID == c.AppointmentID {
			return model.ErrConflict
		}
	}
	s.consultations = append(s.consultations, *c)
	return nil
}

func (s *Store) PatientConsultations(_ context.Context, patientID string) ([]model.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Consultation
	for _, c := range s.consultations {
		if c.PatientID == patientID {
			out = append(out, c)
		}
	}
	return out, nil
}

// authorizations

func (s *Store) InsertAuthorization(_ context.Context, a *model.AuthorizationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auths = append(s.auths, *a)
	return nil
}

func (s *Store) PendingAuthorizations(_ context.Context, targetID string) ([]model.AuthorizationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AuthorizationRequest
	for _, a := range s.auths {
		if a.TargetID == targetID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Store) DeleteAuthorization(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.auths {
		if a.ID == id {
			s.auths = append(s.auths[:i], s.auths[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

// events

func (s *Store) InsertEvent(_ context.Context, e *model.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEvent++
	e.ID = s.nextEvent
	s.events = append(s.events, *e)
	return nil
}

// Events returns a copy of the audit log in insertion order.
func (s *Store) Events() []model.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AuditEvent(nil), s.events...)
}

func (s *Store) PurgeAuthorizations(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.auths))
	s.auths = nil
	return n, nil
}

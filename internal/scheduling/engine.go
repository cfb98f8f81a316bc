// Package scheduling books, lists and cancels appointments.
package scheduling

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/model"
)

// Store is the persistence the engine needs.
type Store interface {
	PhysiciansBySpecialization(ctx context.Context, specialization string) ([]string, error)
	Specializations(ctx context.Context) ([]string, error)

	HasBookingOn(ctx context.Context, patientID string, date time.Time) (bool, error)
	CreateAppointment(ctx context.Context, a *model.Appointment) error
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	PatientAppointmentsFrom(ctx context.Context, patientID string, from time.Time) ([]model.AppointmentView, error)
	PhysicianAppointmentsOn(ctx context.Context, physicianID string, day time.Time) ([]model.AppointmentView, error)

	ConsultedAppointmentIDs(ctx context.Context, ids []string) (map[string]bool, error)
	CreateConsultation(ctx context.Context, c *model.Consultation) error
	PatientConsultations(ctx context.Context, patientID string) ([]model.Consultation, error)
}

type Option func(*Engine)

// WithPicker replaces the random physician choice. pick(n) must return a
// value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(e *Engine) { e.pick = pick }
}

type Engine struct {
	store Store
	clock clock.Clock
	log   *logrus.Entry
	pick  func(n int) int
}

func New(st Store, clk clock.Clock, log *logrus.Entry, opts ...Option) *Engine {
	e := &Engine{store: st, clock: clk, log: log, pick: rand.Intn}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Book assigns a physician of the given specialization, chosen uniformly at
// random, to the patient on date. A patient books at most once per date.
func (e *Engine) Book(ctx context.Context, patientID, specialization string, date time.Time) (*model.Appointment, error) {
	day := model.DateOf(date)

	taken, err := e.store.HasBookingOn(ctx, patientID, day)
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("book appointment on %s: %w", day.Format(model.DateLayout), model.ErrConflict)
	}

	pool, err := e.store.PhysiciansBySpecialization(ctx, specialization)
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("no physician for %q: %w", specialization, model.ErrNotFound)
	}

	a := &model.Appointment{
		ID:          uuid.New().String(),
		CreatedAt:   e.clock.Now(),
		Date:        day,
		PhysicianID: pool[e.pick(len(pool))],
		PatientID:   patientID,
	}
	// the store's unique (patient, date) constraint catches a concurrent booking
	if err := e.store.CreateAppointment(ctx, a); err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}
	e.log.WithFields(logrus.Fields{
		"appointment_id": a.ID,
		"patient_id":     patientID,
		"physician_id":   a.PhysicianID,
		"date":           day.Format(model.DateLayout),
	}).Info("appointment booked")
	return a, nil
}

// Cancel deletes the appointment. A consultation already recorded for it is
// left in place and stays visible in the patient's history.
func (e *Engine) Cancel(ctx context.Context, appointmentID string) error {
	if err := e.store.DeleteAppointment(ctx, appointmentID); err != nil {
		return fmt.Errorf("cancel appointment: %w", err)
	}
	return nil
}

func (e *Engine) Appointment(ctx context.Context, id string) (*model.Appointment, error) {
	a, err := e.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (e *Engine) IsHandled(ctx context.Context, appointmentID string) (bool, error) {
	done, err := e.store.ConsultedAppointmentIDs(ctx, []string{appointmentID})
	if err != nil {
		return false, err
	}
	return done[appointmentID], nil
}

// PatientUpcoming lists the patient's appointments from today on, in
// booking order.
func (e *Engine) PatientUpcoming(ctx context.Context, patientID string) ([]model.AppointmentView, error) {
	views, err := e.store.PatientAppointmentsFrom(ctx, patientID, model.DateOf(e.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return e.markHandled(ctx, views)
}

// PhysicianToday lists only today's appointments, in booking order.
func (e *Engine) PhysicianToday(ctx context.Context, physicianID string) ([]model.AppointmentView, error) {
	views, err := e.store.PhysicianAppointmentsOn(ctx, physicianID, model.DateOf(e.clock.Now()))
	if err != nil {
		return nil, fmt.Errorf("list physician appointments: %w", err)
	}
	return e.markHandled(ctx, views)
}

func (e *Engine) markHandled(ctx context.Context, views []model.AppointmentView) ([]model.AppointmentView, error) {
	if len(views) == 0 {
		return views, nil
	}
	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	done, err := e.store.ConsultedAppointmentIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("derive handled: %w", err)
	}
	for i := range views {
		views[i].Handled = done[views[i].ID]
	}
	return views, nil
}

// AddConsultation records the physician's notes for one of their
// appointments. An appointment is consulted at most once.
func (e *Engine) AddConsultation(ctx context.Context, physicianID, appointmentID, notes, prescription string) (*model.Consultation, error) {
	a, err := e.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("add consultation: %w", err)
	}
	if a.PhysicianID != physicianID {
		return nil, fmt.Errorf("appointment %s belongs to another physician: %w", appointmentID, model.ErrForbidden)
	}
	c := &model.Consultation{
		ID:            uuid.New().String(),
		CreatedAt:     e.clock.Now(),
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		PhysicianID:   physicianID,
		Notes:         notes,
		Prescription:  prescription,
	}
	if err := e.store.CreateConsultation(ctx, c); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, fmt.Errorf("appointment %s already consulted: %w", appointmentID, err)
		}
		return nil, fmt.Errorf("add consultation: %w", err)
	}
	return c, nil
}

func (e *Engine) PatientConsultations(ctx context.Context, patientID string) ([]model.Consultation, error) {
	cs, err := e.store.PatientConsultations(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list consultations: %w", err)
	}
	return cs, nil
}

func (e *Engine) Specializations(ctx context.Context) ([]string, error) {
	return e.store.Specializations(ctx)
}

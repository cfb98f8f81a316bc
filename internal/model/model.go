package model

import "time"

type Appointment struct {
	ID          string
	CreatedAt   time.Time
	Date        time.Time // calendar date, midnight UTC
	PhysicianID string
	PatientID   string
}

// AppointmentView is the read side of an appointment. Handled is derived at
// query time from the existence of a consultation and is never stored.
type AppointmentView struct {
	Appointment
	CounterpartName string
	Handled         bool
}

type Consultation struct {
	ID            string
	CreatedAt     time.Time
	AppointmentID string
	PatientID     string
	PhysicianID   string
	Notes         string
	Prescription  string
}

// AuthorizationRequest is one pending consent flow.
type AuthorizationRequest struct {
	ID          string
	TargetID    string
	RequesterID string
	Code        string
	CreatedAt   time.Time
}

type AuditEvent struct {
	ID          int64
	Timestamp   time.Time
	Description string
}

// DateOf truncates t to its calendar date in t's location, returned as
// midnight UTC so dates compare with Equal.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

package rpc

import "time"

// Access actions a requester can ask consent for.
const (
	ActionViewPatient       = "view_patient"
	ActionEditPatient       = "edit_patient"
	ActionViewConsultations = "view_consultations"
	ActionRegisterPhysician = "register_physician"
	ActionCancelAppointment = "cancel_appointment"
)

type RegisterRequest struct {
	Login             string
	Password          string
	FirstName         string
	LastName          string
	SecondContactNo   string
	SecondContactName string
}

type RegisterResponse struct {
	UserID string
	Token  string
}

type LoginRequest struct {
	Login    string
	Password string
}

type LoginResponse struct {
	Token  string
	UserID string
	Role   string
	Name   string
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetMyDetailsRequest struct{}

type AccountDetails struct {
	UserID            string
	Login             string
	Role              string
	FirstName         string
	LastName          string
	PermLevel         int
	SecondContactNo   string
	SecondContactName string
	PracticeNo        string
	Specialization    string
	Display           string
}

// UpdateMyDetailsRequest changes only the non-empty fields. Fields that do
// not apply to the caller's role are ignored.
type UpdateMyDetailsRequest struct {
	FirstName         string
	LastName          string
	Password          string
	SecondContactNo   string
	SecondContactName string
	PracticeNo        string
	Specialization    string
}

type ListSpecializationsRequest struct{}

type ListSpecializationsResponse struct {
	Specializations []string
}

type ListBookableDatesRequest struct{}

type ListBookableDatesResponse struct {
	Dates []string
}

type Appointment struct {
	ID              string
	Date            string
	PhysicianID     string
	PatientID       string
	CounterpartName string
	Handled         bool
	CreatedAt       time.Time
}

type BookAppointmentRequest struct {
	Specialization string
	Date           string
}

type BookAppointmentResponse struct {
	Appointment *Appointment
}

type ListMyAppointmentsRequest struct{}

type ListMyAppointmentsResponse struct {
	Appointments []*Appointment
}

type CancelAppointmentRequest struct {
	AppointmentID string
}

type CancelAppointmentResponse struct{}

type Consultation struct {
	ID            string
	AppointmentID string
	PatientID     string
	PhysicianID   string
	Notes         string
	Prescription  string
	CreatedAt     time.Time
}

type AddConsultationRequest struct {
	AppointmentID string
	Notes         string
	Prescription  string
}

type AddConsultationResponse struct {
	Consultation *Consultation
}

type ListConsultedAppointmentsRequest struct{}

type ListConsultedAppointmentsResponse struct {
	Appointments []*Appointment
}

type ListMyConsultationsRequest struct{}

type ListMyConsultationsResponse struct {
	Consultations []*Consultation
}

type PatientEdit struct {
	FirstName         string
	LastName          string
	SecondContactNo   string
	SecondContactName string
}

type PhysicianRegistration struct {
	Login          string
	Password       string
	FirstName      string
	LastName       string
	PracticeNo     string
	Specialization string
}

// RequestAccessRequest asks for consent to run one action. Patient actions
// name the patient by login; admin actions are always addressed to the
// super admin.
type RequestAccessRequest struct {
	Action        string
	TargetLogin   string
	AppointmentID string
	PatientEdit   *PatientEdit
	Physician     *PhysicianRegistration
}

type RequestAccessResponse struct {
	RequestID string
	TargetID  string
	ExpiresAt time.Time
}

type SubmitAccessCodeRequest struct {
	RequestID string
	Code      string
}

// SubmitAccessCodeResponse carries the result of the granted action; only
// the field for that action is set.
type SubmitAccessCodeResponse struct {
	Outcome       string
	Patient       *AccountDetails
	Consultations []*Consultation
	PhysicianID   string
	AppointmentID string
}

type CancelAccessRequest struct {
	RequestID string
}

type CancelAccessResponse struct {
	Outcome string
}

type ListAccessRequestsRequest struct{}

type PendingAccess struct {
	RequestID     string
	Code          string
	RequesterID   string
	RequesterName string
	RequesterRole string
	IssuedAt      time.Time
}

type ListAccessRequestsResponse struct {
	Requests []*PendingAccess
}

type RegisterPhysicianRequest struct {
	Physician *PhysicianRegistration
}

type RegisterPhysicianResponse struct {
	UserID string
}

package handler

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/rpc"
)

func (h *Handler) ListSpecializations(ctx context.Context, _ *rpc.ListSpecializationsRequest) (*rpc.ListSpecializationsResponse, error) {
	if _, err := h.caller(ctx); err != nil {
		return nil, err
	}
	specs, err := h.engine.Specializations(ctx)
	if err != nil {
		return nil, h.fail(err)
	}
	return &rpc.ListSpecializationsResponse{Specializations: specs}, nil
}

func (h *Handler) ListBookableDates(ctx context.Context, _ *rpc.ListBookableDatesRequest) (*rpc.ListBookableDatesResponse, error) {
	if _, err := h.patient(ctx); err != nil {
		return nil, err
	}
	resp := &rpc.ListBookableDatesResponse{}
	for _, d := range h.window.Dates(h.clock.Now()) {
		resp.Dates = append(resp.Dates, d.Format(model.DateLayout))
	}
	return resp, nil
}

func (h *Handler) BookAppointment(ctx context.Context, req *rpc.BookAppointmentRequest) (*rpc.BookAppointmentResponse, error) {
	pat, err := h.patient(ctx)
	if err != nil {
		return nil, err
	}
	if req.Specialization == "" {
		return nil, status.Error(codes.InvalidArgument, "specialization required")
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return nil, withReason(codes.InvalidArgument, "date must be YYYY-MM-DD", "INVALID_DATE")
	}
	if err := h.window.Validate(h.clock.Now(), date); err != nil {
		h.metrics.Booking("invalid_date")
		return nil, h.fail(err)
	}

	a, err := h.engine.Book(ctx, pat.ID, req.Specialization, date)
	switch {
	case errors.Is(err, model.ErrConflict):
		h.metrics.Booking("conflict")
		return nil, withReason(codes.AlreadyExists,
			"you already have an appointment on that date, choose another", "CONFLICT")
	case errors.Is(err, model.ErrNotFound):
		h.metrics.Booking("no_physician")
		return nil, h.fail(err)
	case err != nil:
		h.metrics.Booking("error")
		return nil, h.fail(err)
	}
	h.metrics.Booking("ok")
	h.audit.Record(ctx, fmt.Sprintf("%s added Appointment %s for %s", model.Label(pat), a.ID, a.Date.Format(model.DateLayout)))

	view := model.AppointmentView{Appointment: *a}
	if phy, err := h.accounts.AccountByID(ctx, a.PhysicianID); err == nil {
		view.CounterpartName = phy.Identity().FullName()
	}
	return &rpc.BookAppointmentResponse{Appointment: toAppointment(view)}, nil
}

// ListMyAppointments shows a patient everything from today on and a
// physician only today's list.
func (h *Handler) ListMyAppointments(ctx context.Context, _ *rpc.ListMyAppointmentsRequest) (*rpc.ListMyAppointmentsResponse, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	var views []model.AppointmentView
	switch v := acc.(type) {
	case *model.Patient:
		views, err = h.engine.PatientUpcoming(ctx, v.ID)
	case *model.Physician:
		views, err = h.engine.PhysicianToday(ctx, v.ID)
	default:
		return nil, status.Error(codes.PermissionDenied, "patients and physicians only")
	}
	if err != nil {
		return nil, h.fail(err)
	}
	resp := &rpc.ListMyAppointmentsResponse{}
	for _, v := range views {
		resp.Appointments = append(resp.Appointments, toAppointment(v))
	}
	return resp, nil
}

// CancelAppointment lets a patient cancel their own booking and the super
// admin cancel any. Other admins need super admin consent.
func (h *Handler) CancelAppointment(ctx context.Context, req *rpc.CancelAppointmentRequest) (*rpc.CancelAppointmentResponse, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.AppointmentID == "" {
		return nil, status.Error(codes.InvalidArgument, "appointment_id required")
	}
	switch v := acc.(type) {
	case *model.Patient:
		a, err := h.engine.Appointment(ctx, req.AppointmentID)
		if err != nil {
			return nil, h.fail(err)
		}
		if a.PatientID != v.ID {
			return nil, status.Error(codes.NotFound, "appointment not found")
		}
	case *model.Admin:
		if !v.IsSuper() {
			return nil, withReason(codes.PermissionDenied,
				"super admin consent required, use RequestAccess with cancel_appointment", "CONSENT_REQUIRED")
		}
	default:
		return nil, status.Error(codes.PermissionDenied, "not allowed to cancel appointments")
	}
	if err := h.cancelAppointment(ctx, acc, req.AppointmentID); err != nil {
		return nil, err
	}
	return &rpc.CancelAppointmentResponse{}, nil
}

func (h *Handler) cancelAppointment(ctx context.Context, by model.Account, id string) error {
	a, err := h.engine.Appointment(ctx, id)
	if err != nil {
		return h.fail(err)
	}
	if err := h.engine.Cancel(ctx, id); err != nil {
		return h.fail(err)
	}
	h.audit.Record(ctx, fmt.Sprintf("%s cancelled Appointment %s of Patient %s scheduled for %s with Physician %s",
		model.Label(by), a.ID, a.PatientID, a.Date.Format(model.DateLayout), a.PhysicianID))
	return nil
}

func (h *Handler) AddConsultation(ctx context.Context, req *rpc.AddConsultationRequest) (*rpc.AddConsultationResponse, error) {
	phy, err := h.physician(ctx)
	if err != nil {
		return nil, err
	}
	if req.AppointmentID == "" || req.Notes == "" {
		return nil, status.Error(codes.InvalidArgument, "appointment_id and notes required")
	}
	c, err := h.engine.AddConsultation(ctx, phy.ID, req.AppointmentID, req.Notes, req.Prescription)
	if err != nil {
		return nil, h.fail(err)
	}
	h.audit.Record(ctx, fmt.Sprintf("%s captured Consultation notes for Appointment %s", model.Label(phy), c.AppointmentID))
	return &rpc.AddConsultationResponse{Consultation: toConsultation(*c)}, nil
}

// ListConsultedAppointments is today's appointments the physician has
// already written notes for.
func (h *Handler) ListConsultedAppointments(ctx context.Context, _ *rpc.ListConsultedAppointmentsRequest) (*rpc.ListConsultedAppointmentsResponse, error) {
	phy, err := h.physician(ctx)
	if err != nil {
		return nil, err
	}
	views, err := h.engine.PhysicianToday(ctx, phy.ID)
	if err != nil {
		return nil, h.fail(err)
	}
	resp := &rpc.ListConsultedAppointmentsResponse{}
	for _, v := range views {
		if v.Handled {
			resp.Appointments = append(resp.Appointments, toAppointment(v))
		}
	}
	return resp, nil
}

func (h *Handler) ListMyConsultations(ctx context.Context, _ *rpc.ListMyConsultationsRequest) (*rpc.ListMyConsultationsResponse, error) {
	pat, err := h.patient(ctx)
	if err != nil {
		return nil, err
	}
	cs, err := h.engine.PatientConsultations(ctx, pat.ID)
	if err != nil {
		return nil, h.fail(err)
	}
	h.audit.Record(ctx, fmt.Sprintf("%s viewed all their own Consultation notes", model.Label(pat)))
	resp := &rpc.ListMyConsultationsResponse{}
	for _, c := range cs {
		resp.Consultations = append(resp.Consultations, toConsultation(c))
	}
	return resp, nil
}

func (h *Handler) patient(ctx context.Context) (*model.Patient, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := acc.(*model.Patient)
	if !ok {
		return nil, status.Error(codes.PermissionDenied, "patients only")
	}
	return p, nil
}

func (h *Handler) physician(ctx context.Context) (*model.Physician, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := acc.(*model.Physician)
	if !ok {
		return nil, status.Error(codes.PermissionDenied, "physicians only")
	}
	return p, nil
}

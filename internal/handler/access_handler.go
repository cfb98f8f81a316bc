package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-consent-api/internal/authz"
	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/rpc"
)

// action is what a granted consent request unlocks. It runs exactly once.
type action struct {
	kind          string
	appointmentID string
	edit          *rpc.PatientEdit
	physician     *rpc.PhysicianRegistration
}

func (h *Handler) RequestAccess(ctx context.Context, req *rpc.RequestAccessRequest) (*rpc.RequestAccessResponse, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	act := action{kind: req.Action}
	var target model.Account
	switch req.Action {
	case rpc.ActionViewPatient, rpc.ActionEditPatient:
		if _, ok := acc.(*model.Admin); !ok {
			return nil, status.Error(codes.PermissionDenied, "admins only")
		}
		if req.Action == rpc.ActionEditPatient {
			if req.PatientEdit == nil {
				return nil, status.Error(codes.InvalidArgument, "patient_edit required")
			}
			act.edit = req.PatientEdit
		}
		if target, err = h.patientByLogin(ctx, req.TargetLogin); err != nil {
			return nil, err
		}
	case rpc.ActionViewConsultations:
		if _, ok := acc.(*model.Physician); !ok {
			return nil, status.Error(codes.PermissionDenied, "physicians only")
		}
		if target, err = h.patientByLogin(ctx, req.TargetLogin); err != nil {
			return nil, err
		}
	case rpc.ActionRegisterPhysician, rpc.ActionCancelAppointment:
		admin, ok := acc.(*model.Admin)
		if !ok {
			return nil, status.Error(codes.PermissionDenied, "admins only")
		}
		if admin.IsSuper() {
			return nil, status.Error(codes.FailedPrecondition, "the super admin acts without consent")
		}
		if req.Action == rpc.ActionRegisterPhysician {
			if err := validatePhysician(req.Physician); err != nil {
				return nil, err
			}
			act.physician = req.Physician
		} else {
			if req.AppointmentID == "" {
				return nil, status.Error(codes.InvalidArgument, "appointment_id required")
			}
			if _, err := h.engine.Appointment(ctx, req.AppointmentID); err != nil {
				return nil, h.fail(err)
			}
			act.appointmentID = req.AppointmentID
		}
		if target, err = h.superAdminAccount(ctx); err != nil {
			return nil, err
		}
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown action %q", req.Action)
	}

	r, err := h.consent.Issue(ctx, target, acc)
	if err != nil {
		return nil, h.fail(err)
	}
	h.pending.Add(r, act)
	return &rpc.RequestAccessResponse{
		RequestID: r.ID,
		TargetID:  target.Identity().ID,
		ExpiresAt: r.ExpiresAt(),
	}, nil
}

func (h *Handler) patientByLogin(ctx context.Context, login string) (model.Account, error) {
	acc, err := h.accounts.AccountByLogin(ctx, normLogin(login))
	if errors.Is(err, model.ErrNotFound) {
		return nil, status.Error(codes.NotFound, "invalid patient login")
	}
	if err != nil {
		return nil, h.fail(err)
	}
	if _, ok := acc.(*model.Patient); !ok {
		return nil, status.Error(codes.NotFound, "invalid patient login")
	}
	return acc, nil
}

func (h *Handler) superAdminAccount(ctx context.Context) (model.Account, error) {
	acc, err := h.accounts.AccountByLogin(ctx, h.superAdmin)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, h.fail(err)
	}
	if admin, ok := acc.(*model.Admin); ok && admin.IsSuper() {
		return admin, nil
	}
	return nil, status.Error(codes.FailedPrecondition, "no super admin account is configured")
}

// SubmitAccessCode checks a consent code. On a grant the requested action
// runs and its result is returned; a wrong code may be retried until the
// code's time step ends.
func (h *Handler) SubmitAccessCode(ctx context.Context, req *rpc.SubmitAccessCodeRequest) (*rpc.SubmitAccessCodeResponse, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.RequestID == "" || req.Code == "" {
		return nil, status.Error(codes.InvalidArgument, "request_id and code required")
	}
	e, ok := h.pending.Get(req.RequestID)
	if !ok || e.Request.Requester.Identity().ID != acc.Identity().ID {
		return nil, withReason(codes.NotFound, "no such access request", "REQUEST_NOT_FOUND")
	}
	if last, done := e.Request.Outcome(); done {
		return nil, settledStatus(last)
	}

	res := e.Request.Submit(ctx, req.Code)
	if !res.Granted() {
		if res.Outcome == authz.OutcomeRejected {
			h.secLog.Security("consent_code_rejected", acc.Identity().ID, logrus.Fields{"request_id": req.RequestID})
		}
		return nil, resultStatus(res)
	}

	resp, err := h.perform(ctx, acc, e.Request.Target, e.Data)
	if err != nil {
		return nil, err
	}
	resp.Outcome = res.Outcome.String()
	return resp, nil
}

func (h *Handler) perform(ctx context.Context, by, target model.Account, act action) (*rpc.SubmitAccessCodeResponse, error) {
	resp := &rpc.SubmitAccessCodeResponse{}
	switch act.kind {
	case rpc.ActionViewPatient:
		p, err := h.accounts.AccountByID(ctx, target.Identity().ID)
		if err != nil {
			return nil, h.fail(err)
		}
		h.audit.Record(ctx, fmt.Sprintf("%s viewed details of %s", model.Label(by), model.Label(p)))
		resp.Patient = toDetails(p)

	case rpc.ActionEditPatient:
		acc, err := h.accounts.AccountByID(ctx, target.Identity().ID)
		if err != nil {
			return nil, h.fail(err)
		}
		p, ok := acc.(*model.Patient)
		if !ok {
			return nil, status.Error(codes.FailedPrecondition, "target is no longer a patient")
		}
		setIf(&p.FirstName, act.edit.FirstName)
		setIf(&p.LastName, act.edit.LastName)
		setIf(&p.SecondContactNo, act.edit.SecondContactNo)
		setIf(&p.SecondContactName, act.edit.SecondContactName)
		p.PasswordHash = ""
		if err := h.accounts.UpdateAccount(ctx, p); err != nil {
			return nil, h.fail(err)
		}
		h.audit.Record(ctx, fmt.Sprintf("%s updated details of %s", model.Label(by), model.Label(p)))
		resp.Patient = toDetails(p)

	case rpc.ActionViewConsultations:
		cs, err := h.engine.PatientConsultations(ctx, target.Identity().ID)
		if err != nil {
			return nil, h.fail(err)
		}
		h.audit.Record(ctx, fmt.Sprintf("%s viewed the Consultation notes of %s", model.Label(by), model.Label(target)))
		resp.Consultations = make([]*rpc.Consultation, 0, len(cs))
		for _, c := range cs {
			resp.Consultations = append(resp.Consultations, toConsultation(c))
		}

	case rpc.ActionRegisterPhysician:
		admin, _ := by.(*model.Admin)
		id, err := h.createPhysician(ctx, admin, act.physician)
		if err != nil {
			return nil, err
		}
		resp.PhysicianID = id

	case rpc.ActionCancelAppointment:
		if err := h.cancelAppointment(ctx, by, act.appointmentID); err != nil {
			return nil, err
		}
		resp.AppointmentID = act.appointmentID
	}
	return resp, nil
}

func resultStatus(res authz.Result) error {
	switch res.Outcome {
	case authz.OutcomeRejected:
		return withReason(codes.InvalidArgument, res.Reason, "CODE_REJECTED")
	case authz.OutcomeExpired:
		return withReason(codes.DeadlineExceeded, res.Reason, "CODE_EXPIRED")
	}
	return withReason(codes.Aborted, res.Reason, "REQUEST_CANCELLED")
}

// settledStatus answers a submit or cancel that arrives after the request
// ended. A used grant reads as expired so it cannot be replayed.
func settledStatus(last authz.Result) error {
	if last.Granted() {
		return withReason(codes.DeadlineExceeded, "request is no longer pending, start a new one", "CODE_EXPIRED")
	}
	return resultStatus(last)
}

// CancelAccess aborts a pending request. Either the requester or the
// target user may cancel it.
func (h *Handler) CancelAccess(ctx context.Context, req *rpc.CancelAccessRequest) (*rpc.CancelAccessResponse, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := h.pending.Get(req.RequestID)
	uid := acc.Identity().ID
	if !ok || (e.Request.Requester.Identity().ID != uid && e.Request.Target.Identity().ID != uid) {
		return nil, withReason(codes.NotFound, "no such access request", "REQUEST_NOT_FOUND")
	}
	if last, done := e.Request.Outcome(); done {
		return nil, settledStatus(last)
	}
	res := e.Request.Cancel(ctx)
	if res.Outcome != authz.OutcomeCancelled {
		return nil, resultStatus(res)
	}
	return &rpc.CancelAccessResponse{Outcome: res.Outcome.String()}, nil
}

// ListAccessRequests shows the caller the codes others are waiting for.
// Requests whose step has ended are expired first, so only codes that can
// still be submitted are shown.
func (h *Handler) ListAccessRequests(ctx context.Context, _ *rpc.ListAccessRequestsRequest) (*rpc.ListAccessRequestsResponse, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	pend, err := h.consent.Ledger().ListPending(ctx, acc.Identity().ID)
	if err != nil {
		return nil, h.fail(err)
	}
	resp := &rpc.ListAccessRequestsResponse{Requests: make([]*rpc.PendingAccess, 0, len(pend))}
	for _, p := range pend {
		// rows without a live request belong to no one who can submit them
		e, ok := h.pending.Get(p.RequestID)
		if !ok || e.Request.Poll(ctx) {
			continue
		}
		pa := &rpc.PendingAccess{
			RequestID:   p.RequestID,
			Code:        p.Code,
			RequesterID: p.RequesterID,
			IssuedAt:    p.IssuedAt,
		}
		if r, err := h.accounts.AccountByID(ctx, p.RequesterID); err == nil {
			pa.RequesterName = r.Identity().FullName()
			pa.RequesterRole = string(r.Role())
		}
		resp.Requests = append(resp.Requests, pa)
	}
	return resp, nil
}

// Package handler implements ClinicService on top of the consent protocol
// and the scheduling engine.
package handler

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-consent-api/internal/audit"
	"clinic-consent-api/internal/authz"
	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/logger"
	"clinic-consent-api/internal/metrics"
	"clinic-consent-api/internal/middleware"
	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/rpc"
	"clinic-consent-api/internal/scheduling"
)

type AccountStore interface {
	CreateAccount(ctx context.Context, a model.Account) error
	AccountByLogin(ctx context.Context, login string) (model.Account, error)
	AccountByID(ctx context.Context, id string) (model.Account, error)
	UpdateAccount(ctx context.Context, a model.Account) error
}

type Deps struct {
	Accounts        AccountStore
	Engine          *scheduling.Engine
	Window          scheduling.Window
	Consent         *authz.Protocol
	Audit           audit.Recorder
	Metrics         *metrics.Metrics
	Clock           clock.Clock
	Log             *logger.Logger
	Secret          string
	SuperAdminLogin string
}

type Handler struct {
	accounts   AccountStore
	engine     *scheduling.Engine
	window     scheduling.Window
	consent    *authz.Protocol
	pending    *authz.Registry[action]
	audit      audit.Recorder
	metrics    *metrics.Metrics
	clock      clock.Clock
	log        *logrus.Entry
	secLog     *logger.Logger
	secret     string
	superAdmin string
}

var _ rpc.ClinicServer = (*Handler)(nil)

func New(d Deps) *Handler {
	return &Handler{
		accounts:   d.Accounts,
		engine:     d.Engine,
		window:     d.Window,
		consent:    d.Consent,
		pending:    authz.NewRegistry[action](d.Clock, d.Consent.Interval()),
		audit:      d.Audit,
		metrics:    d.Metrics,
		clock:      d.Clock,
		log:        d.Log.WithComponent("handler"),
		secLog:     d.Log,
		secret:     d.Secret,
		superAdmin: d.SuperAdminLogin,
	}
}

// SweepPending expires abandoned consent requests and evicts finished ones
// a step after they end, every interval until ctx is done.
func (h *Handler) SweepPending(ctx context.Context, interval time.Duration) {
	h.pending.Run(ctx, interval)
}

// caller loads the authenticated account. A token for a deleted account is
// treated like a bad token.
func (h *Handler) caller(ctx context.Context) (model.Account, error) {
	uid, ok := middleware.UserID(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "not authenticated")
	}
	acc, err := h.accounts.AccountByID(ctx, uid)
	if errors.Is(err, model.ErrNotFound) {
		return nil, status.Error(codes.Unauthenticated, "account no longer exists")
	}
	if err != nil {
		return nil, h.fail(err)
	}
	return acc, nil
}

const errorDomain = "clinic.v1"

func withReason(c codes.Code, msg, reason string) error {
	st := status.New(c, msg)
	if d, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: errorDomain}); err == nil {
		return d.Err()
	}
	return st.Err()
}

// fail maps a domain error onto a gRPC status. Anything outside the model
// taxonomy is logged and hidden behind Internal.
func (h *Handler) fail(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, model.ErrNotFound):
		return withReason(codes.NotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, model.ErrConflict):
		return withReason(codes.AlreadyExists, err.Error(), "CONFLICT")
	case errors.Is(err, model.ErrExpired):
		return withReason(codes.DeadlineExceeded, err.Error(), "CODE_EXPIRED")
	case errors.Is(err, model.ErrRejected):
		return withReason(codes.InvalidArgument, err.Error(), "CODE_REJECTED")
	case errors.Is(err, model.ErrCancelled):
		return withReason(codes.Aborted, err.Error(), "REQUEST_CANCELLED")
	case errors.Is(err, model.ErrInvalidDate):
		return withReason(codes.InvalidArgument, err.Error(), "INVALID_DATE")
	case errors.Is(err, model.ErrForbidden):
		return withReason(codes.PermissionDenied, err.Error(), "FORBIDDEN")
	}
	h.log.WithError(err).Error("unexpected error")
	return status.Error(codes.Internal, "internal error")
}

func toDetails(a model.Account) *rpc.AccountDetails {
	u := a.Identity()
	d := &rpc.AccountDetails{
		UserID:    u.ID,
		Login:     u.Login,
		Role:      string(a.Role()),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Display:   a.DisplayDetails(),
	}
	switch v := a.(type) {
	case *model.Admin:
		d.PermLevel = v.PermLevel
	case *model.Patient:
		d.SecondContactNo = v.SecondContactNo
		d.SecondContactName = v.SecondContactName
	case *model.Physician:
		d.PracticeNo = v.PracticeNo
		d.Specialization = v.Specialization
	}
	return d
}

func toAppointment(v model.AppointmentView) *rpc.Appointment {
	return &rpc.Appointment{
		ID:              v.ID,
		Date:            v.Date.Format(model.DateLayout),
		PhysicianID:     v.PhysicianID,
		PatientID:       v.PatientID,
		CounterpartName: v.CounterpartName,
		Handled:         v.Handled,
		CreatedAt:       v.CreatedAt,
	}
}

func toConsultation(c model.Consultation) *rpc.Consultation {
	return &rpc.Consultation{
		ID:            c.ID,
		AppointmentID: c.AppointmentID,
		PatientID:     c.PatientID,
		PhysicianID:   c.PhysicianID,
		Notes:         c.Notes,
		Prescription:  c.Prescription,
		CreatedAt:     c.CreatedAt,
	}
}

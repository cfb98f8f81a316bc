package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"clinic-consent-api/internal/auth"
	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/rpc"
)

func normLogin(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Register creates a patient account. Physicians and admins are never
// self-registered.
func (h *Handler) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.RegisterResponse, error) {
	login := normLogin(req.Login)
	if login == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return nil, status.Error(codes.InvalidArgument, "login, password, first and last name are required")
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, h.fail(err)
	}
	p := &model.Patient{
		User: model.User{
			ID:           uuid.New().String(),
			Login:        login,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
		},
		SecondContactNo:   req.SecondContactNo,
		SecondContactName: req.SecondContactName,
	}
	if err := h.accounts.CreateAccount(ctx, p); err != nil {
		if errors.Is(err, model.ErrConflict) {
			// don't reveal which logins exist
			return nil, status.Error(codes.AlreadyExists, "registration failed")
		}
		return nil, h.fail(err)
	}

	tok, err := auth.MakeToken(p.ID, p.Role(), h.secret)
	if err != nil {
		return nil, h.fail(err)
	}
	h.audit.Record(ctx, fmt.Sprintf("New %s account created via registration", model.Label(p)))
	return &rpc.RegisterResponse{UserID: p.ID, Token: tok}, nil
}

func (h *Handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	login := normLogin(req.Login)
	if login == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "login and password required")
	}

	acc, err := h.accounts.AccountByLogin(ctx, login)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, h.fail(err)
	}
	if acc == nil || !auth.CheckPassword(acc.Identity().PasswordHash, req.Password) {
		h.metrics.Login(false)
		h.secLog.Security("login_failed", "", logrus.Fields{"login": login})
		h.audit.Record(ctx, fmt.Sprintf("Failed login attempt for login %q", login))
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	u := acc.Identity()
	tok, err := auth.MakeToken(u.ID, acc.Role(), h.secret)
	if err != nil {
		return nil, h.fail(err)
	}
	h.metrics.Login(true)
	h.audit.Record(ctx, fmt.Sprintf("%s logged in", model.Label(acc)))
	return &rpc.LoginResponse{Token: tok, UserID: u.ID, Role: string(acc.Role()), Name: u.FullName()}, nil
}

// Logout records the event. Access tokens are short-lived and not revoked.
func (h *Handler) Logout(ctx context.Context, _ *rpc.LogoutRequest) (*rpc.LogoutResponse, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	h.audit.Record(ctx, fmt.Sprintf("%s logged out", model.Label(acc)))
	return &rpc.LogoutResponse{}, nil
}

func (h *Handler) GetMyDetails(ctx context.Context, _ *rpc.GetMyDetailsRequest) (*rpc.AccountDetails, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	h.audit.Record(ctx, fmt.Sprintf("%s viewed their own details", model.Label(acc)))
	return toDetails(acc), nil
}

func (h *Handler) UpdateMyDetails(ctx context.Context, req *rpc.UpdateMyDetailsRequest) (*rpc.AccountDetails, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	u := acc.Identity()
	setIf(&u.FirstName, req.FirstName)
	setIf(&u.LastName, req.LastName)
	u.PasswordHash = ""
	if req.Password != "" {
		if err := auth.ValidatePassword(req.Password); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		if u.PasswordHash, err = auth.HashPassword(req.Password); err != nil {
			return nil, h.fail(err)
		}
	}
	switch v := acc.(type) {
	case *model.Patient:
		setIf(&v.SecondContactNo, req.SecondContactNo)
		setIf(&v.SecondContactName, req.SecondContactName)
	case *model.Physician:
		setIf(&v.PracticeNo, req.PracticeNo)
		setIf(&v.Specialization, req.Specialization)
	}

	if err := h.accounts.UpdateAccount(ctx, acc); err != nil {
		return nil, h.fail(err)
	}
	h.audit.Record(ctx, fmt.Sprintf("%s updated their own details", model.Label(acc)))
	return toDetails(acc), nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// RegisterPhysician is direct for the super admin. Other admins go through
// RequestAccess with the register_physician action.
func (h *Handler) RegisterPhysician(ctx context.Context, req *rpc.RegisterPhysicianRequest) (*rpc.RegisterPhysicianResponse, error) {
	acc, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}
	admin, ok := acc.(*model.Admin)
	if !ok {
		return nil, status.Error(codes.PermissionDenied, "admins only")
	}
	if !admin.IsSuper() {
		return nil, withReason(codes.PermissionDenied,
			"super admin consent required, use RequestAccess with register_physician", "CONSENT_REQUIRED")
	}
	id, err := h.createPhysician(ctx, admin, req.Physician)
	if err != nil {
		return nil, err
	}
	return &rpc.RegisterPhysicianResponse{UserID: id}, nil
}

func validatePhysician(p *rpc.PhysicianRegistration) error {
	if p == nil || normLogin(p.Login) == "" || p.Password == "" || p.FirstName == "" ||
		p.LastName == "" || p.Specialization == "" {
		return status.Error(codes.InvalidArgument, "physician login, password, names and specialization are required")
	}
	if err := auth.ValidatePassword(p.Password); err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return nil
}

func (h *Handler) createPhysician(ctx context.Context, by *model.Admin, p *rpc.PhysicianRegistration) (string, error) {
	if err := validatePhysician(p); err != nil {
		return "", err
	}
	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return "", h.fail(err)
	}
	phy := &model.Physician{
		User: model.User{
			ID:           uuid.New().String(),
			Login:        normLogin(p.Login),
			PasswordHash: hash,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
		},
		PracticeNo:     p.PracticeNo,
		Specialization: p.Specialization,
	}
	if err := h.accounts.CreateAccount(ctx, phy); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return "", withReason(codes.AlreadyExists, "login already taken", "LOGIN_TAKEN")
		}
		return "", h.fail(err)
	}
	h.audit.Record(ctx, fmt.Sprintf("%s created new %s", model.Label(by), model.Label(phy)))
	return phy.ID, nil
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clinic-consent-api/internal/auth"
	"clinic-consent-api/internal/handler"
	"clinic-consent-api/internal/model"
)

// ensureSuperAdmin creates the super admin on first start. Without a
// password nothing is created and an existing account is left alone.
func ensureSuperAdmin(ctx context.Context, accounts handler.AccountStore, login, password string, log *logrus.Entry) error {
	existing, err := accounts.AccountByLogin(ctx, login)
	switch {
	case err == nil:
		if a, ok := existing.(*model.Admin); !ok || !a.IsSuper() {
			log.WithField("login", login).Warn("super admin login belongs to an account without super admin rights")
		}
		return nil
	case !errors.Is(err, model.ErrNotFound):
		return fmt.Errorf("look up super admin: %w", err)
	}

	if password == "" {
		log.WithField("login", login).Warn("no super admin account and SUPER_ADMIN_PASSWORD is unset")
		return nil
	}
	if err := auth.ValidatePassword(password); err != nil {
		return fmt.Errorf("SUPER_ADMIN_PASSWORD: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.Admin{
		User: model.User{
			ID:           uuid.NewString(),
			Login:        login,
			PasswordHash: hash,
			FirstName:    "Super",
			LastName:     "Admin",
		},
		PermLevel: model.SuperAdminLevel,
	}
	if err := accounts.CreateAccount(ctx, admin); err != nil {
		return fmt.Errorf("create super admin: %w", err)
	}
	log.WithField("login", login).Info("super admin created")
	return nil
}

package authz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/model"
)

// LedgerStore persists pending authorization rows.
type LedgerStore interface {
	InsertAuthorization(ctx context.Context, a *model.AuthorizationRequest) error
	PendingAuthorizations(ctx context.Context, targetID string) ([]model.AuthorizationRequest, error)
	DeleteAuthorization(ctx context.Context, id string) error
}

// Pending is what a target user sees: who wants access and with which code.
type Pending struct {
	RequestID   string
	Code        string
	RequesterID string
	IssuedAt    time.Time
}

// Ledger is the bookkeeping of outstanding consent requests. A row exists
// exactly while its request is in the Issued state.
type Ledger struct {
	store LedgerStore
	clock clock.Clock
	log   *logrus.Entry
}

func NewLedger(st LedgerStore, clk clock.Clock, log *logrus.Entry) *Ledger {
	return &Ledger{store: st, clock: clk, log: log}
}

func (l *Ledger) Register(ctx context.Context, targetID, requesterID, code string) (string, error) {
	a := &model.AuthorizationRequest{
		ID:          uuid.New().String(),
		TargetID:    targetID,
		RequesterID: requesterID,
		Code:        code,
		CreatedAt:   l.clock.Now(),
	}
	if err := l.store.InsertAuthorization(ctx, a); err != nil {
		return "", fmt.Errorf("register authorization: %w", err)
	}
	return a.ID, nil
}

// ListPending returns the target's outstanding requests in insertion order.
func (l *Ledger) ListPending(ctx context.Context, targetID string) ([]Pending, error) {
	rows, err := l.store.PendingAuthorizations(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("list pending authorizations: %w", err)
	}
	out := make([]Pending, len(rows))
	for i, r := range rows {
		out[i] = Pending{RequestID: r.ID, Code: r.Code, RequesterID: r.RequesterID, IssuedAt: r.CreatedAt}
	}
	return out, nil
}

// Remove is best effort: an unknown id is fine, other failures are logged.
func (l *Ledger) Remove(ctx context.Context, requestID string) {
	err := l.store.DeleteAuthorization(ctx, requestID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		l.log.WithError(err).WithField("request_id", requestID).Error("remove authorization failed")
	}
}

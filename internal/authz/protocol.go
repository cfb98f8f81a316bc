// Package authz implements owner consent: a requester obtains a short-lived
// single-use code that only the target user can see, and access is granted
// once the requester submits it within the code's time step.
package authz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"clinic-consent-api/internal/audit"
	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/logger"
	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/otp"
)

type State int

const (
	StateIssued State = iota
	StateConfirmed
	StateExpired
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIssued:
		return "issued"
	case StateConfirmed:
		return "confirmed"
	case StateExpired:
		return "expired"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

func (s State) Terminal() bool { return s != StateIssued }

type Outcome int

const (
	// OutcomeRejected means the candidate was wrong and the code is still live.
	OutcomeRejected Outcome = iota
	OutcomeGranted
	OutcomeExpired
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeGranted:
		return "granted"
	case OutcomeExpired:
		return "expired"
	case OutcomeCancelled:
		return "cancelled"
	}
	return "unknown"
}

type Result struct {
	Outcome Outcome
	Reason  string
}

func (r Result) Granted() bool { return r.Outcome == OutcomeGranted }

// Final reports whether the request is over; only Rejected allows a retry.
func (r Result) Final() bool { return r.Outcome != OutcomeRejected }

func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeGranted:
		return nil
	case OutcomeRejected:
		return model.ErrRejected
	case OutcomeExpired:
		return model.ErrExpired
	default:
		return model.ErrCancelled
	}
}

// Observer sees every terminal outcome.
type Observer interface {
	ConsentOutcome(outcome string)
}

type Option func(*Protocol)

func WithObserver(o Observer) Option {
	return func(p *Protocol) { p.observer = o }
}

type Protocol struct {
	gen      *otp.Generator
	ledger   *Ledger
	audit    audit.Recorder
	clock    clock.Clock
	log      *logrus.Entry
	observer Observer
}

func New(gen *otp.Generator, ledger *Ledger, rec audit.Recorder, clk clock.Clock, log *logger.Logger, opts ...Option) *Protocol {
	p := &Protocol{
		gen:    gen,
		ledger: ledger,
		audit:  rec,
		clock:  clk,
		log:    log.WithComponent("authz"),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Protocol) Ledger() *Ledger { return p.ledger }

// Interval is how long an issued code stays valid at most.
func (p *Protocol) Interval() time.Duration { return p.gen.Interval() }

// Issue starts a consent flow. The code is generated and registered in one
// step; if registration fails no Request exists.
func (p *Protocol) Issue(ctx context.Context, target, requester model.Account) (*Request, error) {
	now := p.clock.Now()
	code, err := p.gen.Current(now)
	if err != nil {
		return nil, fmt.Errorf("issue authorization: %w", err)
	}
	id, err := p.ledger.Register(ctx, target.Identity().ID, requester.Identity().ID, code)
	if err != nil {
		return nil, err
	}
	r := &Request{
		ID:        id,
		Target:    target,
		Requester: requester,
		IssuedAt:  now,
		code:      code,
		step:      p.gen.Step(now),
		p:         p,
	}
	p.audit.Record(ctx, fmt.Sprintf("%s requested access to %s (request %s)",
		model.Label(requester), model.Label(target), id))
	return r, nil
}

// Request is one Issued consent flow. Safe for concurrent use.
type Request struct {
	ID        string
	Target    model.Account
	Requester model.Account
	IssuedAt  time.Time

	code string
	step int64
	p    *Protocol

	mu     sync.Mutex
	state  State
	result Result
}

var notPending = Result{Outcome: OutcomeExpired, Reason: "request is no longer pending, start a new one"}

func (r *Request) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Outcome returns the terminal result once the request is finished.
func (r *Request) Outcome() (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.state.Terminal()
}

// ExpiresAt is the end of the time step the code was issued in.
func (r *Request) ExpiresAt() time.Time {
	step := r.p.gen.Interval()
	return time.Unix((r.step+1)*int64(step/time.Second), 0)
}

// Submit checks one candidate code. Expiry is decided first by re-deriving
// the current code; only a live code can be confirmed.
func (r *Request) Submit(ctx context.Context, candidate string) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Terminal() {
		return notPending
	}
	now := r.p.clock.Now()
	if r.expired(now) {
		return r.finish(ctx, StateExpired)
	}
	if r.p.gen.Verify(candidate, now) {
		return r.finish(ctx, StateConfirmed)
	}
	r.p.log.WithFields(logrus.Fields{
		"request_id":   r.ID,
		"requester_id": r.Requester.Identity().ID,
	}).Info("consent code rejected")
	return Result{Outcome: OutcomeRejected, Reason: "invalid code, try again"}
}

func (r *Request) Cancel(ctx context.Context) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Terminal() {
		return notPending
	}
	return r.finish(ctx, StateCancelled)
}

// Poll expires the request if its step has elapsed and reports whether it
// is finished.
func (r *Request) Poll(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Terminal() {
		return true
	}
	if r.expired(r.p.clock.Now()) {
		r.finish(ctx, StateExpired)
		return true
	}
	return false
}

func (r *Request) expired(now time.Time) bool {
	if r.p.gen.Step(now) != r.step {
		return true
	}
	current, err := r.p.gen.Current(now)
	return err != nil || current != r.code
}

// finish must be called with r.mu held.
func (r *Request) finish(ctx context.Context, s State) Result {
	r.state = s
	r.p.ledger.Remove(ctx, r.ID)

	req, tgt := model.Label(r.Requester), model.Label(r.Target)
	var res Result
	switch s {
	case StateConfirmed:
		res = Result{Outcome: OutcomeGranted}
		r.p.audit.Record(ctx, fmt.Sprintf("%s granted %s access (request %s)", tgt, req, r.ID))
	case StateExpired:
		res = Result{Outcome: OutcomeExpired, Reason: "code expired, start a new request"}
		r.p.audit.Record(ctx, fmt.Sprintf("Access request %s from %s to %s expired", r.ID, req, tgt))
	case StateCancelled:
		res = Result{Outcome: OutcomeCancelled, Reason: "access request was cancelled"}
		r.p.audit.Record(ctx, fmt.Sprintf("%s cancelled access request %s to %s", req, r.ID, tgt))
	}
	if r.p.observer != nil {
		r.p.observer.ConsentOutcome(res.Outcome.String())
	}
	r.result = res
	return res
}

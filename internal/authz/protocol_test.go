package authz_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-consent-api/internal/audit"
	"clinic-consent-api/internal/authz"
	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/logger"
	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/otp"
	"clinic-consent-api/internal/store/memory"
)

const secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

// At 1111111109 the 4-digit code is 1804; 1111111111 is the next step.
var (
	stepN     = time.Unix(1111111109, 0)
	stepNext  = time.Unix(1111111111, 0)
	validCode = "1804"
)

var (
	patient   = &model.Patient{User: model.User{ID: "pat-1", Login: "pat1", FirstName: "Abe", LastName: "Ants"}}
	physician = &model.Physician{User: model.User{ID: "phy-1", Login: "phy1", FirstName: "Fred", LastName: "Fredricks"}, Specialization: "Cardiology"}
	admin     = &model.Admin{User: model.User{ID: "adm-2", Login: "admin2"}, PermLevel: 1}
)

type counter struct {
	mu   sync.Mutex
	seen map[string]int
}

func (c *counter) ConsentOutcome(o string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen == nil {
		c.seen = map[string]int{}
	}
	c.seen[o]++
}

type fixture struct {
	st    *memory.Store
	clk   *clock.Manual
	proto *authz.Protocol
	obs   *counter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	clk := clock.NewManual(stepN)
	gen, err := otp.NewGenerator(secret, 4, 30*time.Second)
	require.NoError(t, err)
	log := logger.Discard()
	obs := &counter{}
	ledger := authz.NewLedger(st, clk, log.WithComponent("ledger"))
	proto := authz.New(gen, ledger, audit.New(st, clk, log), clk, log, authz.WithObserver(obs))
	return &fixture{st: st, clk: clk, proto: proto, obs: obs}
}

func (f *fixture) pending(t *testing.T, target model.Account) []authz.Pending {
	t.Helper()
	p, err := f.proto.Ledger().ListPending(context.Background(), target.Identity().ID)
	require.NoError(t, err)
	return p
}

func TestWrongThenRightCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)
	assert.Equal(t, authz.StateIssued, req.State())

	pend := f.pending(t, patient)
	require.Len(t, pend, 1)
	assert.Equal(t, validCode, pend[0].Code)
	assert.Equal(t, physician.ID, pend[0].RequesterID)
	assert.Equal(t, req.ID, pend[0].RequestID)

	res := req.Submit(ctx, "0000")
	assert.Equal(t, authz.OutcomeRejected, res.Outcome)
	assert.ErrorIs(t, res.Err(), model.ErrRejected)
	assert.False(t, res.Final())
	assert.Len(t, f.pending(t, patient), 1, "rejected code keeps the request live")

	res = req.Submit(ctx, validCode)
	assert.True(t, res.Granted())
	assert.NoError(t, res.Err())
	assert.Equal(t, authz.StateConfirmed, req.State())
	assert.Empty(t, f.pending(t, patient))

	// a later request for the same pair is independent
	again, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)
	assert.NotEqual(t, req.ID, again.ID)
	assert.True(t, again.Submit(ctx, validCode).Granted())
	assert.Empty(t, f.pending(t, patient))
}

func TestExpiresOnStepRollover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)
	assert.True(t, req.ExpiresAt().Equal(time.Unix(1111111110, 0)))

	f.clk.Set(stepNext)
	res := req.Submit(ctx, validCode)
	assert.Equal(t, authz.OutcomeExpired, res.Outcome)
	assert.ErrorIs(t, res.Err(), model.ErrExpired)
	assert.Equal(t, authz.StateExpired, req.State())
	assert.Empty(t, f.pending(t, patient))
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)

	res := req.Cancel(ctx)
	assert.Equal(t, authz.OutcomeCancelled, res.Outcome)
	assert.ErrorIs(t, res.Err(), model.ErrCancelled)
	assert.Empty(t, f.pending(t, patient))

	// terminal states absorb
	after := req.Submit(ctx, validCode)
	assert.False(t, after.Granted())
	assert.Equal(t, authz.StateCancelled, req.State())

	last, done := req.Outcome()
	assert.True(t, done)
	assert.Equal(t, authz.OutcomeCancelled, last.Outcome)
}

func TestOutcomeOnlyWhenFinished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)
	_, done := req.Outcome()
	assert.False(t, done)

	req.Submit(ctx, "0000")
	_, done = req.Outcome()
	assert.False(t, done, "a wrong code leaves the request live")

	f.clk.Set(stepNext)
	assert.True(t, req.Poll(ctx))
	last, done := req.Outcome()
	assert.True(t, done)
	assert.Equal(t, authz.OutcomeExpired, last.Outcome)
	assert.Equal(t, "code expired, start a new request", last.Reason)
	assert.Equal(t, 30*time.Second, f.proto.Interval())
}

func TestGrantIsSingleUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)
	require.True(t, req.Submit(ctx, validCode).Granted())

	replay := req.Submit(ctx, validCode)
	assert.False(t, replay.Granted())
	assert.True(t, replay.Final())
	assert.Equal(t, authz.StateConfirmed, req.State())
}

func TestRequestersDoNotInterfere(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	r1, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)
	r2, err := f.proto.Issue(ctx, patient, admin)
	require.NoError(t, err)

	pend := f.pending(t, patient)
	require.Len(t, pend, 2)
	assert.Equal(t, physician.ID, pend[0].RequesterID)
	assert.Equal(t, admin.ID, pend[1].RequesterID)

	r1.Cancel(ctx)
	pend = f.pending(t, patient)
	require.Len(t, pend, 1)
	assert.Equal(t, r2.ID, pend[0].RequestID)

	assert.True(t, r2.Submit(ctx, validCode).Granted())
	assert.Empty(t, f.pending(t, patient))
}

func TestConcurrentSubmitGrantsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	results := make(chan authz.Result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- req.Submit(ctx, validCode)
		}()
	}
	wg.Wait()
	close(results)

	granted := 0
	for r := range results {
		if r.Granted() {
			granted++
		}
	}
	assert.Equal(t, 1, granted)
	assert.Equal(t, 1, f.obs.seen["granted"])
}

func TestTerminalTransitionsAreAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	granted, _ := f.proto.Issue(ctx, patient, physician)
	granted.Submit(ctx, validCode)
	cancelled, _ := f.proto.Issue(ctx, patient, physician)
	cancelled.Cancel(ctx)
	expired, _ := f.proto.Issue(ctx, patient, physician)
	f.clk.Set(stepNext)
	expired.Submit(ctx, validCode)

	var descs []string
	for _, e := range f.st.Events() {
		descs = append(descs, e.Description)
	}
	require.Len(t, descs, 6)
	assert.Contains(t, descs[1], "granted Physician phy-1 access")
	assert.Contains(t, descs[3], "cancelled access request")
	assert.Contains(t, descs[5], "expired")
	assert.Equal(t, map[string]int{"granted": 1, "cancelled": 1, "expired": 1}, f.obs.seen)
}

type brokenLedger struct{ *memory.Store }

func (brokenLedger) InsertAuthorization(context.Context, *model.AuthorizationRequest) error {
	return errors.New("connection reset")
}

func TestIssueFailureLeavesNothingBehind(t *testing.T) {
	st := memory.New()
	clk := clock.NewManual(stepN)
	gen, err := otp.NewGenerator(secret, 4, 30*time.Second)
	require.NoError(t, err)
	log := logger.Discard()
	proto := authz.New(gen, authz.NewLedger(brokenLedger{st}, clk, log.WithComponent("ledger")),
		audit.New(st, clk, log), clk, log)

	req, err := proto.Issue(context.Background(), patient, physician)
	assert.Error(t, err)
	assert.Nil(t, req)
	assert.Empty(t, st.Events())
	pend, err := st.PendingAuthorizations(context.Background(), patient.ID)
	require.NoError(t, err)
	assert.Empty(t, pend)
}

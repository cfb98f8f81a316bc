package authz_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-consent-api/internal/authz"
)

func TestRegistrySweepExpiresElapsedRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := authz.NewRegistry[string](f.clk, 30*time.Second)

	req, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)
	reg.Add(req, "view_consultations")

	e, ok := reg.Get(req.ID)
	require.True(t, ok)
	assert.Equal(t, "view_consultations", e.Data)

	assert.Equal(t, 0, reg.Sweep(ctx), "live request survives a sweep")
	assert.Equal(t, 1, reg.Len())

	f.clk.Advance(30 * time.Second)
	assert.Equal(t, 0, reg.Sweep(ctx))
	assert.Equal(t, authz.StateExpired, req.State())
	assert.Empty(t, f.pending(t, patient))

	// the tombstone still answers how the request ended
	e, ok = reg.Get(req.ID)
	require.True(t, ok)
	last, done := e.Request.Outcome()
	assert.True(t, done)
	assert.Equal(t, authz.OutcomeExpired, last.Outcome)
}

func TestRegistryEvictsTombstonesAfterRetention(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := authz.NewRegistry[int](f.clk, 30*time.Second)

	req, err := f.proto.Issue(ctx, patient, physician)
	require.NoError(t, err)
	reg.Add(req, 1)
	req.Cancel(ctx)

	assert.Equal(t, 0, reg.Sweep(ctx))
	f.clk.Advance(29 * time.Second)
	assert.Equal(t, 0, reg.Sweep(ctx))
	_, ok := reg.Get(req.ID)
	assert.True(t, ok)

	f.clk.Advance(time.Second)
	assert.Equal(t, 1, reg.Sweep(ctx))
	_, ok = reg.Get(req.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}

func TestRegistryRunStopsWithContext(t *testing.T) {
	f := newFixture(t)
	reg := authz.NewRegistry[int](f.clk, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-consent-api/internal/authz"
	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/logger"
	"clinic-consent-api/internal/store/memory"
)

func TestLedgerLifecycle(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	clk := clock.NewManual(stepN)
	l := authz.NewLedger(st, clk, logger.Discard().WithComponent("ledger"))

	a, err := l.Register(ctx, "pat-1", "phy-1", "1111")
	require.NoError(t, err)
	b, err := l.Register(ctx, "pat-1", "phy-2", "2222")
	require.NoError(t, err)
	_, err = l.Register(ctx, "pat-2", "phy-1", "3333")
	require.NoError(t, err)

	pend, err := l.ListPending(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, pend, 2)
	assert.Equal(t, a, pend[0].RequestID)
	assert.Equal(t, "1111", pend[0].Code)
	assert.True(t, pend[0].IssuedAt.Equal(stepN))
	assert.Equal(t, b, pend[1].RequestID)

	l.Remove(ctx, a)
	l.Remove(ctx, a) // unknown id is a no-op
	pend, err = l.ListPending(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, pend, 1)
	assert.Equal(t, "phy-2", pend[0].RequesterID)

	none, err := l.ListPending(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

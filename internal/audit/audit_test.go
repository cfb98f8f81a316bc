package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-consent-api/internal/audit"
	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/logger"
	"clinic-consent-api/internal/model"
	"clinic-consent-api/internal/store/memory"
)

type failingSink struct{ calls int }

func (f *failingSink) InsertEvent(context.Context, *model.AuditEvent) error {
	f.calls++
	return errors.New("disk full")
}

func TestRecordAppends(t *testing.T) {
	st := memory.New()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	l := audit.New(st, clock.NewManual(now), logger.Discard())

	l.Record(context.Background(), "Patient 1 logged in")
	l.Recordf(context.Background(), "Patient %s logged out", "1")

	events := st.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "Patient 1 logged in", events[0].Description)
	assert.Equal(t, "Patient 1 logged out", events[1].Description)
	assert.True(t, events[0].Timestamp.Equal(now))
	assert.Less(t, events[0].ID, events[1].ID)
}

func TestRecordSwallowsSinkErrors(t *testing.T) {
	sink := &failingSink{}
	l := audit.New(sink, clock.System{}, logger.Discard())

	assert.NotPanics(t, func() {
		l.Record(context.Background(), "Admin 1 logged in")
	})
	assert.Equal(t, 1, sink.calls)
}

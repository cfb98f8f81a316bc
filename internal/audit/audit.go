// Package audit is the append-only record of security and access events.
package audit

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"clinic-consent-api/internal/clock"
	"clinic-consent-api/internal/logger"
	"clinic-consent-api/internal/model"
)

type Sink interface {
	InsertEvent(ctx context.Context, e *model.AuditEvent) error
}

// Recorder is what the rest of the code depends on.
type Recorder interface {
	Record(ctx context.Context, description string)
}

type Log struct {
	sink  Sink
	clock clock.Clock
	log   *logger.Logger
}

func New(sink Sink, clk clock.Clock, log *logger.Logger) *Log {
	return &Log{sink: sink, clock: clk, log: log}
}

// Record appends an event stamped with the current time. A failed write is
// logged and swallowed: the caller's outcome never depends on the audit row.
func (l *Log) Record(ctx context.Context, description string) {
	e := &model.AuditEvent{Timestamp: l.clock.Now(), Description: description}
	if err := l.sink.InsertEvent(ctx, e); err != nil {
		l.log.WithComponent("audit").WithError(err).
			WithField("description", description).Error("audit write failed")
	}
	l.log.Audit(description, logrus.Fields{"event_time": e.Timestamp})
}

func (l *Log) Recordf(ctx context.Context, format string, args ...any) {
	l.Record(ctx, fmt.Sprintf(format, args...))
}

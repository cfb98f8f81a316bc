package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with the audit and security helpers the
// services share.
type Logger struct {
	*logrus.Logger
}

// New creates a JSON logger at the given level; unknown levels fall back to info.
func New(level string) *Logger {
	return NewWithOutput(level, os.Stdout)
}

func NewWithOutput(level string, out io.Writer) *Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	log.SetOutput(out)

	return &Logger{Logger: log}
}

// Discard is a logger for tests.
func Discard() *Logger {
	return NewWithOutput("panic", io.Discard)
}

func (l *Logger) WithComponent(component string) *logrus.Entry {
	return l.Logger.WithField("component", component)
}

func (l *Logger) WithUserID(userID string) *logrus.Entry {
	return l.Logger.WithField("user_id", userID)
}

// Audit mirrors an audit-log row into the structured log.
func (l *Logger) Audit(description string, fields logrus.Fields) {
	l.Logger.WithFields(fields).WithField("audit", true).Info(description)
}

// Security logs events worth alerting on (failed logins, expired consent codes).
func (l *Logger) Security(event, userID string, fields logrus.Fields) {
	l.Logger.WithFields(fields).WithFields(logrus.Fields{
		"security": true,
		"event":    event,
		"user_id":  userID,
	}).Warn("security event")
}

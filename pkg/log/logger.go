package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields is a set of structured fields attached to a log entry.
type Fields map[string]any

// Logger wraps the logrus package to have full control over the exposed functionality,
// and to give callers an easy way to derive loggers with extra fields attached.
type Logger interface {
	// Level returns the current log level.
	Level() Level

	// SetLevel parses and sets the log level.
	SetLevel(str string) error

	// SetOutput sets the destination the logger writes to.
	SetOutput(w io.Writer)

	// WithField derives a logger with a single extra field attached.
	WithField(key string, value any) Logger

	// WithFields derives a logger with the given fields attached.
	WithFields(fields Fields) Logger

	// WithError derives a logger with an error attached as a field.
	WithError(err error) Logger

	// Tracef logs a message at level Trace.
	Tracef(format string, args ...any)

	// Debugf logs a message at level Debug.
	Debugf(format string, args ...any)

	// Infof logs a message at level Info.
	Infof(format string, args ...any)

	// Warnf logs a message at level Warn.
	Warnf(format string, args ...any)

	// Errorf logs a message at level Error.
	Errorf(format string, args ...any)

	// Debug logs a message at level Debug.
	Debug(args ...any)

	// Info logs a message at level Info.
	Info(args ...any)

	// Warn logs a message at level Warn.
	Warn(args ...any)

	// Error logs a message at level Error.
	Error(args ...any)
}

type logger struct {
	entry *logrus.Entry
	level Level
}

// New returns a new Logger instance with the given options applied.
func New(opts ...Option) Logger {
	parent := logrus.New()
	parent.SetLevel(InfoLevel.ToLogrusLevel())

	l := &logger{
		entry: logrus.NewEntry(parent),
		level: InfoLevel,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *logger) Level() Level {
	return l.level
}

func (l *logger) SetLevel(str string) error {
	level, err := ParseLevel(str)
	if err != nil {
		return err
	}

	l.level = level
	l.entry.Logger.SetLevel(level.ToLogrusLevel())

	return nil
}

func (l *logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

func (l *logger) WithField(key string, value any) Logger {
	return &logger{entry: l.entry.WithField(key, value), level: l.level}
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields)), level: l.level}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err), level: l.level}
}

func (l *logger) Tracef(format string, args ...any) {
	l.entry.Tracef(format, args...)
}

func (l *logger) Debugf(format string, args ...any) {
	l.entry.Debugf(format, args...)
}

func (l *logger) Infof(format string, args ...any) {
	l.entry.Infof(format, args...)
}

func (l *logger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *logger) Errorf(format string, args ...any) {
	l.entry.Errorf(format, args...)
}

func (l *logger) Debug(args ...any) {
	l.entry.Debug(args...)
}

func (l *logger) Info(args ...any) {
	l.entry.Info(args...)
}

func (l *logger) Warn(args ...any) {
	l.entry.Warn(args...)
}

func (l *logger) Error(args ...any) {
	l.entry.Error(args...)
}

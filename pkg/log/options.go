package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option is a function to set options for the Logger.
type Option func(*logger)

// WithOutput sets the output destination for the logger.
func WithOutput(w io.Writer) Option {
	return func(l *logger) {
		l.entry.Logger.SetOutput(w)
	}
}

// WithLevel sets the log level for the logger.
func WithLevel(level Level) Option {
	return func(l *logger) {
		l.level = level
		l.entry.Logger.SetLevel(level.ToLogrusLevel())
	}
}

// WithFormatter sets the logrus formatter for the logger.
func WithFormatter(formatter logrus.Formatter) Option {
	return func(l *logger) {
		l.entry.Logger.SetFormatter(formatter)
	}
}

package jiramarkup

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger receives the converter's diagnostics. Debug entries are only sent
// when Verbose is set; Warn is used when a conversion degrades to plain text.
//
// Implementations must be safe for concurrent use.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	WithAttrs(args ...any) Logger
}

// loggerHolder gives the atomic pointer one concrete type whatever Logger
// implementation it carries
type loggerHolder struct {
	Logger
}

var current atomic.Pointer[loggerHolder]

const componentAttr = "jiramarkup/convert"

func newStderrLogger() Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	return SlogLogger(slog.New(handler))
}

// SetLogger replaces the package logger. Passing nil restores the default
// text logger on stderr.
func SetLogger(logger Logger) {
	if logger == nil {
		logger = newStderrLogger()
	}
	current.Store(&loggerHolder{Logger: logger.WithAttrs("component", componentAttr)})
}

// SetSlogLogger is a convenience helper for using a *slog.Logger directly.
func SetSlogLogger(logger *slog.Logger) {
	SetLogger(SlogLogger(logger))
}

// SlogLogger adapts a *slog.Logger to the Logger interface.
func SlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return nil
	}
	return slogLogger{logger}
}

type slogLogger struct {
	*slog.Logger
}

func (s slogLogger) WithAttrs(args ...any) Logger {
	return slogLogger{s.Logger.With(args...)}
}

// conversionLogger returns the package logger, tagged with the conversion id
// when there is one
func conversionLogger(id string) Logger {
	h := current.Load()
	if h == nil {
		SetLogger(nil)
		h = current.Load()
	}
	if id == "" {
		return h.Logger
	}
	return h.WithAttrs("conversion", id)
}

func debugLog(id string, msg string, args ...any) {
	if Verbose {
		conversionLogger(id).Debug(msg, args...)
	}
}

func warnLog(id string, msg string, args ...any) {
	conversionLogger(id).Warn(msg, args...)
}

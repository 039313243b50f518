// Package logging sets up the logrus logger shared by the commands and
// carries request-scoped loggers through a context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

var Levels = []string{"debug", "info", "warn", "error"}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	})
	return log, nil
}

// ParseLevel accepts the names in Levels; "" means info.
func ParseLevel(level string) (logrus.Level, error) {
	switch level {
	case "":
		return logrus.InfoLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "info":
		return logrus.InfoLevel, nil
	case "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	}
	return logrus.InfoLevel, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", level)
}

func FilePath() string {
	return filepath.Join(xdg.StateHome, "headlines", "headlines.log")
}

// OpenFile returns a logger appending to path. The terminal belongs to the
// UI while it runs, so diagnostics go to a file instead.
func OpenFile(path, level string) (*logrus.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	log, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return log, f, nil
}

type ctxKey struct{}

// Into stores l in ctx.
func Into(ctx context.Context, l logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger stored in ctx, or fallback when there is none.
func From(ctx context.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if l, ok := ctx.Value(ctxKey{}).(logrus.FieldLogger); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return logrus.StandardLogger()
}

// Package logging builds the slog logger used for diagnostics.
//
// Diagnostics never go to stdout, which is reserved for converted data and
// comparison verdicts.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/ginjaninja78/ypbank-tools/internal/config"
)

// App is attached to every record.
const App = "ypbank"

// Open builds a logger from cfg. When cfg.LogFile is set the file is opened
// for appending and the returned closer releases it; otherwise records go to
// stderr and the closer does nothing.
func Open(cfg *config.Config, verbose bool) (*slog.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return New(os.Stderr, cfg, verbose), nopCloser{}, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(file, cfg, verbose), file, nil
}

// New builds a logger writing to w. verbose forces debug level.
func New(w io.Writer, cfg *config.Config, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level(cfg.LogLevel, verbose),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.LevelKey:
				a.Key = "severity"
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(&runHandler{Handler: handler, runID: uuid.NewString()})
}

func level(name string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// runHandler tags every record with the application name and an id shared by
// all records of one invocation.
type runHandler struct {
	slog.Handler
	runID string
}

func (h *runHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(slog.String("app", App), slog.String("run_id", h.runID))
	return h.Handler.Handle(ctx, r)
}

func (h *runHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &runHandler{Handler: h.Handler.WithAttrs(attrs), runID: h.runID}
}

func (h *runHandler) WithGroup(name string) slog.Handler {
	return &runHandler{Handler: h.Handler.WithGroup(name), runID: h.runID}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Package logging provides structured logging infrastructure for sr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/scenario-runner/sr/internal/config"
)

// NewFromConfig creates a new slog.Logger based on configuration.
// The returned closer is non-nil when a log file was opened.
func NewFromConfig(cfg *config.Config, baseDir string) (*slog.Logger, io.Closer, error) {
	return NewWithWriter(cfg, baseDir, os.Stderr)
}

// NewWithWriter is NewFromConfig logging to w instead of stderr.
func NewWithWriter(cfg *config.Config, baseDir string, w io.Writer) (*slog.Logger, io.Closer, error) {
	level := parseLevel(cfg.Logging.Level)
	format := resolveFormat(cfg.Logging.Format, w)
	handler := newHandler(format, w, level)

	var closer io.Closer
	if logPath := cfg.LogFile(baseDir); logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return nil, nil, err
		}

		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		closer = file

		multi := io.MultiWriter(w, file)
		handler = newHandler(format, multi, level)
	}

	return slog.New(handler), closer, nil
}

// NewForTest creates a silent logger for tests.
func NewForTest() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// parseLevel converts config log level to slog.Level.
func parseLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveFormat turns LogFormatAuto into text or JSON depending on w.
func resolveFormat(format config.LogFormat, w io.Writer) config.LogFormat {
	if format != config.LogFormatAuto {
		return format
	}
	if IsTerminal(w) {
		return config.LogFormatText
	}
	return config.LogFormatJSON
}

// newHandler creates a slog.Handler based on format.
func newHandler(format config.LogFormat, w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch format {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(w, opts)
	case config.LogFormatText:
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// NewRunID returns a fresh identifier for one scenario run.
func NewRunID() string {
	return "run-" + uuid.NewString()
}

// WithRun returns a logger with run context.
func WithRun(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With("run_id", runID)
}

// WithScenario returns a logger with scenario context.
func WithScenario(logger *slog.Logger, scenario string) *slog.Logger {
	return logger.With("scenario", scenario)
}

// WithAction returns a logger with action context.
func WithAction(logger *slog.Logger, index int, kind string) *slog.Logger {
	return logger.With("action", index, "action_type", kind)
}

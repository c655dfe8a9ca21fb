package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/trackworks/poseoverlay/internal/infrastructure/config"
)

// Logger is the daemon-wide structured logger. It embeds *slog.Logger, so
// call sites use the slog surface directly (Debug/Info/Warn/Error with
// alternating key-value args). Safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New builds a logger from the daemon configuration. Every record carries
// service and version attributes so logs from several overlay instances
// writing to the same collector stay attributable.
func New(cfg config.LoggingConfig, version string) *Logger {
	return NewWithWriter(cfg, version, writerFor(cfg.Output))
}

// NewWithWriter is New with an explicit destination, for tests that need
// to capture output.
func NewWithWriter(cfg config.LoggingConfig, version string, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: levelFor(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	h = h.WithAttrs([]slog.Attr{
		slog.String("service", "poseoverlay"),
		slog.String("version", version),
	})
	return &Logger{Logger: slog.New(h)}
}

// With returns a child logger carrying extra default attributes, typically
// a component name:
//
//	mqttLog := log.With("component", "mqtt")
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default returns a JSON, info-level, stdout logger for the window between
// process start and config load.
func Default() *Logger {
	return New(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}, "dev")
}

func writerFor(output string) io.Writer {
	if strings.EqualFold(output, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}

// levelFor maps a configured level string onto slog. Unknown strings fall
// back to info rather than failing startup over a logging knob.
func levelFor(level string) slog.Level {
	// slog spells it "warn"; accept the long form too.
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	base zerolog.Logger

	// output is where Init points the global logger; tests swap it for a buffer.
	output io.Writer = os.Stdout
)

// Init configures the global logger from the environment.
//
// Environment variables (optional):
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true|false (default: false, JSON lines)
func Init() {
	level := parseLevel(getenv("LOG_LEVEL", "info"))
	pretty := strings.EqualFold(getenv("LOG_PRETTY", "false"), "true")
	base = build(output, level, pretty)
}

func build(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stdout}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// SetOutput redirects the global logger to w and re-reads the environment.
func SetOutput(w io.Writer) {
	output = w
	Init()
}

// L returns the global logger, initializing it on first use.
func L() *zerolog.Logger {
	if base.GetLevel() == zerolog.NoLevel {
		Init()
	}
	return &base
}

// For returns a child of the global logger tagged with component, so parser,
// ingestion and HTTP lines can be told apart in a shared stream. It inherits
// the level and output chosen by Init.
func For(component string) zerolog.Logger {
	return L().With().Str("component", component).Logger()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Package logger owns the process-wide zerolog logger. Packages take tagged
// sub-loggers from Component instead of writing to the global directly.
package logger

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ServiceName is stamped on every log line
const ServiceName = "schooladmin"

// LogLevel is a zerolog level name such as "debug" or "warn"
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	// Disabled silences all output; tests use it.
	Disabled LogLevel = "disabled"
)

// Config represents logger configuration
type Config struct {
	Level LogLevel
	// Pretty enables human-readable console output instead of JSON
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
}

var current atomic.Pointer[zerolog.Logger]

// Configure replaces the process logger. Unknown levels fall back to info.
func Configure(config Config) {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	if config.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(string(config.Level))
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	l := zerolog.New(out).With().Timestamp().Str("service", ServiceName).Logger()
	current.Store(&l)
	log.Logger = l
}

// Get returns the configured logger
func Get() zerolog.Logger {
	return *current.Load()
}

// Component returns a child logger tagged with the component name
func Component(name string) zerolog.Logger {
	return Get().With().Str("component", name).Logger()
}

func Debug() *zerolog.Event { return current.Load().Debug() }

func Info() *zerolog.Event { return current.Load().Info() }

func Warn() *zerolog.Event { return current.Load().Warn() }

func Error() *zerolog.Event { return current.Load().Error() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}

package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/tzvibm/capbit/pkg/config"
)

// Logger is the global logger instance, initialized once by Init and
// shared by the storage, engine, and CLI layers.
var Logger zerolog.Logger

// Init configures the global Logger from cfg.LogLevel and cfg.LogJSON —
// the same Config the CLI already loads from flags, environment variables,
// and an optional YAML file — so there is exactly one place a log level or
// output format is decided, instead of a second Config/Level pair that
// only ever mirrors the CLI's. output is written to; a nil output defaults
// to os.Stdout.
func Init(cfg config.Config, output io.Writer) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if output == nil {
		output = os.Stdout
	}

	if cfg.LogJSON {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// WithComponent creates a child logger scoped to one layer of the engine
// (storage, engine, cli).
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithActor creates a child logger carrying the acting subject's entity id.
func WithActor(subjectID uint64) zerolog.Logger {
	return Logger.With().Uint64("subject_id", subjectID).Logger()
}

// WithObject creates a child logger carrying an object entity id.
func WithObject(objectID uint64) zerolog.Logger {
	return Logger.With().Uint64("object_id", objectID).Logger()
}

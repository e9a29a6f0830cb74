package feedgen

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log formats.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

// LoggerOptions configures the logger made by NewLogger.
type LoggerOptions struct {
	Level  string
	Format string
	Output io.Writer
}

// NewLogger makes a logger which writes to stderr unless another output is provided.
func NewLogger(opts LoggerOptions) zerolog.Logger {
	var output io.Writer = os.Stderr
	if opts.Output != nil {
		output = opts.Output
	}
	if opts.Format != LogFormatJSON {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.TimeOnly,
		}
	}
	return zerolog.New(output).
		Level(parseLogLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

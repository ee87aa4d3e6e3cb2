package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a charm logger writing to stderr with short timestamps
func SetupLogger(level log.Level) *log.Logger {
	return NewLogger(os.Stderr, level)
}

// NewLogger is SetupLogger for an arbitrary writer
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// Level picks the debug level when debug is set, otherwise configured
func Level(debug bool, configured log.Level) log.Level {
	if debug {
		return log.DebugLevel
	}
	return configured
}

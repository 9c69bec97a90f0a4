package gravesdet

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds a structured logger for a Detector. It mirrors the
// teacher's log_init in spirit (one call at startup picks the destination
// and verbosity) but writes structured key/value records instead of CSV
// rows, and is never on the per-sample path: only construction, retune,
// chirp emission and error events are logged.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	if w == nil {
		w = io.Discard
	}
	logger := log.New(w)
	logger.SetLevel(level)
	logger.SetReportTimestamp(true)
	return logger
}

// discardLogger is the default used when a Detector is constructed without
// WithLogger.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

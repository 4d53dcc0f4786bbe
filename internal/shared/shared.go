// package shared holds the config, logging, database and error helpers used across stationer
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates the application [log.Logger] writing to w, with timestamps and caller reporting enabled.
//
// A nil writer logs to [os.Stderr], keeping stdout free for command output.
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{ReportTimestamp: true, ReportCaller: true})
}

// WithLogger returns a child logger that tags every entry with kv, e.g. the run id of a sync.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel applies ll to l. --verbose maps to [log.DebugLevel].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateID returns a random v4 [uuid.UUID] used as the run id that ties together the log lines of one reconciliation.
func GenerateID() string {
	return uuid.New().String()
}

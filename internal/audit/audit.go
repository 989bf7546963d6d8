// Package audit provides the append-only decision log shared by the
// hermit proxy services. Each entry is a single line:
//
//	<RFC3339 UTC timestamp> <fixed-width tag> <message>
//
// The logger is mutex-guarded so connection handlers can share one
// open file handle, and it never reports failure: a log write that
// cannot happen is skipped rather than failing the request it records.
package audit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// EventType tags a log entry. The set is closed; every observable
// decision a service makes maps to exactly one tag.
type EventType string

const (
	// EventListen records the service starting to accept connections.
	EventListen EventType = "LISTEN"
	// EventHelp records a request answered with generated help text.
	EventHelp EventType = "HELP"
	// EventExt records a successful extension command invocation.
	EventExt EventType = "EXT"
	// EventExtErr records an extension command that returned an error.
	EventExtErr EventType = "EXT_ERR"
	// EventAllowed records a request that passed policy validation.
	EventAllowed EventType = "ALLOWED"
	// EventDenied records a request rejected by policy.
	EventDenied EventType = "DENIED"
	// EventInvalid records a request line that could not be parsed.
	EventInvalid EventType = "INVALID"
	// EventExit records the exit code of a proxied subprocess.
	EventExit EventType = "EXIT"
	// EventError records a failure to spawn the underlying tool or a
	// connection-level error.
	EventError EventType = "ERROR"
	// EventRequest records an accepted service-specific request.
	EventRequest EventType = "REQUEST"
	// EventOK records a service-specific request that succeeded.
	EventOK EventType = "OK"
	// EventShutdown records the watchdog-initiated process exit.
	EventShutdown EventType = "SHUTDOWN"
)

// tagWidth pads tags so messages line up in the log.
const tagWidth = 8

// Event is a single audit log entry.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Message   string
}

// Format returns the entry as a log line without a trailing newline.
// The timestamp is always rendered in UTC as YYYY-MM-DDTHH:MM:SSZ.
func (e *Event) Format() string {
	return fmt.Sprintf("%s %-*s %s",
		e.Timestamp.UTC().Format(time.RFC3339), tagWidth, string(e.Type), e.Message)
}

// Logger writes audit events to an io.Writer, one line per event.
// A nil Logger (or one with a nil writer) discards everything, so
// callers never need to guard their log calls.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewLogger creates an audit logger that writes to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Log writes one tagged line. Write errors are deliberately dropped:
// the log must never cause a request to fail.
func (l *Logger) Log(t EventType, format string, args ...any) {
	if l == nil || l.w == nil {
		return
	}

	e := Event{
		Timestamp: l.now(),
		Type:      t,
		Message:   fmt.Sprintf(format, args...),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write([]byte(e.Format() + "\n"))
}

// OpenLogFile opens the audit log in create-or-append mode, creating
// the parent directory owner-only if needed.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return f, nil
}

// LogPathForSocket derives the log file path from a socket path by
// replacing the socket's extension with ".log", so gh-proxy.sock logs
// to gh-proxy.log alongside it.
func LogPathForSocket(socketPath string) string {
	return strings.TrimSuffix(socketPath, filepath.Ext(socketPath)) + ".log"
}

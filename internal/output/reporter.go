package output

import (
	"fmt"
	"io"
	"sync"
)

// Reporter is the user-facing outcome channel shared by all commands.
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Error(msg string)
}

// TerminalReporter writes styled lines: info and success to out, errors to errOut.
type TerminalReporter struct {
	out    io.Writer
	errOut io.Writer
}

// NewTerminalReporter creates a TerminalReporter.
func NewTerminalReporter(out, errOut io.Writer) *TerminalReporter {
	return &TerminalReporter{out: out, errOut: errOut}
}

// Info prints an unadorned line.
func (r *TerminalReporter) Info(msg string) {
	fmt.Fprintln(r.out, msg)
}

// Success prints a checkmark line.
func (r *TerminalReporter) Success(msg string) {
	fmt.Fprintln(r.out, FormatCheckmark(msg))
}

// Error prints a failure line.
func (r *TerminalReporter) Error(msg string) {
	fmt.Fprintln(r.errOut, FormatFailure(msg))
}

// Entry is a single message captured by a RecordingReporter.
type Entry struct {
	Kind    string
	Message string
}

// RecordingReporter keeps every reported message in memory.
type RecordingReporter struct {
	mu      sync.Mutex
	Entries []Entry
}

// Info records an info message.
func (r *RecordingReporter) Info(msg string) { r.add("info", msg) }

// Success records a success message.
func (r *RecordingReporter) Success(msg string) { r.add("success", msg) }

// Error records an error message.
func (r *RecordingReporter) Error(msg string) { r.add("error", msg) }

// Messages returns the messages of the given kind in order.
func (r *RecordingReporter) Messages(kind string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var msgs []string
	for _, e := range r.Entries {
		if e.Kind == kind {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

func (r *RecordingReporter) add(kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, Entry{Kind: kind, Message: msg})
}

package process

import (
	"context"
	"strings"
	"sync"
)

// FakeRunner records commands and returns canned results. Handler, when set,
// decides the outcome of each command.
type FakeRunner struct {
	mu       sync.Mutex
	Commands []Command
	Handler  func(cmd Command) (*Result, error)

	// StreamLines are delivered by Stream.
	StreamLines []string
}

// Run records cmd and returns the Handler result, or an empty success.
func (f *FakeRunner) Run(_ context.Context, cmd Command) (*Result, error) {
	f.mu.Lock()
	f.Commands = append(f.Commands, cmd)
	handler := f.Handler
	f.mu.Unlock()

	if handler == nil {
		return &Result{}, nil
	}
	return handler(cmd)
}

// Stream records cmd and replays StreamLines.
func (f *FakeRunner) Stream(ctx context.Context, cmd Command, fn func(line string)) error {
	f.mu.Lock()
	f.Commands = append(f.Commands, cmd)
	lines := append([]string(nil), f.StreamLines...)
	f.mu.Unlock()

	for _, l := range lines {
		if ctx.Err() != nil {
			return nil
		}
		fn(l)
	}
	return nil
}

// CommandLines returns the recorded commands rendered as strings.
func (f *FakeRunner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, len(f.Commands))
	for i, c := range f.Commands {
		lines[i] = c.String()
	}
	return lines
}

// Joined returns the arguments of cmd joined by spaces.
func Joined(cmd Command) string {
	return strings.Join(cmd.Args, " ")
}

// Package process runs external tools such as gradle, adb and magick.
package process

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/output"
)

// Command is a single external invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is appended to the current environment.
	Env []string
}

// String renders the command line for messages and logs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Result holds the outcome of a finished command.
type Result struct {
	ExitCode int
	Output   string
}

// Runner runs commands to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// StreamRunner runs commands to completion or streams their output.
type StreamRunner interface {
	Runner
	Stream(ctx context.Context, cmd Command, fn func(line string)) error
}

// defaultWaitDelay bounds how long we wait for output pipes after the
// process is killed on cancellation.
const defaultWaitDelay = 5 * time.Second

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	WaitDelay time.Duration
}

// NewExecRunner creates an ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{WaitDelay: defaultWaitDelay}
}

func (r *ExecRunner) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	c.WaitDelay = r.WaitDelay
	return c
}

// Run executes cmd and captures its combined output. A non-zero exit or a
// failure to start is reported as an external process failure.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	output.Debug("running command", "cmd", cmd.String(), "dir", cmd.Dir)

	c := r.command(ctx, cmd)
	out, err := c.CombinedOutput()
	result := &Result{Output: string(out)}
	if err == nil {
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, oerrors.NewProcessError(cmd.String(), result.ExitCode, strings.TrimSpace(result.Output), err)
	}

	result.ExitCode = -1
	return result, oerrors.NewProcessError(cmd.String(), -1, "", err)
}

// Stream executes cmd and calls fn for every line of combined output until
// the process exits or ctx is cancelled. Cancellation is not an error.
func (r *ExecRunner) Stream(ctx context.Context, cmd Command, fn func(line string)) error {
	output.Debug("streaming command", "cmd", cmd.String())

	pr, pw := io.Pipe()
	c := r.command(ctx, cmd)
	c.Stdout = pw
	c.Stderr = pw

	if err := c.Start(); err != nil {
		return oerrors.NewProcessError(cmd.String(), -1, "", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanLines(pr, fn)
	}()

	err := c.Wait()
	pw.Close()
	<-done

	if err == nil || ctx.Err() != nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return oerrors.NewProcessError(cmd.String(), exitErr.ExitCode(), "", err)
	}
	return oerrors.NewProcessError(cmd.String(), -1, "", err)
}

func scanLines(r io.Reader, fn func(string)) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fn(sc.Text())
	}
	// Drain so the writer never blocks after a scan error.
	_, _ = io.Copy(io.Discard, r)
}

// Lines splits command output into trimmed, non-empty lines.
func Lines(s string) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewBufferString(s))
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

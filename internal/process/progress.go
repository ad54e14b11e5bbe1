package process

import (
	"context"

	"github.com/notscripter/compose-cli/internal/output"
)

// progressRunner decorates a Runner with a spinner and an outcome report.
type progressRunner struct {
	next     Runner
	reporter output.Reporter
	title    string
}

// WithProgress wraps runner so every Run shows title as a spinner while the
// command runs and reports success or failure through reporter afterwards.
func WithProgress(runner Runner, reporter output.Reporter, title string) Runner {
	return &progressRunner{next: runner, reporter: reporter, title: title}
}

func (p *progressRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	var result *Result
	err := output.RunWithSpinner(ctx, func() error {
		var runErr error
		result, runErr = p.next.Run(ctx, cmd)
		return runErr
	}, output.WithTitle(p.title))

	if err != nil {
		p.reporter.Error(p.title)
		return result, err
	}
	p.reporter.Success(p.title)
	return result, nil
}

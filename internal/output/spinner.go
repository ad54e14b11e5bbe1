package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// spin shows a spinner titled title until wait returns or ctx is done.
var spin = func(ctx context.Context, title string, wait func()) error {
	return spinner.New().
		Title(title).
		Context(ctx).
		Action(wait).
		Run()
}

var isTTY = IsTTY

// RunWithSpinner executes action while a spinner redraws on a fixed interval.
// When stdout is not a terminal the action runs directly. It returns only
// after action has returned, even when ctx is cancelled or the spinner fails.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title: "Working...",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if !isTTY() {
		return action()
	}

	var actionErr error
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		actionErr = action()
	}()

	spinErr := spin(ctx, cfg.title, func() {
		select {
		case <-finished:
		case <-ctx.Done():
		}
	})
	<-finished

	if actionErr != nil {
		return actionErr
	}
	if spinErr != nil {
		return fmt.Errorf("spinner error: %w", spinErr)
	}
	return nil
}

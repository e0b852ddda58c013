package tui

import (
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerConfig struct {
	writer   io.Writer
	interval time.Duration
}

// SpinnerOption configures RunWithSpinner.
type SpinnerOption func(*spinnerConfig)

// WithWriter sets the spinner destination. Defaults to stderr.
func WithWriter(w io.Writer) SpinnerOption {
	return func(c *spinnerConfig) {
		c.writer = w
	}
}

// WithInterval sets the frame interval.
func WithInterval(d time.Duration) SpinnerOption {
	return func(c *spinnerConfig) {
		c.interval = d
	}
}

// RunWithSpinner runs fn while animating message on a terminal writer.
// Non-terminal writers receive no output.
func RunWithSpinner[T any](message string, fn func() (T, error), opts ...SpinnerOption) (T, error) {
	cfg := spinnerConfig{
		writer:   os.Stderr,
		interval: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !IsWriterTerminal(cfg.writer) {
		return fn()
	}

	tw := &tableWriter{w: cfg.writer}
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(cfg.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			frame := spinnerFrames[i%len(spinnerFrames)]
			tw.printf("\033[2K\r%s%s%s %s", Cyan, frame, Reset, message)

			select {
			case <-stop:
				tw.printf("\033[2K\r")
				return
			case <-ticker.C:
			}
		}
	}()

	result, err := fn()

	close(stop)
	wg.Wait()

	if err != nil {
		return result, err
	}

	return result, tw.Err()
}

// Package effector drives the operating system outputs: audio volume,
// display brightness and media keys.
package effector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no command is set for an output.
var ErrNotConfigured = errors.New("effector command not configured")

// Runner executes one command line.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// ExecRunner runs commands as subprocesses with a timeout.
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner creates an ExecRunner. A non-positive timeout means 2s.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &ExecRunner{Timeout: timeout}
}

// Run executes argv and waits for it to finish. Output on stderr is
// included in the returned error.
func (r *ExecRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%s timed out after %s", argv[0], r.Timeout)
	}

	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s failed: %w, stderr: %s", argv[0], err, msg)
		}
		return fmt.Errorf("%s failed: %w", argv[0], err)
	}

	return nil
}

// Package gateways provides adapters between the domain and the host system.
package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/ochairo/otaupload/internal/domain/entities"
)

// CommandRunner handles execution of the transfer tool
type CommandRunner struct {
	defaultTimeout time.Duration
	waitDelay      time.Duration
}

// defaultWaitDelay bounds how long output pipes are drained after the child is killed
const defaultWaitDelay = 2 * time.Second

// NewCommandRunner creates a runner that waits for the child process with no timeout
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{waitDelay: defaultWaitDelay}
}

// RunConfig contains configuration for running a command.
type RunConfig struct {
	Argv       []string
	WorkingDir string
	Env        map[string]string
	Timeout    time.Duration // zero waits until the process exits
}

// Run executes an invocation synchronously
func (r *CommandRunner) Run(ctx context.Context, inv *entities.Invocation) *entities.InvocationResult {
	return r.RunCommand(ctx, RunConfig{Argv: inv.Argv()})
}

// RunCommand runs a command with the given configuration and captures its output
func (r *CommandRunner) RunCommand(ctx context.Context, config RunConfig) *entities.InvocationResult {
	startTime := time.Now()
	result := &entities.InvocationResult{}

	if len(config.Argv) == 0 {
		result.Error = fmt.Errorf("empty command")
		result.ExitCode = -1
		return result
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = r.defaultTimeout
	}

	execCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	//nolint:gosec // G204: argv is built from the upload target and artifact path
	cmd := exec.CommandContext(execCtx, config.Argv[0], config.Argv[1:]...)
	// Grandchildren holding stdout/stderr open must not keep Run blocked after a kill.
	cmd.WaitDelay = r.waitDelay

	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}

	if len(config.Env) > 0 {
		env := os.Environ()
		for key, value := range config.Env {
			env = append(env, fmt.Sprintf("%s=%s", key, value))
		}
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Error = err
		result.ExitCode = -1

		// A killed child also reports *exec.ExitError, so the context is checked first.
		switch ctxErr := execCtx.Err(); {
		case errors.Is(ctxErr, context.DeadlineExceeded) && timeout > 0 && ctx.Err() == nil:
			result.Error = fmt.Errorf("command timeout after %v: %w", timeout, ctxErr)
		case ctxErr != nil:
			result.Error = fmt.Errorf("command cancelled: %w", ctxErr)
		default:
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				result.ExitCode = exitErr.ExitCode()
			}
		}
		return result
	}

	result.Success = true
	result.ExitCode = 0
	return result
}

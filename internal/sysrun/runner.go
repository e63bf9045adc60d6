// Package sysrun wraps external command execution behind a small interface so
// that components driving system binaries (ping, mountpoint, sshfs, umount,
// ssh, df) can be exercised in tests without touching the host system.
package sysrun

import (
	"context"
	"os/exec"
)

// Runner executes external commands. Implementations must honor the context
// deadline: a command still running when the context expires is killed and
// the call returns the context's error.
type Runner interface {
	// Run executes the command and waits for it, discarding output.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner is the production Runner backed by os/exec.
type ExecRunner struct{}

// NewExecRunner creates a Runner that executes real system commands.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and waits for completion.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Output executes the command and returns its standard output.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

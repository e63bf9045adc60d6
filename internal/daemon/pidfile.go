// Package daemon provides the background reconciliation loop and its
// process-lifecycle plumbing: PID-file single-instance enforcement and
// signal-gated shutdown between cycles.
package daemon

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrNotRunning is returned when no live daemon process is found.
var ErrNotRunning = errors.New("daemon not running")

// ErrAlreadyRunning is returned when a live daemon already holds the PID file.
type ErrAlreadyRunning struct {
	PID int
}

// Error implements the error interface.
func (e *ErrAlreadyRunning) Error() string {
	return fmt.Sprintf("daemon already running (PID: %d)", e.PID)
}

// PIDFile enforces single-instance operation through a PID file.
type PIDFile struct {
	path string
}

// NewPIDFile creates a PIDFile at the given path.
func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the PID file location.
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire writes the current process's PID after verifying no live daemon
// holds the file. A stale PID file (process gone) is removed and replaced.
func (p *PIDFile) Acquire() error {
	if pid, err := p.Read(); err == nil {
		if processAlive(pid) {
			return &ErrAlreadyRunning{PID: pid}
		}
		// Stale PID file from a previous run
		os.Remove(p.path)
	}

	pid := os.Getpid()
	if err := os.WriteFile(p.path, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the PID file.
func (p *PIDFile) Release() {
	os.Remove(p.path)
}

// Read returns the PID recorded in the file.
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID file content: %w", err)
	}
	return pid, nil
}

// Status returns the PID of the live daemon, or ErrNotRunning. A stale PID
// file is removed as a side effect.
func (p *PIDFile) Status() (int, error) {
	pid, err := p.Read()
	if err != nil {
		return 0, err
	}
	if !processAlive(pid) {
		os.Remove(p.path)
		return 0, ErrNotRunning
	}
	return pid, nil
}

// Stop signals the live daemon to terminate, escalating to SIGKILL if it has
// not exited after grace. The PID file is removed once the process is gone.
func (p *PIDFile) Stop(grace time.Duration) (int, error) {
	pid, err := p.Status()
	if err != nil {
		return 0, err
	}

	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return pid, fmt.Errorf("failed to signal daemon: %w", err)
	}

	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			os.Remove(p.path)
			return pid, nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Still running after the grace period
	syscall.Kill(pid, syscall.SIGKILL)
	os.Remove(p.path)
	return pid, nil
}

// processAlive reports whether a process with the given PID exists.
func processAlive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}

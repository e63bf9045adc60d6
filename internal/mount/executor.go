package mount

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/sysrun"
)

// DefaultOptions is the fixed no-cache option set passed to sshfs. Disabling
// attribute and entry caching keeps the mount reflecting remote state
// immediately, trading performance for freshness.
const DefaultOptions = "cache=no,attr_timeout=0,entry_timeout=0"

// Executor performs the sshfs attach operation for a host entry.
type Executor struct {
	runner  sysrun.Runner
	binary  string
	options string
	logger  zerolog.Logger
}

// NewExecutor creates an Executor. Empty binary or options fall back to
// "sshfs" and the default no-cache option set.
func NewExecutor(runner sysrun.Runner, binary string, options string, logger zerolog.Logger) *Executor {
	if binary == "" {
		binary = "sshfs"
	}
	if options == "" {
		options = DefaultOptions
	}
	return &Executor{
		runner:  runner,
		binary:  binary,
		options: options,
		logger:  logger.With().Str("component", "executor").Logger(),
	}
}

// Mount creates the mount point directory if missing and invokes sshfs with
// the fixed option set and the entry's port. It returns the literal command
// representation for diagnostics, the wall-clock duration of the attach, and
// the attach error if any. On failure the mount point directory is left in
// place so a human can inspect or retry.
func (e *Executor) Mount(ctx context.Context, entry model.HostEntry) (string, time.Duration, error) {
	if err := os.MkdirAll(entry.MountPoint, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create mount directory: %w", err)
	}

	args := e.args(entry)
	executedCmd := e.binary + " " + strings.Join(args, " ")

	start := time.Now()
	err := e.runner.Run(ctx, e.binary, args...)
	duration := time.Since(start)

	if err != nil {
		e.logger.Error().
			Str("target", entry.SSHTarget()).
			Int("port", entry.Port).
			Dur("duration", duration).
			Err(err).
			Msg("mount failed")
		return executedCmd, duration, fmt.Errorf("failed to mount %s: %w", entry.RemoteSpec(), err)
	}

	e.logger.Info().
		Str("target", entry.SSHTarget()).
		Int("port", entry.Port).
		Str("mount_point", entry.MountPoint).
		Dur("duration", duration).
		Msg("mounted")

	return executedCmd, duration, nil
}

// args builds the sshfs argument list. The shape (remote spec, mount point,
// -o options with appended port) is a compatibility contract with the sshfs
// binary's argument syntax.
func (e *Executor) args(entry model.HostEntry) []string {
	return []string{
		entry.RemoteSpec(),
		entry.MountPoint,
		"-o", fmt.Sprintf("%s,port=%d", e.options, entry.Port),
	}
}

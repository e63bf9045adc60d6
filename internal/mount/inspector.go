// Package mount implements mount state inspection, stale endpoint recovery,
// and the sshfs mount executor.
package mount

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/sysrun"
)

// defaultReadTimeout bounds the trivial read used to distinguish a healthy
// mount from a stale one. A hung network filesystem blocks reads
// indefinitely, so the bound is what makes staleness observable.
const defaultReadTimeout = 5 * time.Second

// Inspector classifies local mount points. It is read-only and safe to call
// concurrently across different mount points.
type Inspector struct {
	runner      sysrun.Runner
	readTimeout time.Duration
	logger      zerolog.Logger
}

// NewInspector creates an Inspector. A zero readTimeout falls back to the
// default.
func NewInspector(runner sysrun.Runner, readTimeout time.Duration, logger zerolog.Logger) *Inspector {
	if readTimeout <= 0 {
		readTimeout = defaultReadTimeout
	}
	return &Inspector{
		runner:      runner,
		readTimeout: readTimeout,
		logger:      logger.With().Str("component", "inspector").Logger(),
	}
}

// State classifies the mount point as absent, healthy, or stale.
// A path that is not a registered mount is absent; a registered mount whose
// directory listing succeeds within the read timeout is healthy; a registered
// mount whose listing fails or hangs is stale.
func (i *Inspector) State(ctx context.Context, mountPoint string) model.MountState {
	// A missing directory cannot be a registered mount.
	if _, err := os.Stat(mountPoint); os.IsNotExist(err) {
		return model.MountAbsent
	}

	if err := i.runner.Run(ctx, "mountpoint", "-q", mountPoint); err != nil {
		return model.MountAbsent
	}

	readCtx, cancel := context.WithTimeout(ctx, i.readTimeout)
	defer cancel()

	if err := i.runner.Run(readCtx, "ls", mountPoint); err != nil {
		i.logger.Debug().Str("mount_point", mountPoint).Err(err).Msg("mount registered but unresponsive")
		return model.MountStale
	}

	return model.MountHealthy
}

package mount

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/sysrun"
)

// defaultSettle is the pause after each unmount attempt before the mount
// state is re-inspected, giving the kernel time to release the endpoint.
const defaultSettle = 1 * time.Second

// unmountStrategy is one step of the escalating release sequence.
type unmountStrategy struct {
	name    string   // 策略名
	command string   // 可执行文件
	args    []string // 挂载点之前的参数
}

// strategies is the escalation order: graceful FUSE unmount first, then a
// generic forced unmount, finally a lazy unmount that detaches the mount
// point immediately even while I/O is still draining.
var strategies = []unmountStrategy{
	{name: "graceful", command: "fusermount", args: []string{"-u"}},
	{name: "forced", command: "umount", args: nil},
	{name: "lazy", command: "umount", args: []string{"-l"}},
}

// Recovery forces stale mount points back to the absent state.
// It never removes the mount point directory: a mount point may hold user
// data from a prior session and must not be destroyed automatically.
type Recovery struct {
	runner    sysrun.Runner
	inspector *Inspector
	settle    time.Duration
	logger    zerolog.Logger
}

// NewRecovery creates a Recovery. A zero settle duration falls back to the
// default.
func NewRecovery(runner sysrun.Runner, inspector *Inspector, settle time.Duration, logger zerolog.Logger) *Recovery {
	if settle <= 0 {
		settle = defaultSettle
	}
	return &Recovery{
		runner:    runner,
		inspector: inspector,
		settle:    settle,
		logger:    logger.With().Str("component", "recovery").Logger(),
	}
}

// Recover runs the escalating unmount sequence against the mount point,
// stopping at the first strategy after which re-inspection reports absent.
// Each step is idempotent, so repeating the sequence on an already-released
// point is harmless. Failure is non-fatal: the caller proceeds to a fresh
// mount attempt regardless, which fails loudly if the point is truly stuck.
func (r *Recovery) Recover(ctx context.Context, mountPoint string) model.RecoveryOutcome {
	outcome := model.RecoveryOutcome{Attempted: true}

	r.logger.Info().Str("mount_point", mountPoint).Msg("clearing stale endpoint")

	for _, strategy := range strategies {
		args := append(append([]string{}, strategy.args...), mountPoint)
		if err := r.runner.Run(ctx, strategy.command, args...); err != nil {
			r.logger.Debug().
				Str("mount_point", mountPoint).
				Str("strategy", strategy.name).
				Err(err).
				Msg("unmount attempt failed, escalating")
		}

		if !r.sleepSettle(ctx) {
			return outcome
		}

		if r.inspector.State(ctx, mountPoint) == model.MountAbsent {
			outcome.Recovered = true
			outcome.Strategy = strategy.name
			r.logger.Info().
				Str("mount_point", mountPoint).
				Str("strategy", strategy.name).
				Msg("stale endpoint cleared")
			return outcome
		}
	}

	r.logger.Warn().Str("mount_point", mountPoint).Msg("could not fully clear stale endpoint")
	return outcome
}

// sleepSettle waits for the settle period, returning false if the context
// expired first.
func (r *Recovery) sleepSettle(ctx context.Context) bool {
	timer := time.NewTimer(r.settle)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

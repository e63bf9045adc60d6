package daemon

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/notify"
	"sshfs-monitor/internal/service"
)

// Daemon runs reconciliation cycles at a fixed interval until its context is
// cancelled. Cancellation is honored between cycles only: an in-flight cycle
// always runs to completion so that no host is left mid-mount.
type Daemon struct {
	reconciler *service.Reconciler
	entries    []model.HostEntry
	interval   time.Duration
	pidFile    *PIDFile
	webhook    *notify.Webhook
	onCycle    func(*model.CycleReport)
	logger     zerolog.Logger
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithWebhook attaches a cycle-summary webhook notifier.
func WithWebhook(w *notify.Webhook) Option {
	return func(d *Daemon) {
		d.webhook = w
	}
}

// WithCycleHook registers a callback invoked after every completed cycle.
func WithCycleHook(fn func(*model.CycleReport)) Option {
	return func(d *Daemon) {
		d.onCycle = fn
	}
}

// New creates a Daemon.
func New(reconciler *service.Reconciler, entries []model.HostEntry, interval time.Duration, pidFile *PIDFile, logger zerolog.Logger, opts ...Option) *Daemon {
	d := &Daemon{
		reconciler: reconciler,
		entries:    entries,
		interval:   interval,
		pidFile:    pidFile,
		logger:     logger.With().Str("component", "daemon").Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run acquires the PID file, executes an immediate cycle, then loops on the
// configured interval until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if d.pidFile != nil {
		if err := d.pidFile.Acquire(); err != nil {
			return err
		}
		defer d.pidFile.Release()
	}

	d.logger.Info().
		Int("hosts", len(d.entries)).
		Dur("interval", d.interval).
		Msg("守护进程已启动")

	d.runCycle(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("收到退出信号，守护进程停止")
			return nil
		case <-ticker.C:
			d.runCycle(ctx)
		}
	}
}

// runCycle executes one reconciliation pass. The cycle is detached from the
// daemon's cancellation so shutdown never aborts host tasks mid-flight.
func (d *Daemon) runCycle(ctx context.Context) {
	cycleCtx := context.WithoutCancel(ctx)

	report := d.reconciler.Run(cycleCtx, d.entries)

	d.logger.Info().
		Int("total", report.Summary.TotalHosts).
		Int("mounted", report.Summary.MountedHosts).
		Int("already_mounted", report.Summary.AlreadyMounted).
		Int("failures", report.Summary.MountFailures).
		Int("unreachable", report.Summary.Unreachable).
		Str("duration", report.Duration.Round(time.Millisecond).String()).
		Msg("本轮巡检完成")

	if d.webhook != nil {
		if err := d.webhook.NotifyCycle(cycleCtx, report); err != nil {
			d.logger.Warn().Err(err).Msg("发送通知失败")
		}
	}

	if d.onCycle != nil {
		d.onCycle(report)
	}
}

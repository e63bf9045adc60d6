// Package service implements the host reconciliation engine.
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"sshfs-monitor/internal/enrich"
	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/mount"
	"sshfs-monitor/internal/probe"
)

// defaultHostTimeout caps the total wall-clock time one host's state machine
// may take within a cycle. A wedged external command (typically a hung sshfs
// call) would otherwise stall the whole cycle indefinitely.
const defaultHostTimeout = 60 * time.Second

// Reconciler runs the per-host state machine over the host registry and
// assembles the cycle report. It is the sole synchronization point: it
// dispatches one independent task per host and joins them all before
// returning. No state is shared across host tasks; each task owns its result
// slot exclusively.
type Reconciler struct {
	pinger      *probe.Pinger
	inspector   *mount.Inspector
	recovery    *mount.Recovery
	executor    *mount.Executor
	enricher    *enrich.Enricher // nil disables remote enrichment
	concurrency int              // 0 = one task per host
	hostTimeout time.Duration
	logger      zerolog.Logger
}

// ReconcilerOption is a functional option for configuring a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithConcurrency caps the number of host tasks running at once.
// Zero means one task per host.
func WithConcurrency(n int) ReconcilerOption {
	return func(r *Reconciler) {
		r.concurrency = n
	}
}

// WithHostTimeout sets the per-host hard timeout.
func WithHostTimeout(d time.Duration) ReconcilerOption {
	return func(r *Reconciler) {
		if d > 0 {
			r.hostTimeout = d
		}
	}
}

// WithEnricher enables best-effort remote enrichment for mounted hosts.
func WithEnricher(e *enrich.Enricher) ReconcilerOption {
	return func(r *Reconciler) {
		r.enricher = e
	}
}

// NewReconciler creates a Reconciler with the given components.
func NewReconciler(
	pinger *probe.Pinger,
	inspector *mount.Inspector,
	recovery *mount.Recovery,
	executor *mount.Executor,
	logger zerolog.Logger,
	opts ...ReconcilerOption,
) *Reconciler {
	r := &Reconciler{
		pinger:      pinger,
		inspector:   inspector,
		recovery:    recovery,
		executor:    executor,
		hostTimeout: defaultHostTimeout,
		logger:      logger.With().Str("component", "reconciler").Logger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes one reconciliation cycle over the registry: every host's state
// machine runs concurrently and independently, and the call blocks until all
// of them reach a terminal state. The returned report holds one result per
// host in registry order and is immutable once returned. A failure in one
// host's task never affects another host's processing.
func (r *Reconciler) Run(ctx context.Context, entries []model.HostEntry) *model.CycleReport {
	report := model.NewCycleReport(time.Now())

	r.logger.Info().Int("hosts", len(entries)).Msg("starting reconciliation cycle")

	results := make([]*model.HostResult, len(entries))

	g := new(errgroup.Group)
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}

	for i, entry := range entries {
		i, entry := i, entry // Capture loop variables
		g.Go(func() error {
			hostCtx, cancel := context.WithTimeout(ctx, r.hostTimeout)
			defer cancel()

			results[i] = r.reconcileHost(hostCtx, entry)
			return nil // Host failures are contained in the result, never propagated
		})
	}

	// The join barrier: no partial reports.
	_ = g.Wait()

	report.Hosts = results
	report.Finalize(time.Now())

	r.logger.Info().
		Int("total", report.Summary.TotalHosts).
		Int("mounted", report.Summary.MountedHosts).
		Int("failed", report.Summary.MountFailures).
		Int("unreachable", report.Summary.Unreachable).
		Dur("duration", report.Duration).
		Msg("reconciliation cycle completed")

	return report
}

// reconcileHost drives one host through the per-cycle state machine:
//
//	probe unreachable         -> skipped_unreachable
//	inspect healthy           -> already_mounted (+ enrichment)
//	inspect stale             -> recover once, re-inspect, fall through
//	inspect absent (or stuck) -> mount -> mounted | mount_failed
func (r *Reconciler) reconcileHost(ctx context.Context, entry model.HostEntry) *model.HostResult {
	result := model.NewHostResult(entry)

	result.Probe = r.pinger.Probe(ctx, entry.Address)
	if !result.Probe.Reachable {
		result.Action = model.ActionSkippedUnreachable
		r.logger.Info().Str("address", entry.Address).Msg("host not reachable, skipping")
		return result
	}

	state := r.inspector.State(ctx, entry.MountPoint)

	// Recovery runs at most once per host per cycle to bound worst-case cycle
	// latency. A point that is still stale afterwards proceeds to a mount
	// attempt, which fails loudly if the point is truly unusable.
	if state == model.MountStale {
		result.Recovery = r.recovery.Recover(ctx, entry.MountPoint)
		state = r.inspector.State(ctx, entry.MountPoint)
	}
	result.State = state

	if state == model.MountHealthy {
		result.Action = model.ActionAlreadyMounted
		r.enrichResult(ctx, result)
		r.logger.Debug().Str("mount_point", entry.MountPoint).Msg("mount verified")
		return result
	}

	executedCmd, duration, err := r.executor.Mount(ctx, entry)
	result.ExecutedCmd = executedCmd
	result.MountDuration = duration

	if err != nil {
		result.Action = model.ActionMountFailed
		result.Error = err.Error()
		return result
	}

	result.Action = model.ActionMounted
	r.enrichResult(ctx, result)
	return result
}

// enrichResult fills best-effort remote metadata for a mounted host.
func (r *Reconciler) enrichResult(ctx context.Context, result *model.HostResult) {
	if r.enricher == nil {
		return
	}
	result.Remote = r.enricher.Collect(ctx, result.Entry)
}

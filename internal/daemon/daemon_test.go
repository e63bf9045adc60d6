package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/mount"
	"sshfs-monitor/internal/probe"
	"sshfs-monitor/internal/service"
	"sshfs-monitor/internal/sysrun"
)

// noopRunner satisfies sysrun.Runner without touching the system. The daemon
// tests run with an empty registry, so no command is ever issued.
type noopRunner struct{}

func (noopRunner) Run(ctx context.Context, name string, args ...string) error {
	return nil
}

func (noopRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return nil, nil
}

func newTestDaemon(t *testing.T, entries []model.HostEntry, opts ...Option) *Daemon {
	t.Helper()
	logger := zerolog.Nop()
	runner := noopRunner{}
	var r sysrun.Runner = runner
	pinger := probe.NewPinger(r, time.Second, logger)
	inspector := mount.NewInspector(r, time.Second, logger)
	recovery := mount.NewRecovery(r, inspector, time.Millisecond, logger)
	executor := mount.NewExecutor(r, "", "", logger)
	reconciler := service.NewReconciler(pinger, inspector, recovery, executor, logger)

	pidFile := NewPIDFile(filepath.Join(t.TempDir(), "daemon.pid"))
	return New(reconciler, entries, time.Hour, pidFile, logger, opts...)
}

func TestDaemonRun_StopsOnCancelledContext(t *testing.T) {
	cycles := 0
	d := newTestDaemon(t, nil, WithCycleHook(func(report *model.CycleReport) {
		cycles++
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx)

	require.NoError(t, err)
	// The initial cycle always runs even when shutdown is already requested
	assert.Equal(t, 1, cycles)

	// The PID file was released on exit
	_, statErr := os.Stat(d.pidFile.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestDaemonRun_RefusesSecondInstance(t *testing.T) {
	d := newTestDaemon(t, nil)
	require.NoError(t, d.pidFile.Acquire())
	defer d.pidFile.Release()

	err := d.Run(context.Background())
	require.Error(t, err)

	var running *ErrAlreadyRunning
	assert.ErrorAs(t, err, &running)
}

func TestDaemonRun_CycleHookReceivesReport(t *testing.T) {
	var got *model.CycleReport
	d := newTestDaemon(t, nil, WithCycleHook(func(report *model.CycleReport) {
		got = report
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, d.Run(ctx))
	require.NotNil(t, got)
	assert.NotNil(t, got.Summary)
	assert.Equal(t, 0, got.Summary.TotalHosts)
}

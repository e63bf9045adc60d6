package mount

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sshfs-monitor/internal/model"
)

func testEntry(mountPoint string) model.HostEntry {
	return model.HostEntry{
		Address:    "10.0.0.1",
		User:       "root",
		Port:       22,
		RemotePath: "/root",
		MountPoint: mountPoint,
	}
}

func TestMount_CommandShape(t *testing.T) {
	mountPoint := filepath.Join(t.TempDir(), "host1")
	runner := &fakeRunner{}
	executor := NewExecutor(runner, "", "", zerolog.Nop())

	executedCmd, _, err := executor.Mount(context.Background(), testEntry(mountPoint))

	require.NoError(t, err)
	expected := "sshfs root@10.0.0.1:/root/ " + mountPoint +
		" -o cache=no,attr_timeout=0,entry_timeout=0,port=22"
	assert.Equal(t, expected, executedCmd)
}

func TestMount_CreatesMountDirectory(t *testing.T) {
	mountPoint := filepath.Join(t.TempDir(), "nested", "host1")
	runner := &fakeRunner{}
	executor := NewExecutor(runner, "", "", zerolog.Nop())

	_, _, err := executor.Mount(context.Background(), testEntry(mountPoint))

	require.NoError(t, err)
	info, statErr := os.Stat(mountPoint)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestMount_CustomPortAndBinary(t *testing.T) {
	mountPoint := filepath.Join(t.TempDir(), "host1")
	runner := &fakeRunner{}
	executor := NewExecutor(runner, "/usr/local/bin/sshfs", "reconnect", zerolog.Nop())

	entry := testEntry(mountPoint)
	entry.Port = 2222
	entry.User = "deploy"
	entry.RemotePath = "/srv/share"

	executedCmd, _, err := executor.Mount(context.Background(), entry)

	require.NoError(t, err)
	expected := "/usr/local/bin/sshfs deploy@10.0.0.1:/srv/share/ " + mountPoint +
		" -o reconnect,port=2222"
	assert.Equal(t, expected, executedCmd)
}

func TestMount_FailureLeavesDirectoryInPlace(t *testing.T) {
	mountPoint := filepath.Join(t.TempDir(), "host1")
	runner := &fakeRunner{
		handler: func(name string, args []string) error {
			return errors.New("read: Connection reset by peer")
		},
	}
	executor := NewExecutor(runner, "", "", zerolog.Nop())

	executedCmd, duration, err := executor.Mount(context.Background(), testEntry(mountPoint))

	require.Error(t, err)
	// The command is still reported for diagnostics
	assert.NotEmpty(t, executedCmd)
	assert.GreaterOrEqual(t, duration, time.Duration(0))

	// The directory survives for manual inspection
	_, statErr := os.Stat(mountPoint)
	assert.NoError(t, statErr)
}

func TestMount_MkdirFailure(t *testing.T) {
	// A file where a directory is needed makes MkdirAll fail
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	runner := &fakeRunner{}
	executor := NewExecutor(runner, "", "", zerolog.Nop())

	entry := testEntry(filepath.Join(blocker, "host1"))
	executedCmd, _, err := executor.Mount(context.Background(), entry)

	require.Error(t, err)
	assert.Empty(t, executedCmd)
	// sshfs was never invoked
	assert.Empty(t, runner.calls)
}

package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// dfRunner returns canned df output.
type dfRunner struct {
	output string
	err    error
}

func (d *dfRunner) Run(ctx context.Context, name string, args ...string) error {
	return d.err
}

func (d *dfRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return []byte(d.output), d.err
}

func TestDiskUsage_ParsesDfOutput(t *testing.T) {
	runner := &dfRunner{
		output: "Filesystem      Size  Used Avail Use% Mounted on\n" +
			"root@10.0.0.1:  492G  233G  234G  50% /mnt/sshfs/host1\n",
	}

	percent, detail, ok := DiskUsage(context.Background(), runner, "/mnt/sshfs/host1")

	assert.True(t, ok)
	assert.Equal(t, 50, percent)
	assert.Equal(t, "492G used: 233G (50%)", detail)
}

func TestDiskUsage_CommandFailure(t *testing.T) {
	runner := &dfRunner{err: errors.New("df: no such file or directory")}

	_, _, ok := DiskUsage(context.Background(), runner, "/mnt/sshfs/host1")

	assert.False(t, ok)
}

func TestDiskUsage_MalformedOutput(t *testing.T) {
	runner := &dfRunner{output: "Filesystem\n"}

	_, _, ok := DiskUsage(context.Background(), runner, "/mnt/sshfs/host1")

	assert.False(t, ok)
}

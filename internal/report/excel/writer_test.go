package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sshfs-monitor/internal/model"
)

func newTestReport() *model.CycleReport {
	report := model.NewCycleReport(time.Now().Add(-5 * time.Second))
	report.Hosts = []*model.HostResult{
		{
			Entry:  model.HostEntry{Address: "10.0.0.1", User: "root", Port: 22, RemotePath: "/root", MountPoint: "/mnt/sshfs/host1"},
			Probe:  model.ProbeOutcome{Reachable: true, RTTDisplay: "0.42"},
			State:  model.MountHealthy,
			Action: model.ActionAlreadyMounted,
			Remote: model.RemoteInfo{Hostname: "storage-01", Uptime: "12 days", MAC: "52:54:00:ab:cd:ef"},
		},
		{
			Entry:       model.HostEntry{Address: "10.0.0.2", User: "root", Port: 2222, RemotePath: "/srv", MountPoint: "/mnt/sshfs/host2"},
			Probe:       model.ProbeOutcome{Reachable: true, RTTDisplay: "1.10"},
			State:       model.MountAbsent,
			Action:      model.ActionMountFailed,
			ExecutedCmd: "sshfs root@10.0.0.2:/srv/ /mnt/sshfs/host2 -o cache=no,attr_timeout=0,entry_timeout=0,port=2222",
			Error:       "failed to mount root@10.0.0.2:/srv/: exit status 1",
			Remote:      model.NewUnavailableRemoteInfo(),
		},
	}
	report.Finalize(time.Now())
	return report
}

func TestWrite_CreatesWorkbook(t *testing.T) {
	w := NewWriter(time.UTC)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, w.Write(newTestReport(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, sheetSummary)
	assert.Contains(t, sheets, sheetDetail)
	assert.NotContains(t, sheets, defaultSheet)
}

func TestWrite_DetailSheetRows(t *testing.T) {
	w := NewWriter(time.UTC)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, w.Write(newTestReport(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetDetail)
	require.NoError(t, err)
	// Header row plus one row per host
	require.Len(t, rows, 3)
	assert.Equal(t, detailHeaders[0], rows[0][0])
	assert.Equal(t, "root@10.0.0.1", rows[1][0])
	assert.Equal(t, "root@10.0.0.2", rows[2][0])
}

func TestWrite_AppendsXlsxExtension(t *testing.T) {
	w := NewWriter(time.UTC)
	base := filepath.Join(t.TempDir(), "report")

	require.NoError(t, w.Write(newTestReport(), base))

	_, err := excelize.OpenFile(base + ".xlsx")
	assert.NoError(t, err)
}

func TestWrite_NilReport(t *testing.T) {
	w := NewWriter(time.UTC)

	err := w.Write(nil, filepath.Join(t.TempDir(), "report.xlsx"))
	require.Error(t, err)
}

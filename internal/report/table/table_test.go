package table

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sshfs-monitor/internal/model"
)

func newTestReport() *model.CycleReport {
	report := model.NewCycleReport(time.Now().Add(-time.Second))
	report.Hosts = []*model.HostResult{
		{
			Entry:  model.HostEntry{Address: "10.0.0.1", User: "root", Port: 22, RemotePath: "/root", MountPoint: "/mnt/sshfs/host1"},
			Probe:  model.ProbeOutcome{Reachable: true, RTTDisplay: "0.42"},
			Action: model.ActionAlreadyMounted,
		},
		{
			Entry:       model.HostEntry{Address: "10.0.0.2", User: "root", Port: 22, RemotePath: "/root", MountPoint: "/mnt/sshfs/host2"},
			Probe:       model.ProbeOutcome{Reachable: true, RTTDisplay: "1.10"},
			Action:      model.ActionMounted,
			ExecutedCmd: "sshfs root@10.0.0.2:/root/ /mnt/sshfs/host2 -o cache=no,attr_timeout=0,entry_timeout=0,port=22",
		},
		{
			Entry:  model.HostEntry{Address: "10.0.0.3", User: "root", Port: 22, RemotePath: "/root", MountPoint: "/mnt/sshfs/host3"},
			Probe:  model.ProbeOutcome{Reachable: false, RTTDisplay: model.Unavailable},
			Action: model.ActionSkippedUnreachable,
		},
	}
	report.Finalize(time.Now())
	return report
}

func TestPrint_RendersAllSections(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, nil)

	printer.Print(context.Background(), newTestReport())
	out := buf.String()

	// Per-host table
	assert.Contains(t, out, "SSHFS 挂载统计")
	assert.Contains(t, out, "root@10.0.0.1")
	assert.Contains(t, out, "root@10.0.0.3")
	assert.Contains(t, out, "UNREACHABLE")

	// Summary block
	assert.Contains(t, out, "配置主机数: 3")
	assert.Contains(t, out, "可达主机数: 2")
	assert.Contains(t, out, "已挂载主机数: 2")
	assert.Contains(t, out, "成功率: 100%")

	// Active mounts listed without disk usage (nil runner)
	assert.Contains(t, out, "/mnt/sshfs/host1 -> root@10.0.0.1:22:/root/")
	assert.Contains(t, out, model.Unavailable)

	// Executed command debug section
	assert.Contains(t, out, "sshfs root@10.0.0.2:/root/")
}

func TestPrint_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, nil)

	report := model.NewCycleReport(time.Now())
	report.Finalize(time.Now())
	printer.Print(context.Background(), report)

	out := buf.String()
	assert.Contains(t, out, "配置主机数: 0")
	assert.Contains(t, out, "成功率: 0%")
}

// Package table renders a cycle report as a console statistics table for the
// one-shot run mode.
package table

import (
	"context"
	"fmt"
	"io"
	"time"

	"sshfs-monitor/internal/enrich"
	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/sysrun"
)

// Printer writes the one-shot statistics table.
type Printer struct {
	out    io.Writer
	runner sysrun.Runner // for best-effort df lookups; nil skips usage lines
}

// NewPrinter creates a Printer writing to out. runner may be nil, in which
// case active-mount disk usage lines are omitted.
func NewPrinter(out io.Writer, runner sysrun.Runner) *Printer {
	return &Printer{out: out, runner: runner}
}

// Print renders the full statistics block: per-host table, summary, active
// mount listing, and the executed-command debug section.
func (p *Printer) Print(ctx context.Context, report *model.CycleReport) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "==================== SSHFS 挂载统计 ====================")
	fmt.Fprintf(p.out, "%-22s %-12s %-12s %-12s %-20s\n", "HOST", "STATUS", "PING", "PROBE", "MOUNT")
	fmt.Fprintln(p.out, "--------------------------------------------------------")

	for _, host := range report.Hosts {
		if host == nil {
			continue
		}
		fmt.Fprintf(p.out, "%-22s %-12s %-12s %-12s %-20s\n",
			host.Entry.SSHTarget(),
			statusLabel(host),
			host.Probe.RTTDisplay,
			fmt.Sprintf("%.3fs", host.Probe.Duration.Seconds()),
			mountLabel(host),
		)
	}

	fmt.Fprintln(p.out, "========================================================")
	fmt.Fprintln(p.out, "汇总:")
	fmt.Fprintf(p.out, "  配置主机数: %d\n", report.Summary.TotalHosts)
	fmt.Fprintf(p.out, "  可达主机数: %d\n", report.Summary.ReachableHosts)
	fmt.Fprintf(p.out, "  已挂载主机数: %d\n", report.Summary.MountedHosts)
	if report.Summary.Recovered > 0 {
		fmt.Fprintf(p.out, "  恢复的陈旧挂载: %d\n", report.Summary.Recovered)
	}

	successRate := 0
	if report.Summary.ReachableHosts > 0 {
		successRate = report.Summary.MountedHosts * 100 / report.Summary.ReachableHosts
	}
	fmt.Fprintf(p.out, "  成功率: %d%%\n", successRate)
	fmt.Fprintln(p.out)

	p.printActiveMounts(ctx, report)
	p.printExecutedCommands(report)

	fmt.Fprintf(p.out, "总耗时: %.3fs\n", report.Duration.Seconds())
}

// printActiveMounts lists mounted hosts with best-effort disk usage.
func (p *Printer) printActiveMounts(ctx context.Context, report *model.CycleReport) {
	if report.Summary.MountedHosts == 0 {
		return
	}

	fmt.Fprintln(p.out, "当前挂载点:")
	for _, host := range report.Hosts {
		if host == nil || !host.Mounted() {
			continue
		}

		usage := model.Unavailable
		if p.runner != nil {
			dfCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if _, detail, ok := enrich.DiskUsage(dfCtx, p.runner, host.Entry.MountPoint); ok {
				usage = detail
			}
			cancel()
		}

		fmt.Fprintf(p.out, "  %s -> %s:%d:%s/ [%s]\n",
			host.Entry.MountPoint, host.Entry.SSHTarget(), host.Entry.Port, host.Entry.RemotePath, usage)
	}
	fmt.Fprintln(p.out)
}

// printExecutedCommands is the debug section: the literal sshfs commands this
// cycle issued, or the reason none ran.
func (p *Printer) printExecutedCommands(report *model.CycleReport) {
	fmt.Fprintln(p.out, "本周期执行的挂载命令:")
	for _, host := range report.Hosts {
		if host == nil {
			continue
		}
		switch {
		case host.ExecutedCmd != "":
			fmt.Fprintf(p.out, "  %s\n", host.ExecutedCmd)
		case host.Action == model.ActionAlreadyMounted:
			fmt.Fprintf(p.out, "  %s: 已挂载，未执行命令\n", host.Entry.SSHTarget())
		case host.Action == model.ActionSkippedUnreachable:
			fmt.Fprintf(p.out, "  %s: 主机不可达，未执行命令\n", host.Entry.SSHTarget())
		default:
			fmt.Fprintf(p.out, "  %s: 未执行命令\n", host.Entry.SSHTarget())
		}
	}
	fmt.Fprintln(p.out, "========================================================")
}

// statusLabel renders the reachability column.
func statusLabel(host *model.HostResult) string {
	if host.Probe.Reachable {
		return "REACHABLE"
	}
	return "UNREACHABLE"
}

// mountLabel renders the mount outcome column.
func mountLabel(host *model.HostResult) string {
	switch host.Action {
	case model.ActionAlreadyMounted:
		return "ALREADY MOUNTED"
	case model.ActionMounted:
		return fmt.Sprintf("SUCCESS (%.3fs)", host.MountDuration.Seconds())
	case model.ActionMountFailed:
		return fmt.Sprintf("FAILED (%.3fs)", host.MountDuration.Seconds())
	case model.ActionSkippedUnreachable:
		return model.Unavailable
	default:
		return model.Unavailable
	}
}

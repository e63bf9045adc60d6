// Package dashboard renders a cycle report as a live ANSI terminal dashboard.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"sshfs-monitor/internal/enrich"
	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/sysrun"
)

// ANSI escape sequences for the dashboard rendering.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorBlue  = "\033[34m"
	colorCyan  = "\033[36m"
	colorWhite = "\033[37m"
	bgRed      = "\033[41m"
	bgGreen    = "\033[42m"
	bgYellow   = "\033[43m"

	clearScreen = "\033[H\033[2J"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// boxWidth is the interior width of the header and summary boxes.
const boxWidth = 62

// Dashboard renders cycle reports to a terminal.
type Dashboard struct {
	out    io.Writer
	runner sysrun.Runner // for best-effort df lookups; nil skips usage bars
}

// New creates a Dashboard writing to out. runner may be nil, in which case
// disk usage bars render as N/A.
func New(out io.Writer, runner sysrun.Runner) *Dashboard {
	return &Dashboard{out: out, runner: runner}
}

// Render clears the screen and draws the full dashboard for one cycle.
// nextCheck is zero for a one-off snapshot; a positive value renders the
// refresh footer used by the watch loop.
func (d *Dashboard) Render(ctx context.Context, report *model.CycleReport, nextCheck time.Duration) {
	fmt.Fprint(d.out, hideCursor, clearScreen)

	local := enrich.CollectLocal(ctx)
	d.renderHeader(local)

	for i, host := range report.Hosts {
		if host == nil {
			continue
		}
		d.renderHost(ctx, i, host)
	}

	d.renderSummary(report)

	fmt.Fprintf(d.out, "%s最近更新: %s%s\n", colorDim, time.Now().Format("2006-01-02 15:04:05"), colorReset)
	if nextCheck > 0 {
		fmt.Fprintf(d.out, "%s下次刷新: %s | Ctrl+C 退出%s\n", colorDim, nextCheck, colorReset)
	}

	fmt.Fprint(d.out, showCursor)
}

// ShowCursor restores the terminal cursor; the watch loop calls this on exit.
func (d *Dashboard) ShowCursor() {
	fmt.Fprint(d.out, showCursor)
}

// renderHeader draws the boxed header with local machine facts.
func (d *Dashboard) renderHeader(local enrich.LocalInfo) {
	top := "╔" + strings.Repeat("═", boxWidth) + "╗"
	bottom := "╚" + strings.Repeat("═", boxWidth) + "╝"

	fmt.Fprintf(d.out, "%s%s%s%s\n", colorBold, colorCyan, top, colorReset)
	d.boxLine(centerText("SSHFS 挂载监控", boxWidth))
	d.boxLine(fmt.Sprintf("  本机: %s | 运行: %s", local.Hostname, local.Uptime))
	d.boxLine(fmt.Sprintf("  MAC: %s", local.MAC))
	fmt.Fprintf(d.out, "%s%s%s%s\n\n", colorBold, colorCyan, bottom, colorReset)
}

// boxLine draws one padded interior line of the header box.
func (d *Dashboard) boxLine(content string) {
	padding := boxWidth - displayWidth(content)
	if padding < 0 {
		padding = 0
	}
	fmt.Fprintf(d.out, "%s%s║%s%s%s║%s\n",
		colorBold, colorCyan, colorReset+content+strings.Repeat(" ", padding), colorBold, colorCyan, colorReset)
}

// renderHost draws one host's status line(s).
func (d *Dashboard) renderHost(ctx context.Context, index int, host *model.HostResult) {
	badge := statusBadge(host)
	label := fmt.Sprintf("Host %d", index+1)

	if !host.Probe.Reachable {
		fmt.Fprintf(d.out, "  %s %s (%s) | 延迟: N/A | 挂载: 不可用\n", badge, label, host.Entry.SSHTarget())
		fmt.Fprintf(d.out, "    %s└─ MAC: N/A%s\n", colorDim, colorReset)
		return
	}

	if host.Mounted() {
		usage := d.usageBar(ctx, host.Entry.MountPoint)
		fmt.Fprintf(d.out, "  %s %s (%s) | 主机: %s | 延迟: %s | 挂载: %s %s | 运行: %s\n",
			badge, label, host.Entry.SSHTarget(), host.Remote.Hostname,
			host.Probe.RTTDisplay, host.Entry.MountPoint, usage, host.Remote.Uptime)
	} else {
		fmt.Fprintf(d.out, "  %s %s (%s) | 延迟: %s | 挂载: 失败 | %s\n",
			badge, label, host.Entry.SSHTarget(), host.Probe.RTTDisplay, host.Error)
	}
	fmt.Fprintf(d.out, "    %s└─ MAC: %s%s\n", colorDim, host.Remote.MAC, colorReset)
}

// renderSummary draws the summary box.
func (d *Dashboard) renderSummary(report *model.CycleReport) {
	top := "┌─ 汇总 " + strings.Repeat("─", boxWidth-8) + "┐"
	bottom := "└" + strings.Repeat("─", boxWidth) + "┘"

	successRate := 0
	if report.Summary.TotalHosts > 0 {
		successRate = report.Summary.ReachableHosts * 100 / report.Summary.TotalHosts
	}

	line := fmt.Sprintf(" 主机: %d │ 在线: %d │ 已挂载: %d │ 成功率: %d%%",
		report.Summary.TotalHosts, report.Summary.ReachableHosts,
		report.Summary.MountedHosts, successRate)
	padding := boxWidth - displayWidth(line)
	if padding < 0 {
		padding = 0
	}

	fmt.Fprintf(d.out, "\n%s%s%s%s\n", colorBold, colorBlue, top, colorReset)
	fmt.Fprintf(d.out, "%s%s│%s%s%s│%s\n",
		colorBold, colorBlue, colorReset+line+strings.Repeat(" ", padding), colorBold, colorBlue, colorReset)
	fmt.Fprintf(d.out, "%s%s%s%s\n\n", colorBold, colorBlue, bottom, colorReset)
}

// usageBar renders a ten-segment disk usage bar for a mounted path.
func (d *Dashboard) usageBar(ctx context.Context, path string) string {
	if d.runner == nil {
		return "[N/A]"
	}

	dfCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	percent, _, ok := enrich.DiskUsage(dfCtx, d.runner, path)
	if !ok {
		return "[N/A]"
	}

	filled := percent / 10
	var bar strings.Builder
	for i := 0; i < 10; i++ {
		if i < filled {
			bar.WriteString("█")
		} else {
			bar.WriteString("░")
		}
	}
	return fmt.Sprintf("[%s %d%%]", bar.String(), percent)
}

// statusBadge picks the colored badge for a host's terminal state.
func statusBadge(host *model.HostResult) string {
	switch {
	case !host.Probe.Reachable:
		return fmt.Sprintf("%s%s%s OFFLINE %s", bgRed, colorWhite, colorBold, colorReset)
	case host.Mounted():
		return fmt.Sprintf("%s%s%s ONLINE  %s", bgGreen, colorBlue, colorBold, colorReset)
	case host.State == model.MountStale:
		return fmt.Sprintf("%s%s%s STALE   %s", bgYellow, colorBlue, colorBold, colorReset)
	default:
		return fmt.Sprintf("%s%s%s CONN-ERR%s", bgYellow, colorBlue, colorBold, colorReset)
	}
}

// centerText centers s within width display cells.
func centerText(s string, width int) string {
	w := displayWidth(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// displayWidth approximates the terminal cell width of s, counting CJK runes
// as two cells.
func displayWidth(s string) int {
	width := 0
	for _, r := range s {
		if r >= 0x1100 && (r <= 0x115F || (r >= 0x2E80 && r <= 0xA4CF) ||
			(r >= 0xAC00 && r <= 0xD7A3) || (r >= 0xF900 && r <= 0xFAFF) ||
			(r >= 0xFE30 && r <= 0xFE4F) || (r >= 0xFF00 && r <= 0xFF60) ||
			(r >= 0xFFE0 && r <= 0xFFE6)) {
			width += 2
		} else {
			width++
		}
	}
	return width
}

// Package cmd implements CLI commands for the SSHFS mount monitor.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sshfs-monitor/internal/report/dashboard"
	"sshfs-monitor/internal/sysrun"
)

// Command flags
var (
	watchRefresh time.Duration // Dashboard refresh interval override
	watchOnce    bool          // Render a single snapshot and exit
)

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "实时挂载状态看板",
	Long: `在终端持续刷新挂载状态看板：每个主机一行，显示在线状态、
延迟、挂载点磁盘用量条以及本机信息。按 Ctrl+C 退出。

注意: 看板每次刷新都会执行一轮完整巡检（含恢复与挂载），
刷新间隔不宜设置过短。

示例:
  # 默认 3 秒刷新
  sshfsmon watch

  # 10 秒刷新一次
  sshfsmon watch --refresh 10s

  # 只渲染一帧快照
  sshfsmon watch --once`,
	Run: runWatch,
}

// dashboardCmd renders a single dashboard snapshot and exits.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "渲染一帧挂载状态快照",
	Long:  "执行一轮巡检并渲染一帧挂载状态看板，随后立即退出。适合在脚本或 cron 中截取当前状态。",
	Run: func(cmd *cobra.Command, args []string) {
		watchOnce = true
		runWatch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(dashboardCmd)

	watchCmd.Flags().DurationVar(&watchRefresh, "refresh", 0, "刷新间隔（覆盖配置文件）")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "渲染一帧快照后退出")
}

// runWatch drives the dashboard refresh loop.
func runWatch(cmd *cobra.Command, args []string) {
	cfg, entries, logger := loadEnvironment()

	refresh := cfg.Watch.Refresh
	if watchRefresh > 0 {
		refresh = watchRefresh
	}

	runner := sysrun.NewExecRunner()
	reconciler := buildReconciler(cfg, runner, logger)
	board := dashboard.New(os.Stdout, runner)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer board.ShowCursor()

	for {
		cycleCtx := context.WithoutCancel(ctx)
		cycleReport := reconciler.Run(cycleCtx, entries)

		// A one-shot snapshot has no next refresh, so no footer.
		if watchOnce {
			board.Render(cycleCtx, cycleReport, 0)
			return
		}
		board.Render(cycleCtx, cycleReport, refresh)

		select {
		case <-ctx.Done():
			return
		case <-time.After(refresh):
		}
	}
}

// Package cmd implements CLI commands for the SSHFS mount monitor.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sshfs-monitor/internal/daemon"
	"sshfs-monitor/internal/notify"
	"sshfs-monitor/internal/sysrun"
)

// stopGrace is how long `daemon stop` waits before escalating to SIGKILL.
const stopGrace = 90 * time.Second

// daemonCmd groups the daemon lifecycle subcommands.
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "管理常驻巡检守护进程",
	Long: `管理后台巡检守护进程。守护进程按配置的间隔持续执行挂载巡检，
通过 PID 文件保证同一时间只有一个实例在运行。

收到退出信号后，进行中的巡检周期会完整执行完毕再退出。`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// daemonStartCmd starts the reconciliation loop in the foreground.
var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "启动守护进程（前台运行）",
	Long: `在前台启动巡检守护进程，立即执行一次巡检，之后按
daemon.interval 配置的间隔循环执行。配合 systemd 或 nohup 可实现后台常驻。

示例:
  sshfsmon daemon start -c config.yaml`,
	Run: runDaemonStart,
}

// daemonStopCmd signals a running daemon to exit.
var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "停止守护进程",
	Run:   runDaemonStop,
}

// daemonStatusCmd reports whether a daemon is running.
var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "查看守护进程状态",
	Run:   runDaemonStatus,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
}

// runDaemonStart executes the daemon loop until SIGINT/SIGTERM.
func runDaemonStart(cmd *cobra.Command, args []string) {
	printBanner()

	cfg, entries, logger := loadEnvironment()
	fmt.Printf("📋 已加载 %d 台主机: %s\n", len(entries), cfg.Inventory.Path)
	fmt.Printf("🔁 巡检间隔: %s\n", cfg.Daemon.Interval)

	runner := sysrun.NewExecRunner()
	reconciler := buildReconciler(cfg, runner, logger)
	pidFile := daemon.NewPIDFile(cfg.Daemon.PIDFile)

	opts := []daemon.Option{}
	if cfg.Notify.Enabled {
		opts = append(opts, daemon.WithWebhook(notify.NewWebhook(&cfg.Notify, logger)))
	}
	d := daemon.New(reconciler, entries, cfg.Daemon.Interval, pidFile, logger, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := d.Run(ctx); err != nil {
		var running *daemon.ErrAlreadyRunning
		if errors.As(err, &running) {
			fmt.Fprintf(os.Stderr, "❌ 守护进程已在运行 (PID: %d)\n", running.PID)
		} else {
			fmt.Fprintf(os.Stderr, "❌ 守护进程启动失败: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("👋 守护进程已退出")
}

// runDaemonStop stops the running daemon via its PID file.
func runDaemonStop(cmd *cobra.Command, args []string) {
	cfg, err := loadConfigOnly()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 加载配置失败: %v\n", err)
		os.Exit(1)
	}

	pidFile := daemon.NewPIDFile(cfg.Daemon.PIDFile)
	pid, err := pidFile.Stop(stopGrace)
	if err != nil {
		if errors.Is(err, daemon.ErrNotRunning) {
			fmt.Println("ℹ️  守护进程未在运行")
			return
		}
		fmt.Fprintf(os.Stderr, "❌ 停止守护进程失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ 守护进程已停止 (PID: %d)\n", pid)
}

// runDaemonStatus reports the daemon's PID or that it is not running.
func runDaemonStatus(cmd *cobra.Command, args []string) {
	cfg, err := loadConfigOnly()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ 加载配置失败: %v\n", err)
		os.Exit(1)
	}

	pidFile := daemon.NewPIDFile(cfg.Daemon.PIDFile)
	pid, err := pidFile.Status()
	if err != nil {
		if errors.Is(err, daemon.ErrNotRunning) {
			fmt.Println("ℹ️  守护进程未在运行")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "❌ 查询守护进程状态失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ 守护进程运行中 (PID: %d)\n", pid)
}

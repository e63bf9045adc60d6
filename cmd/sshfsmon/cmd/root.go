// Package cmd provides CLI commands for the SSHFS mount monitor.
package cmd

import (
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information, injected at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Global flags
var (
	cfgFile  string // Config file path
	logLevel string // Log level
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sshfsmon",
	Short: "SSHFS 挂载监控工具 - 远程目录挂载巡检与自动恢复",
	Long: `SSHFS 挂载监控工具按周期对主机清单执行挂载巡检：
探测主机可达性，检查挂载点健康状态，自动卸载失效挂载点
并重新执行 sshfs 挂载，最终汇总生成巡检报告。

数据流: 主机清单 → ping 探测 → 挂载点检查 → 恢复/挂载 → Excel/JSON 报告

主要功能:
  - 并发巡检清单中的所有主机，单主机故障互不影响
  - 识别失效（stale）挂载点并按梯度策略卸载恢复
  - 采集远端主机名、运行时长与 MAC 地址等元信息
  - 支持一次性巡检、常驻守护进程与实时看板三种模式`,
	Version: Version,
	// Run displays help when called without any subcommands
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// init initializes the root command and its flags.
func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "配置文件路径")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "日志级别 (debug, info, warn, error)")

	// Customize version template
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// GetConfigFile returns the config file path from command line flag.
func GetConfigFile() string {
	return cfgFile
}

// GetLogLevel returns the log level from command line flag.
func GetLogLevel() string {
	return logLevel
}

// GetVersionInfo returns formatted version information.
func GetVersionInfo() string {
	return Version + "\n" +
		"Build Time: " + BuildTime + "\n" +
		"Git Commit: " + GitCommit + "\n" +
		"Go Version: " + runtime.Version() + "\n" +
		"OS/Arch: " + runtime.GOOS + "/" + runtime.GOARCH
}

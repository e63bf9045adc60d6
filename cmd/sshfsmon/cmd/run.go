// Package cmd implements CLI commands for the SSHFS mount monitor.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"sshfs-monitor/internal/config"
	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/notify"
	"sshfs-monitor/internal/report"
	"sshfs-monitor/internal/report/table"
	"sshfs-monitor/internal/sysrun"
)

// Command flags
var (
	outputDir  string   // Output directory for reports
	formats    []string // Output formats (excel, json)
	skipReport bool     // Skip report file generation
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "执行一次挂载巡检",
	Long: `执行一次完整的挂载巡检流程，包括：
1. 加载配置与主机清单
2. 并发探测主机可达性（ping）
3. 检查挂载点状态（缺失 / 健康 / 失效）
4. 对失效挂载点按梯度策略卸载恢复
5. 对未挂载主机执行 sshfs 挂载
6. 输出统计表格并生成 Excel/JSON 报告

示例:
  # 使用默认配置执行巡检
  sshfsmon run -c config.yaml

  # 仅生成 JSON 报告到指定目录
  sshfsmon run -f json -o /tmp/reports

  # 只看终端统计，不落盘报告
  sshfsmon run --no-report`,
	Run: runCycle,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Define command-specific flags
	runCmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "输出格式 (excel,json)，可用逗号分隔多个")
	runCmd.Flags().StringVarP(&outputDir, "output", "o", "", "输出目录")
	runCmd.Flags().BoolVar(&skipReport, "no-report", false, "跳过报告文件生成")
}

// runCycle executes one complete reconciliation cycle.
func runCycle(cmd *cobra.Command, args []string) {
	printBanner()

	cfg, entries, logger := loadEnvironment()
	fmt.Printf("📋 已加载 %d 台主机: %s\n", len(entries), cfg.Inventory.Path)

	runner := sysrun.NewExecRunner()
	reconciler := buildReconciler(cfg, runner, logger)

	fmt.Println("⏳ 开始挂载巡检...")
	ctx := context.Background()
	cycleReport := reconciler.Run(ctx, entries)
	fmt.Printf("\n📊 巡检完成！耗时 %.1fs\n\n", cycleReport.Duration.Seconds())

	// Terminal summary table
	printer := table.NewPrinter(os.Stdout, runner)
	printer.Print(ctx, cycleReport)

	// Report files
	if !skipReport {
		writeReports(cfg, cycleReport, logger)
	}

	// Webhook notification
	if cfg.Notify.Enabled {
		webhook := notify.NewWebhook(&cfg.Notify, logger)
		if err := webhook.NotifyCycle(ctx, cycleReport); err != nil {
			logger.Warn().Err(err).Msg("webhook notification failed")
		}
	}

	// Exit code reflects the cycle outcome
	exitCode := 0
	if cycleReport.Summary.Unreachable > 0 {
		exitCode = 1
	}
	if cycleReport.Summary.MountFailures > 0 {
		exitCode = 2
	}
	if exitCode > 0 {
		os.Exit(exitCode)
	}
}

// writeReports generates one report file per configured format.
func writeReports(cfg *config.Config, cycleReport *model.CycleReport, logger zerolog.Logger) {
	outputFormats := resolveFormats(cfg)
	outputPath := resolveOutputDir(cfg)

	if err := os.MkdirAll(outputPath, 0755); err != nil {
		logger.Error().Err(err).Str("path", outputPath).Msg("failed to create output directory")
		fmt.Fprintf(os.Stderr, "❌ 创建输出目录失败: %v\n", err)
		os.Exit(1)
	}

	tz := reportTimezone(cfg)
	registry := report.NewRegistry(tz)
	filenameBase := generateFilename(cfg.Report.FilenameTemplate, tz)

	fmt.Println("\n📄 生成报告:")
	for _, format := range outputFormats {
		writer, err := registry.Get(format)
		if err != nil {
			logger.Error().Str("format", format).Msg("unsupported format")
			fmt.Fprintf(os.Stderr, "   ❌ 不支持的格式: %s\n", format)
			continue
		}

		ext := "." + format
		if format == "excel" {
			ext = ".xlsx"
		}
		reportPath := filepath.Join(outputPath, filenameBase+ext)

		if err := writer.Write(cycleReport, reportPath); err != nil {
			logger.Error().Err(err).Str("format", format).Str("path", reportPath).Msg("failed to generate report")
			fmt.Fprintf(os.Stderr, "   ❌ %s 报告生成失败: %v\n", format, err)
			continue
		}

		logger.Info().Str("format", format).Str("path", reportPath).Msg("report generated successfully")
		fmt.Printf("   ✅ %s\n", reportPath)
	}
}

// resolveFormats determines the output formats to use.
// Command line flags take precedence over config file.
func resolveFormats(cfg *config.Config) []string {
	if len(formats) > 0 {
		return formats
	}
	if len(cfg.Report.Formats) > 0 {
		return cfg.Report.Formats
	}
	return []string{"excel", "json"} // default
}

// resolveOutputDir determines the output directory to use.
// Command line flags take precedence over config file.
func resolveOutputDir(cfg *config.Config) string {
	if outputDir != "" {
		return outputDir
	}
	if cfg.Report.OutputDir != "" {
		return cfg.Report.OutputDir
	}
	return "./reports" // default
}

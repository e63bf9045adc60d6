// Package cmd implements CLI commands for the SSHFS mount monitor.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sshfs-monitor/internal/config"
	"sshfs-monitor/internal/enrich"
	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/mount"
	"sshfs-monitor/internal/probe"
	"sshfs-monitor/internal/service"
	"sshfs-monitor/internal/sysrun"
)

// loadEnvironment loads configuration, the host inventory and a configured
// logger. Commands that run reconciliation cycles all start here.
func loadEnvironment() (*config.Config, []model.HostEntry, zerolog.Logger) {
	configPath := GetConfigFile()
	cfg, err := config.Load(configPath)
	if err != nil {
		tmpLogger := setupLogger("error", "console")
		tmpLogger.Error().Err(err).Str("path", configPath).Msg("failed to load config")
		fmt.Fprintf(os.Stderr, "❌ 加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// Command line --log-level overrides config file setting
	level := cfg.Logging.Level
	if GetLogLevel() != "info" { // If explicitly set via command line
		level = GetLogLevel()
	}
	logger := setupLogger(level, cfg.Logging.Format)
	logger.Debug().
		Str("config_path", configPath).
		Str("log_level", level).
		Str("log_format", cfg.Logging.Format).
		Msg("configuration loaded successfully")

	entries, err := config.LoadInventory(cfg.Inventory.Path, cfg.Mount.BaseDir)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Inventory.Path).Msg("failed to load inventory")
		fmt.Fprintf(os.Stderr, "❌ 加载主机清单失败: %v\n", err)
		os.Exit(1)
	}
	logger.Debug().Int("hosts", len(entries)).Msg("inventory loaded")

	return cfg, entries, logger
}

// loadConfigOnly loads and validates the configuration without touching the
// inventory. Used by lifecycle commands that do not run cycles themselves.
func loadConfigOnly() (*config.Config, error) {
	return config.Load(GetConfigFile())
}

// buildReconciler wires the probe, mount and enrichment components into a
// reconciler according to the configuration.
func buildReconciler(cfg *config.Config, runner sysrun.Runner, logger zerolog.Logger) *service.Reconciler {
	pinger := probe.NewPinger(runner, cfg.Probe.Timeout, logger)
	inspector := mount.NewInspector(runner, 0, logger)
	recovery := mount.NewRecovery(runner, inspector, cfg.Reconcile.RecoverySettle, logger)
	executor := mount.NewExecutor(runner, cfg.Mount.SSHFSBinary, cfg.Mount.Options, logger)

	opts := []service.ReconcilerOption{
		service.WithConcurrency(cfg.Reconcile.Concurrency),
		service.WithHostTimeout(cfg.Reconcile.HostTimeout),
	}
	if cfg.Enrich.Enabled {
		enricher := enrich.NewEnricher(runner, cfg.Enrich.SSHTimeout, logger)
		opts = append(opts, service.WithEnricher(enricher))
	}

	return service.NewReconciler(pinger, inspector, recovery, executor, logger, opts...)
}

// reportTimezone loads the configured report timezone, falling back to the
// local zone when the name cannot be resolved.
func reportTimezone(cfg *config.Config) *time.Location {
	name := cfg.Report.Timezone
	if name == "" {
		name = "Asia/Shanghai"
	}
	tz, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return tz
}

// generateFilename creates a filename from the template.
// Supports {{.Date}} placeholder for current date.
func generateFilename(template string, tz *time.Location) string {
	if template == "" {
		template = "mount_report_{{.Date}}"
	}

	// Get current date in the configured timezone
	now := time.Now().In(tz)
	dateStr := now.Format("2006-01-02")

	// Replace placeholders
	filename := strings.ReplaceAll(template, "{{.Date}}", dateStr)
	filename = strings.ReplaceAll(filename, "{{ .Date }}", dateStr)

	return filename
}

// setupLogger creates a zerolog logger with the specified level and format.
// It sets the timezone to Asia/Shanghai for all log timestamps.
func setupLogger(level string, format string) zerolog.Logger {
	// Set log level
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Load Asia/Shanghai timezone for log timestamps
	tz, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		tz = time.Local
	}

	// Set timezone for all timestamps
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(tz)
	}

	// Select output format based on configuration
	var output io.Writer
	if format == "json" {
		// JSON format - structured logging for log aggregation systems
		output = os.Stderr
	} else {
		// Console format - human-readable output for development
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: "15:04:05",
			NoColor:    false,
		}
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// printBanner prints the application banner.
func printBanner() {
	fmt.Printf("🗂  SSHFS 挂载监控工具 %s\n", Version)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
}

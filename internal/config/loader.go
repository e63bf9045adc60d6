// Package config provides configuration management for the SSHFS mount monitor.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified YAML file and environment variables.
// Environment variables take precedence over file values.
// Environment variable format: SSHFSMON_<SECTION>_<KEY> (e.g., SSHFSMON_DAEMON_INTERVAL)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults first
	setDefaults(v)

	// Configure environment variable binding
	v.SetEnvPrefix("SSHFSMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	// Inventory defaults
	v.SetDefault("inventory.path", "./hosts.txt")

	// Mount defaults - the no-cache option set is a compatibility contract
	// with the sshfs binary and keeps the mount reflecting remote state
	// immediately at the cost of performance
	v.SetDefault("mount.base_dir", "/root")
	v.SetDefault("mount.options", "cache=no,attr_timeout=0,entry_timeout=0")
	v.SetDefault("mount.sshfs_binary", "sshfs")

	// Probe defaults
	v.SetDefault("probe.timeout", 3*time.Second)

	// Reconcile defaults
	v.SetDefault("reconcile.concurrency", 0)
	v.SetDefault("reconcile.host_timeout", 60*time.Second)
	v.SetDefault("reconcile.recovery_settle", 1*time.Second)

	// Daemon defaults
	v.SetDefault("daemon.interval", 30*time.Second)
	v.SetDefault("daemon.pid_file", "/var/run/sshfs-monitor.pid")

	// Watch defaults
	v.SetDefault("watch.refresh", 3*time.Second)

	// Enrichment defaults
	v.SetDefault("enrich.enabled", true)
	v.SetDefault("enrich.ssh_timeout", 2*time.Second)

	// Notify defaults
	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.timeout", 10*time.Second)
	v.SetDefault("notify.retry.max_retries", 3)
	v.SetDefault("notify.retry.base_delay", 1*time.Second)

	// Report defaults
	v.SetDefault("report.formats", []string{})
	v.SetDefault("report.output_dir", "./reports")
	v.SetDefault("report.filename_template", "mount_report_{{.Date}}")
	v.SetDefault("report.timezone", "Asia/Shanghai")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

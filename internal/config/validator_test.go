// Package config provides configuration management for the SSHFS mount monitor.
package config

import (
	"strings"
	"testing"
	"time"
)

// newValidConfig creates a valid configuration for testing.
func newValidConfig() *Config {
	return &Config{
		Inventory: InventoryConfig{
			Path: "hosts.txt",
		},
		Mount: MountConfig{
			BaseDir:     "/mnt/sshfs",
			Options:     "cache=no,attr_timeout=0,entry_timeout=0",
			SSHFSBinary: "sshfs",
		},
		Probe: ProbeConfig{
			Timeout: 3 * time.Second,
		},
		Reconcile: ReconcileConfig{
			Concurrency:    0,
			HostTimeout:    60 * time.Second,
			RecoverySettle: 1 * time.Second,
		},
		Daemon: DaemonConfig{
			Interval: 30 * time.Second,
			PIDFile:  "/var/run/sshfs-monitor.pid",
		},
		Watch: WatchConfig{
			Refresh: 3 * time.Second,
		},
		Enrich: EnrichConfig{
			Enabled:    true,
			SSHTimeout: 2 * time.Second,
		},
		Notify: NotifyConfig{
			Enabled:    false,
			WebhookURL: "",
			Timeout:    10 * time.Second,
			Retry: RetryConfig{
				MaxRetries: 3,
				BaseDelay:  1 * time.Second,
			},
		},
		Report: ReportConfig{
			Formats:          []string{"excel", "json"},
			OutputDir:        "./reports",
			FilenameTemplate: "mount_report_{{.Date}}",
			Timezone:         "Asia/Shanghai",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := newValidConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("Validate() error = %v, want nil for valid config", err)
	}
}

func TestValidate_MissingInventoryPath(t *testing.T) {
	cfg := newValidConfig()
	cfg.Inventory.Path = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error for missing inventory path")
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "inventory.path") {
		t.Errorf("error should mention field 'inventory.path', got: %s", errStr)
	}
	if !strings.Contains(errStr, "required") {
		t.Errorf("error should mention 'required', got: %s", errStr)
	}
}

func TestValidate_RelativeBaseDir(t *testing.T) {
	cfg := newValidConfig()
	cfg.Mount.BaseDir = "mnt/sshfs"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error for relative base_dir")
	}
	if !strings.Contains(err.Error(), "mount.base_dir") {
		t.Errorf("error should mention field 'mount.base_dir', got: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "absolute") {
		t.Errorf("error should mention 'absolute', got: %s", err.Error())
	}
}

func TestValidate_NegativeDurations(t *testing.T) {
	cfg := newValidConfig()
	cfg.Probe.Timeout = -1 * time.Second

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error for negative probe timeout")
	}
	if !strings.Contains(err.Error(), "probe.timeout") {
		t.Errorf("error should mention field 'probe.timeout', got: %s", err.Error())
	}
}

func TestValidate_ProbeTimeoutExceedsHostTimeout(t *testing.T) {
	cfg := newValidConfig()
	cfg.Probe.Timeout = 90 * time.Second
	cfg.Reconcile.HostTimeout = 60 * time.Second

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error when probe timeout exceeds host timeout")
	}
	if !strings.Contains(err.Error(), "reconcile.host_timeout") {
		t.Errorf("error should mention field 'reconcile.host_timeout', got: %s", err.Error())
	}
}

func TestValidate_ConcurrencyOutOfRange(t *testing.T) {
	cfg := newValidConfig()
	cfg.Reconcile.Concurrency = 1000

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error for concurrency over the limit")
	}
	if !strings.Contains(err.Error(), "reconcile.concurrency") {
		t.Errorf("error should mention field 'reconcile.concurrency', got: %s", err.Error())
	}
}

func TestValidate_InvalidReportFormat(t *testing.T) {
	cfg := newValidConfig()
	cfg.Report.Formats = []string{"excel", "pdf"}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error for unsupported report format")
	}
}

func TestValidate_InvalidTimezone(t *testing.T) {
	cfg := newValidConfig()
	cfg.Report.Timezone = "Mars/Olympus"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error for invalid timezone")
	}
}

func TestValidate_NotifyEnabledWithoutURL(t *testing.T) {
	cfg := newValidConfig()
	cfg.Notify.Enabled = true
	cfg.Notify.WebhookURL = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error when notify is enabled without a webhook URL")
	}
	if !strings.Contains(err.Error(), "notify.webhook_url") {
		t.Errorf("error should mention field 'notify.webhook_url', got: %s", err.Error())
	}
}

func TestValidate_NotifyEnabledWithURL(t *testing.T) {
	cfg := newValidConfig()
	cfg.Notify.Enabled = true
	cfg.Notify.WebhookURL = "http://alertmanager.local/hooks/mounts"

	err := Validate(cfg)
	if err != nil {
		t.Errorf("Validate() error = %v, want nil when webhook URL is set", err)
	}
}

func TestValidate_InvalidWebhookURL(t *testing.T) {
	cfg := newValidConfig()
	cfg.Notify.WebhookURL = "not a url"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error for malformed webhook URL")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := newValidConfig()
	cfg.Logging.Level = "verbose"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should return error for unknown log level")
	}
}

func TestFormatFieldName(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		expected  string
	}{
		{
			name:      "nested field",
			namespace: "Config.Mount.BaseDir",
			expected:  "mount.basedir",
		},
		{
			name:      "top-level field",
			namespace: "Config.Inventory",
			expected:  "inventory",
		},
		{
			name:      "single segment",
			namespace: "Config",
			expected:  "config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatFieldName(tt.namespace)
			if result != tt.expected {
				t.Errorf("formatFieldName(%q) = %q, want %q", tt.namespace, result, tt.expected)
			}
		})
	}
}

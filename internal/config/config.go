// Package config provides configuration management for the SSHFS mount monitor.
package config

import "time"

// Config is the root configuration structure for the mount monitor.
type Config struct {
	Inventory InventoryConfig `mapstructure:"inventory" validate:"required"`
	Mount     MountConfig     `mapstructure:"mount" validate:"required"`
	Probe     ProbeConfig     `mapstructure:"probe"`
	Reconcile ReconcileConfig `mapstructure:"reconcile"`
	Daemon    DaemonConfig    `mapstructure:"daemon"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Enrich    EnrichConfig    `mapstructure:"enrich"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Report    ReportConfig    `mapstructure:"report"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// InventoryConfig locates the host inventory file.
type InventoryConfig struct {
	Path string `mapstructure:"path" validate:"required"` // 主机清单路径（.txt 或 .yaml）
}

// MountConfig controls how remote filesystems are attached.
type MountConfig struct {
	BaseDir     string `mapstructure:"base_dir" validate:"required"` // 相对挂载点的解析目录
	Options     string `mapstructure:"options"`                      // sshfs -o 选项集
	SSHFSBinary string `mapstructure:"sshfs_binary"`                 // sshfs 可执行文件
}

// ProbeConfig controls the reachability probe.
type ProbeConfig struct {
	Timeout time.Duration `mapstructure:"timeout"` // 单次探测超时
}

// ReconcileConfig controls the per-cycle reconciliation behavior.
type ReconcileConfig struct {
	Concurrency    int           `mapstructure:"concurrency" validate:"gte=0,lte=256"` // 0 = 每主机一个任务
	HostTimeout    time.Duration `mapstructure:"host_timeout"`                         // 单主机硬超时
	RecoverySettle time.Duration `mapstructure:"recovery_settle"`                      // 卸载尝试后的等待时间
}

// DaemonConfig controls the background reconciliation daemon.
type DaemonConfig struct {
	Interval time.Duration `mapstructure:"interval"` // 周期间隔
	PIDFile  string        `mapstructure:"pid_file"` // PID 文件路径
}

// WatchConfig controls the live dashboard loop.
type WatchConfig struct {
	Refresh time.Duration `mapstructure:"refresh"` // 刷新间隔
}

// EnrichConfig controls best-effort remote metadata collection.
type EnrichConfig struct {
	Enabled    bool          `mapstructure:"enabled"`     // 是否采集远端信息
	SSHTimeout time.Duration `mapstructure:"ssh_timeout"` // 单条 ssh 查询超时
}

// NotifyConfig controls the cycle-summary webhook.
type NotifyConfig struct {
	Enabled    bool          `mapstructure:"enabled"`                              // 是否推送周期汇总
	WebhookURL string        `mapstructure:"webhook_url" validate:"omitempty,url"` // 接收端 URL
	Timeout    time.Duration `mapstructure:"timeout"`                              // 请求超时
	Retry      RetryConfig   `mapstructure:"retry"`                                // 重试策略
}

// RetryConfig contains HTTP retry configuration for the webhook client.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0,lte=10"` // 最大重试次数
	BaseDelay  time.Duration `mapstructure:"base_delay"`                          // 重试基础等待
}

// ReportConfig controls report file generation.
type ReportConfig struct {
	Formats          []string `mapstructure:"formats" validate:"dive,oneof=excel json"` // 落盘格式
	OutputDir        string   `mapstructure:"output_dir"`                               // 输出目录
	FilenameTemplate string   `mapstructure:"filename_template"`                        // 文件名模板
	Timezone         string   `mapstructure:"timezone" validate:"omitempty,timezone"`   // 报告时区
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"` // 日志级别
	Format string `mapstructure:"format" validate:"omitempty,oneof=console json"`         // 输出格式
}

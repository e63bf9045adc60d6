// Package model provides data models for the SSHFS mount monitor.
package model

import "time"

// ActionOutcome is the terminal state a host reached within a cycle.
type ActionOutcome string

const (
	ActionAlreadyMounted     ActionOutcome = "already_mounted"     // 已挂载，无需操作
	ActionMounted            ActionOutcome = "mounted"             // 本周期挂载成功
	ActionMountFailed        ActionOutcome = "mount_failed"        // 挂载失败
	ActionSkippedUnreachable ActionOutcome = "skipped_unreachable" // 主机不可达，跳过
)

// Unavailable is the placeholder rendered for any best-effort value that
// could not be determined. Callers must render it instead of failing.
const Unavailable = "N/A"

// ProbeOutcome is the result of a single reachability check.
// Produced fresh every cycle, never persisted.
type ProbeOutcome struct {
	Reachable  bool          `json:"reachable"`   // 是否可达
	RTT        time.Duration `json:"rtt"`         // 探测往返耗时
	RTTDisplay string        `json:"rtt_display"` // 展示用延迟（不可用时为 N/A）
	Duration   time.Duration `json:"duration"`    // 探测总耗时
}

// RecoveryOutcome records the stale-endpoint recovery attempt for a host.
// Recovery runs at most once per host per cycle.
type RecoveryOutcome struct {
	Attempted bool   `json:"attempted"`          // 是否执行了恢复
	Recovered bool   `json:"recovered"`          // 恢复后是否回到 absent
	Strategy  string `json:"strategy,omitempty"` // 生效的卸载策略
}

// RemoteInfo carries best-effort metadata fetched from a mounted host.
// Each field degrades to Unavailable independently.
type RemoteInfo struct {
	Hostname string `json:"hostname"` // 远端主机名
	Uptime   string `json:"uptime"`   // 远端运行时长
	MAC      string `json:"mac"`      // 远端硬件地址
}

// NewUnavailableRemoteInfo returns a RemoteInfo with every field set to
// Unavailable, for hosts whose enrichment never ran.
func NewUnavailableRemoteInfo() RemoteInfo {
	return RemoteInfo{Hostname: Unavailable, Uptime: Unavailable, MAC: Unavailable}
}

// HostResult is the complete per-host record for one reconciliation cycle.
// It is created when the host's task starts, fully populated by the time the
// task reaches a terminal state, and owned exclusively by that task until the
// orchestrator joins.
type HostResult struct {
	Entry         HostEntry       `json:"entry"`           // 主机配置
	Probe         ProbeOutcome    `json:"probe"`           // 可达性探测结果
	State         MountState      `json:"state,omitempty"` // 本周期观察到的挂载状态（未探测时为空）
	Action        ActionOutcome   `json:"action"`          // 终态动作
	Recovery      RecoveryOutcome `json:"recovery"`        // 恢复记录
	MountDuration time.Duration   `json:"mount_duration"`  // 挂载操作耗时
	ExecutedCmd   string          `json:"executed_cmd"`    // 实际执行的挂载命令（未执行时为空）
	Error         string          `json:"error,omitempty"` // 错误详情
	Remote        RemoteInfo      `json:"remote"`          // 远端补充信息
	CheckedAt     time.Time       `json:"checked_at"`      // 处理开始时间
}

// NewHostResult creates a HostResult for the given entry with enrichment
// fields pre-set to Unavailable.
func NewHostResult(entry HostEntry) *HostResult {
	return &HostResult{
		Entry:     entry,
		Remote:    NewUnavailableRemoteInfo(),
		CheckedAt: time.Now(),
	}
}

// Mounted reports whether the host ended the cycle with a usable mount.
func (r *HostResult) Mounted() bool {
	return r.Action == ActionMounted || r.Action == ActionAlreadyMounted
}

// CycleSummary provides aggregated statistics for one reconciliation cycle.
type CycleSummary struct {
	TotalHosts     int `json:"total_hosts"`     // 主机总数
	ReachableHosts int `json:"reachable_hosts"` // 可达主机数
	MountedHosts   int `json:"mounted_hosts"`   // 已挂载主机数
	AlreadyMounted int `json:"already_mounted"` // 本周期前已挂载数
	MountFailures  int `json:"mount_failures"`  // 挂载失败数
	Unreachable    int `json:"unreachable"`     // 不可达主机数
	Recovered      int `json:"recovered"`       // 成功恢复的陈旧挂载数
}

// NewCycleSummary aggregates host results into a summary.
func NewCycleSummary(hosts []*HostResult) *CycleSummary {
	summary := &CycleSummary{}
	for _, host := range hosts {
		if host == nil {
			continue
		}
		summary.TotalHosts++
		if host.Probe.Reachable {
			summary.ReachableHosts++
		}
		switch host.Action {
		case ActionAlreadyMounted:
			summary.AlreadyMounted++
			summary.MountedHosts++
		case ActionMounted:
			summary.MountedHosts++
		case ActionMountFailed:
			summary.MountFailures++
		case ActionSkippedUnreachable:
			summary.Unreachable++
		}
		if host.Recovery.Attempted && host.Recovery.Recovered {
			summary.Recovered++
		}
	}
	return summary
}

// CycleReport is the orchestrator's output for one cycle: one HostResult per
// configured host, in registry order. The report is immutable after Finalize.
type CycleReport struct {
	Hosts      []*HostResult `json:"hosts"`       // 按清单顺序的主机结果
	Summary    *CycleSummary `json:"summary"`     // 汇总统计
	StartedAt  time.Time     `json:"started_at"`  // 周期开始时间
	FinishedAt time.Time     `json:"finished_at"` // 周期结束时间
	Duration   time.Duration `json:"duration"`    // 周期总耗时
}

// NewCycleReport creates an empty report for a cycle starting now.
func NewCycleReport(start time.Time) *CycleReport {
	return &CycleReport{StartedAt: start}
}

// Finalize records the end time and computes the summary.
func (r *CycleReport) Finalize(end time.Time) {
	r.FinishedAt = end
	r.Duration = end.Sub(r.StartedAt)
	r.Summary = NewCycleSummary(r.Hosts)
}

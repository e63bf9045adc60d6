// Package model provides data models for the SSHFS mount monitor.
package model

import "fmt"

// MountState classifies a local mount point at inspection time.
// It is derived by the mount inspector on every cycle and never persisted.
type MountState string

const (
	MountAbsent  MountState = "absent"  // 未挂载
	MountHealthy MountState = "healthy" // 已挂载且可访问
	MountStale   MountState = "stale"   // 已挂载但无响应
)

// Inventory defaults applied while parsing host entries.
const (
	DefaultUser       = "root"  // 默认 SSH 用户
	DefaultPort       = 22      // 默认 SSH 端口
	DefaultRemotePath = "/root" // 默认远端目录
)

// HostEntry is one validated host from the inventory. Entries are immutable
// for the duration of a reconciliation cycle.
type HostEntry struct {
	Address    string `json:"address"`     // 主机地址
	User       string `json:"user"`        // SSH 用户
	Port       int    `json:"port"`        // SSH 端口
	RemotePath string `json:"remote_path"` // 远端目录
	MountPoint string `json:"mount_point"` // 本地挂载点（绝对路径）
}

// SSHTarget returns the user@address form used by ssh and sshfs.
func (e HostEntry) SSHTarget() string {
	return e.User + "@" + e.Address
}

// RemoteSpec returns the sshfs source argument (user@address:path/).
// The trailing slash is part of the sshfs client's argument syntax.
func (e HostEntry) RemoteSpec() string {
	return fmt.Sprintf("%s@%s:%s/", e.User, e.Address, e.RemotePath)
}

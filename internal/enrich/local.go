package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/net"

	"sshfs-monitor/internal/model"
)

// LocalInfo carries facts about the machine running the monitor, shown in the
// dashboard header.
type LocalInfo struct {
	Hostname string // 本机主机名
	Uptime   string // 本机运行时长
	MAC      string // 本机硬件地址
}

// CollectLocal gathers local machine facts. Each field degrades to N/A
// independently.
func CollectLocal(ctx context.Context) LocalInfo {
	info := LocalInfo{
		Hostname: model.Unavailable,
		Uptime:   model.Unavailable,
		MAC:      model.Unavailable,
	}

	if hi, err := host.InfoWithContext(ctx); err == nil {
		if hi.Hostname != "" {
			info.Hostname = hi.Hostname
		}
		info.Uptime = formatUptime(hi.Uptime)
	}

	if mac := firstMAC(ctx); mac != "" {
		info.MAC = mac
	}

	return info
}

// firstMAC returns the hardware address of the first non-loopback interface
// that has both a MAC and at least one address.
func firstMAC(ctx context.Context) string {
	interfaces, err := net.InterfacesWithContext(ctx)
	if err != nil {
		return ""
	}

	for _, iface := range interfaces {
		if strings.Contains(strings.ToLower(iface.Name), "lo") {
			continue
		}
		if iface.HardwareAddr != "" && len(iface.Addrs) > 0 {
			return iface.HardwareAddr
		}
	}
	return ""
}

// formatUptime renders an uptime in seconds as a compact human-readable form.
func formatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

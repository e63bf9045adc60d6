// Package enrich collects best-effort auxiliary metadata: remote host facts
// over ssh for mounted hosts, and local machine facts for the dashboard
// header. Every value degrades to N/A independently; enrichment never
// affects a mount decision.
package enrich

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/sysrun"
)

// defaultSSHTimeout bounds each remote query.
const defaultSSHTimeout = 2 * time.Second

// Remote metadata queries executed on the mounted host.
const (
	remoteHostnameCmd = "hostname"
	remoteUptimeCmd   = `uptime | sed 's/.*up \([^,]*\).*/\1/' | xargs`
	remoteMACCmd      = `cat /sys/class/net/eth0/address 2>/dev/null || ip link show eth0 2>/dev/null | grep -o '[0-9a-f][0-9a-f]:[0-9a-f][0-9a-f]:[0-9a-f][0-9a-f]:[0-9a-f][0-9a-f]:[0-9a-f][0-9a-f]:[0-9a-f][0-9a-f]' | head -1`
)

// Enricher fetches remote host metadata over ssh.
type Enricher struct {
	runner  sysrun.Runner
	timeout time.Duration
	logger  zerolog.Logger
}

// NewEnricher creates an Enricher. A zero timeout falls back to the default.
func NewEnricher(runner sysrun.Runner, timeout time.Duration, logger zerolog.Logger) *Enricher {
	if timeout <= 0 {
		timeout = defaultSSHTimeout
	}
	return &Enricher{
		runner:  runner,
		timeout: timeout,
		logger:  logger.With().Str("component", "enrich").Logger(),
	}
}

// Collect fetches hostname, uptime, and hardware address from the host.
// Each field fails independently to N/A; Collect itself never errors.
// It must only be called for hosts confirmed mounted.
func (e *Enricher) Collect(ctx context.Context, entry model.HostEntry) model.RemoteInfo {
	return model.RemoteInfo{
		Hostname: e.query(ctx, entry, remoteHostnameCmd),
		Uptime:   e.query(ctx, entry, remoteUptimeCmd),
		MAC:      e.query(ctx, entry, remoteMACCmd),
	}
}

// query runs one remote command over ssh and returns its trimmed output,
// or N/A when the query fails or yields nothing.
func (e *Enricher) query(ctx context.Context, entry model.HostEntry, remoteCmd string) string {
	queryCtx, cancel := context.WithTimeout(ctx, e.timeout+time.Second)
	defer cancel()

	output, err := e.runner.Output(queryCtx, "ssh",
		"-p", strconv.Itoa(entry.Port),
		"-o", "ConnectTimeout="+strconv.Itoa(e.timeoutSeconds()),
		"-o", "StrictHostKeyChecking=no",
		entry.SSHTarget(), remoteCmd)
	if err != nil {
		e.logger.Debug().Str("target", entry.SSHTarget()).Err(err).Msg("remote query failed")
		return model.Unavailable
	}

	result := strings.TrimSpace(string(output))
	if result == "" {
		return model.Unavailable
	}
	return result
}

// timeoutSeconds renders the ssh ConnectTimeout as whole seconds.
func (e *Enricher) timeoutSeconds() int {
	secs := int(e.timeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

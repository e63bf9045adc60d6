// Package probe implements the reachability probe for configured hosts.
package probe

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"sshfs-monitor/internal/model"
	"sshfs-monitor/internal/sysrun"
)

// defaultTimeout bounds a probe when no timeout is configured.
const defaultTimeout = 3 * time.Second

// Pinger performs single-shot ICMP liveness checks via the system ping binary.
type Pinger struct {
	runner  sysrun.Runner
	timeout time.Duration
	logger  zerolog.Logger
}

// NewPinger creates a Pinger with the given timeout. A zero timeout falls
// back to the default.
func NewPinger(runner sysrun.Runner, timeout time.Duration, logger zerolog.Logger) *Pinger {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Pinger{
		runner:  runner,
		timeout: timeout,
		logger:  logger.With().Str("component", "probe").Logger(),
	}
}

// Probe performs exactly one liveness check against the address. A timeout is
// reported as "not reachable", never as an error, and the call never blocks
// beyond the configured timeout. The display latency is re-queried separately
// so a parse failure degrades to N/A without affecting reachability.
func (p *Pinger) Probe(ctx context.Context, address string) model.ProbeOutcome {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	err := p.runner.Run(probeCtx, "ping", "-c", "1", "-W", p.timeoutSeconds(), address)
	rtt := time.Since(start)

	outcome := model.ProbeOutcome{
		Reachable:  err == nil,
		RTT:        rtt,
		RTTDisplay: model.Unavailable,
		Duration:   time.Since(start),
	}

	if !outcome.Reachable {
		p.logger.Debug().Str("address", address).Dur("elapsed", rtt).Msg("host not reachable")
		return outcome
	}

	outcome.RTTDisplay = p.latencyDisplay(ctx, address)
	outcome.Duration = time.Since(start)

	p.logger.Debug().
		Str("address", address).
		Dur("rtt", rtt).
		Str("latency", outcome.RTTDisplay).
		Msg("host reachable")

	return outcome
}

// latencyDisplay re-runs ping and extracts the reported round-trip time for
// display precision. Returns N/A when the value cannot be determined.
func (p *Pinger) latencyDisplay(ctx context.Context, address string) string {
	queryCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	output, err := p.runner.Output(queryCtx, "ping", "-c", "1", "-W", p.timeoutSeconds(), address)
	if err != nil {
		return model.Unavailable
	}

	return parseLatency(string(output))
}

// parseLatency extracts the "time=..." value from ping output.
func parseLatency(output string) string {
	for _, line := range strings.Split(output, "\n") {
		idx := strings.Index(line, "time=")
		if idx < 0 {
			continue
		}
		fields := strings.Fields(line[idx+len("time="):])
		if len(fields) > 0 {
			return fields[0]
		}
	}
	return model.Unavailable
}

// timeoutSeconds renders the probe timeout as whole seconds for ping's -W flag.
func (p *Pinger) timeoutSeconds() string {
	secs := int(p.timeout / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

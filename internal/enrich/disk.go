package enrich

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"sshfs-monitor/internal/sysrun"
)

// DiskUsage queries df for the filesystem behind path and returns the used
// percentage plus a human-readable summary line. ok is false when the value
// could not be determined; callers render N/A in that case.
func DiskUsage(ctx context.Context, runner sysrun.Runner, path string) (percent int, detail string, ok bool) {
	output, err := runner.Output(ctx, "df", "-h", path)
	if err != nil {
		return 0, "", false
	}

	lines := strings.Split(string(output), "\n")
	if len(lines) < 2 {
		return 0, "", false
	}

	fields := strings.Fields(lines[1])
	if len(fields) < 5 {
		return 0, "", false
	}

	percent, err = strconv.Atoi(strings.TrimSuffix(fields[4], "%"))
	if err != nil {
		return 0, "", false
	}

	detail = fmt.Sprintf("%s used: %s (%s)", fields[1], fields[2], fields[4])
	return percent, detail, true
}

// Package jsonreport provides JSON report generation for the mount monitor.
// The JSON form is the machine-readable counterpart of the Excel report,
// suitable for piping into log aggregation or follow-up tooling.
package jsonreport

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"sshfs-monitor/internal/model"
)

// envelope wraps the cycle report with generation metadata.
type envelope struct {
	GeneratedAt string             `json:"generated_at"` // 报告生成时间（配置时区）
	Report      *model.CycleReport `json:"report"`       // 周期报告
}

// Writer implements report.ReportWriter for JSON format.
type Writer struct {
	timezone *time.Location
}

// NewWriter creates a new JSON report writer.
// If timezone is nil, it defaults to Asia/Shanghai.
func NewWriter(timezone *time.Location) *Writer {
	if timezone == nil {
		timezone, _ = time.LoadLocation("Asia/Shanghai")
	}
	return &Writer{
		timezone: timezone,
	}
}

// Format returns the format identifier for this writer.
func (w *Writer) Format() string {
	return "json"
}

// Write generates a JSON report from the cycle report.
func (w *Writer) Write(report *model.CycleReport, outputPath string) error {
	if report == nil {
		return fmt.Errorf("cycle report is nil")
	}

	if !strings.HasSuffix(strings.ToLower(outputPath), ".json") {
		outputPath = outputPath + ".json"
	}

	data, err := json.MarshalIndent(envelope{
		GeneratedAt: time.Now().In(w.timezone).Format(time.RFC3339),
		Report:      report,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	return nil
}

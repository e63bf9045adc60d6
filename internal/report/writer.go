// Package report provides cycle report generation for the mount monitor.
// It defines the ReportWriter interface and a registry for the supported
// output formats (Excel, JSON).
package report

import (
	"sshfs-monitor/internal/model"
)

// ReportWriter defines the interface for persisting cycle reports.
// Implementations write a reconciliation cycle's results to a file in their
// specific format.
type ReportWriter interface {
	// Write generates a report file from the cycle report and saves it to the
	// specified output path. The path should include the file extension
	// appropriate for the format.
	//
	// Returns an error if the report generation or file writing fails.
	Write(report *model.CycleReport, outputPath string) error

	// Format returns the format identifier for this writer.
	// Common values are "excel" and "json".
	Format() string
}

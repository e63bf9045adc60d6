// Package excel provides Excel report generation for the mount monitor.
// It implements the report.ReportWriter interface to generate .xlsx files
// with a cycle summary sheet and a per-host detail sheet.
package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sshfs-monitor/internal/model"
)

const (
	// Sheet names
	sheetSummary = "挂载概览"
	sheetDetail  = "主机明细"

	// Default sheet to remove
	defaultSheet = "Sheet1"

	// Colors for conditional formatting (RGB without #)
	colorMountedBg     = "C6EFCE" // Green background for mounted
	colorMountedFg     = "006100" // Dark green text for mounted
	colorFailedBg      = "FFC7CE" // Red background for failures
	colorFailedFg      = "9C0006" // Dark red text for failures
	colorUnreachableBg = "FFEB9C" // Yellow background for unreachable
	colorUnreachableFg = "9C6500" // Dark yellow text for unreachable
	colorHeaderBg      = "4472C4" // Blue background for header
	colorHeaderFg      = "FFFFFF" // White text for header
)

// detailHeaders are the columns of the per-host detail sheet.
var detailHeaders = []string{
	"主机", "端口", "挂载点", "远端目录", "状态", "动作",
	"延迟", "挂载耗时", "恢复策略", "远端主机名", "远端运行时长", "远端 MAC", "执行命令", "错误",
}

// Writer implements report.ReportWriter for Excel format.
type Writer struct {
	timezone *time.Location
}

// NewWriter creates a new Excel report writer.
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
	return "excel"
}

// Write generates an Excel report from the cycle report.
func (w *Writer) Write(report *model.CycleReport, outputPath string) error {
	if report == nil {
		return fmt.Errorf("cycle report is nil")
	}

	// Ensure output path has .xlsx extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.createSummarySheet(f, report); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	if err := w.createDetailSheet(f, report); err != nil {
		return fmt.Errorf("failed to create detail sheet: %w", err)
	}

	// Remove default Sheet1; ignore the error if it does not exist
	_ = f.DeleteSheet(defaultSheet)

	idx, _ := f.GetSheetIndex(sheetSummary)
	f.SetActiveSheet(idx)

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// createSummarySheet creates the cycle summary worksheet.
func (w *Writer) createSummarySheet(f *excelize.File, report *model.CycleReport) error {
	idx, err := f.NewSheet(sheetSummary)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	headerStyle, err := w.createHeaderStyle(f)
	if err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 18,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	valueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 12,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	f.SetColWidth(sheetSummary, "A", "A", 20)
	f.SetColWidth(sheetSummary, "B", "B", 30)

	// Title
	f.MergeCell(sheetSummary, "A1", "B1")
	f.SetCellValue(sheetSummary, "A1", "SSHFS 挂载状态报告")
	f.SetCellStyle(sheetSummary, "A1", "B1", titleStyle)
	f.SetRowHeight(sheetSummary, 1, 30)

	summaryData := []struct {
		label string
		value interface{}
	}{
		{"巡检时间", report.StartedAt.In(w.timezone).Format("2006-01-02 15:04:05")},
		{"周期耗时", formatDuration(report.Duration)},
		{"主机总数", report.Summary.TotalHosts},
		{"可达主机", report.Summary.ReachableHosts},
		{"已挂载主机", report.Summary.MountedHosts},
		{"本周期新挂载", report.Summary.MountedHosts - report.Summary.AlreadyMounted},
		{"挂载失败", report.Summary.MountFailures},
		{"不可达主机", report.Summary.Unreachable},
		{"恢复的陈旧挂载", report.Summary.Recovered},
	}

	for i, item := range summaryData {
		row := i + 3 // Start from row 3
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), item.label)
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), item.value)
		f.SetCellStyle(sheetSummary, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), headerStyle)
		f.SetCellStyle(sheetSummary, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), valueStyle)
		f.SetRowHeight(sheetSummary, row, 22)
	}

	return nil
}

// createDetailSheet creates the per-host detail worksheet.
func (w *Writer) createDetailSheet(f *excelize.File, report *model.CycleReport) error {
	_, err := f.NewSheet(sheetDetail)
	if err != nil {
		return err
	}

	headerStyle, err := w.createHeaderStyle(f)
	if err != nil {
		return err
	}

	mountedStyle, err := w.createStatusStyle(f, colorMountedBg, colorMountedFg)
	if err != nil {
		return err
	}

	failedStyle, err := w.createStatusStyle(f, colorFailedBg, colorFailedFg)
	if err != nil {
		return err
	}

	unreachableStyle, err := w.createStatusStyle(f, colorUnreachableBg, colorUnreachableFg)
	if err != nil {
		return err
	}

	f.SetColWidth(sheetDetail, "A", "N", 18)
	f.SetColWidth(sheetDetail, "M", "M", 50)

	// Header row
	for i, header := range detailHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetDetail, cell, header)
		f.SetCellStyle(sheetDetail, cell, cell, headerStyle)
	}

	for rowIdx, host := range report.Hosts {
		if host == nil {
			continue
		}
		row := rowIdx + 2

		values := []interface{}{
			host.Entry.SSHTarget(),
			host.Entry.Port,
			host.Entry.MountPoint,
			host.Entry.RemotePath,
			string(host.State),
			string(host.Action),
			host.Probe.RTTDisplay,
			formatDuration(host.MountDuration),
			host.Recovery.Strategy,
			host.Remote.Hostname,
			host.Remote.Uptime,
			host.Remote.MAC,
			host.ExecutedCmd,
			host.Error,
		}

		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			f.SetCellValue(sheetDetail, cell, value)
		}

		// Color the action cell by outcome
		actionCell, _ := excelize.CoordinatesToCellName(6, row)
		switch host.Action {
		case model.ActionMounted, model.ActionAlreadyMounted:
			f.SetCellStyle(sheetDetail, actionCell, actionCell, mountedStyle)
		case model.ActionMountFailed:
			f.SetCellStyle(sheetDetail, actionCell, actionCell, failedStyle)
		case model.ActionSkippedUnreachable:
			f.SetCellStyle(sheetDetail, actionCell, actionCell, unreachableStyle)
		}
	}

	return nil
}

// createHeaderStyle creates the bold blue header cell style.
func (w *Writer) createHeaderStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  12,
			Color: colorHeaderFg,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{colorHeaderBg},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

// createStatusStyle creates a colored status cell style.
func (w *Writer) createStatusStyle(f *excelize.File, bg string, fg string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Color: fg,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{bg},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

// formatDuration renders a duration with second precision for report cells.
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"pointage/models"
)

// WriteExcel renders the summary report as a workbook: one sheet of session
// rows, one sheet per breakdown.
func WriteExcel(w io.Writer, summary *models.ReportSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	const sessionsSheet = "Sessions"
	f.SetSheetName(f.GetSheetName(0), sessionsSheet)

	headers := []string{"Date", "Employee", "Workstation", "Status", "Start", "End", "Work", "Break"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sessionsSheet, cell, header)
	}
	for i, row := range summary.Sessions {
		endTime := ""
		if row.EndTime != nil {
			endTime = row.EndTime.Format("15:04")
		}
		values := []interface{}{
			row.Date, row.FullName, row.WorkstationCode, string(row.Status),
			row.StartTime.Format("15:04"), endTime, row.WorkFormatted, row.BreakFormatted,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sessionsSheet, cell, value)
		}
	}

	if err := writeBreakdownSheet(f, "Per employee", summary.ByEmployee); err != nil {
		return err
	}
	if err := writeBreakdownSheet(f, "Per workstation", summary.ByWorkstation); err != nil {
		return err
	}

	// Global line goes on its own small sheet
	if err := writeBreakdownSheet(f, "Global", []models.ReportBreakdown{summary.Global}); err != nil {
		return err
	}

	f.SetCellValue(sessionsSheet, "J1", fmt.Sprintf("Generated %s, range %s to %s",
		summary.GeneratedAt.Format(time.RFC3339), summary.Filter.From, summary.Filter.To))

	return f.Write(w)
}

func writeBreakdownSheet(f *excelize.File, name string, rows []models.ReportBreakdown) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	headers := []string{"Key", "Label", "Sessions", "Work minutes", "Break minutes", "Work", "Break"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(name, cell, header)
	}
	for i, row := range rows {
		values := []interface{}{
			row.Key, row.Label, row.SessionCount,
			row.TotalWorkMinutes, row.TotalBreakMinutes,
			row.WorkFormatted, row.BreakFormatted,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(name, cell, value)
		}
	}
	return nil
}

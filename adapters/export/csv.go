package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"pointage/models"
)

// WriteCSV renders the summary report's session rows as CSV
func WriteCSV(w io.Writer, summary *models.ReportSummary) error {
	cw := csv.NewWriter(w)

	header := []string{"date", "employee", "workstation", "status", "start_time", "end_time",
		"work_minutes", "break_minutes", "work_time", "break_time"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range summary.Sessions {
		endTime := ""
		if row.EndTime != nil {
			endTime = row.EndTime.Format(time.RFC3339)
		}
		record := []string{
			row.Date,
			row.Username,
			row.WorkstationCode,
			string(row.Status),
			row.StartTime.Format(time.RFC3339),
			endTime,
			strconv.Itoa(row.TotalWorkMinutes),
			strconv.Itoa(row.TotalBreakMinutes),
			row.WorkFormatted,
			row.BreakFormatted,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

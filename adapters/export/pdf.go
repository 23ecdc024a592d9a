package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"pointage/models"
)

// WritePDF renders the summary report as a simple tabular PDF
func WritePDF(w io.Writer, summary *models.ReportSummary) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Time tracking report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Time tracking report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Range %s to %s - %d sessions, %d employees",
		summary.Filter.From, summary.Filter.To, summary.TotalSessions, summary.TotalEmployees))
	pdf.Ln(10)

	widths := []float64{25, 45, 30, 22, 20, 20, 22, 22}
	headers := []string{"Date", "Employee", "Workstation", "Status", "Start", "End", "Work", "Break"}

	pdf.SetFont("Helvetica", "B", 9)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range summary.Sessions {
		endTime := ""
		if row.EndTime != nil {
			endTime = row.EndTime.Format("15:04")
		}
		cells := []string{
			row.Date, row.FullName, row.WorkstationCode, string(row.Status),
			row.StartTime.Format("15:04"), endTime, row.WorkFormatted, row.BreakFormatted,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 7, fmt.Sprintf("Total work %s, total break %s over %d sessions",
		summary.Global.WorkFormatted, summary.Global.BreakFormatted, summary.Global.SessionCount))

	return pdf.Output(w)
}

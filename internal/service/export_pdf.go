package service

import (
	"bytes"
	"fmt"

	"timeclock/backend/internal/report"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportToPDF renders the attendance report as a printable pdf, one
// table block per employee closed by its Total row.
func ReportToPDF(title string, groups []report.Group) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	colWidths := []float64{60, 35, 25, 25, 25}
	headers := []string{"Employee", "Day", "In", "Out", "Worked"}

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		for i, header := range headers {
			pdf.CellFormat(colWidths[i], 7, header, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	writeHeader()
	pdf.SetFont("Helvetica", "", 10)

	for _, group := range groups {
		for _, line := range group.Lines {
			cells := []string{group.EmployeeName, line.WorkDay, line.In, line.Out, line.Worked}
			for i, cell := range cells {
				pdf.CellFormat(colWidths[i], 6, cell, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}

		pdf.SetFont("Helvetica", "B", 10)
		cells := []string{group.EmployeeName, "Total", "", "", group.Total}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

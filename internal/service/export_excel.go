package service

import (
	"fmt"

	"timeclock/backend/internal/report"

	"github.com/xuri/excelize/v2"
)

type EmployeeRow struct {
	ID        int
	Name      string
	Pin       string
	ShiftName string
}

const sheet = "Sheet1"

func setHeaders(f *excelize.File, headers []string) {
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}
}

// EmployeesToExcel renders the employee list as an xlsx workbook and
// returns its bytes for the download response.
func EmployeesToExcel(employees []EmployeeRow) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	setHeaders(f, []string{"ID", "Name", "PIN", "Shift"})

	rowNum := 2
	for _, entry := range employees {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), entry.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), entry.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), entry.Pin)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.ShiftName)
		rowNum++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ReportToExcel renders the attendance report, one block per employee
// with a Total row after each block.
func ReportToExcel(groups []report.Group) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	setHeaders(f, []string{"Employee", "Day", "In", "Out", "Worked"})

	rowNum := 2
	for _, group := range groups {
		for _, line := range group.Lines {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), group.EmployeeName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), line.WorkDay)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), line.In)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), line.Out)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), line.Worked)
			rowNum++
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), group.EmployeeName)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), "Total")
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), group.Total)
		rowNum++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

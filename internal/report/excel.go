package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var summaryHeader = []string{
	"Day",
	"Weekday",
	"Hours",
	"Records",
	"Working Day",
}

// ExportXLSX renders a monthly summary as an Excel workbook and returns the
// file contents.
func ExportXLSX(summary *MonthlySummary) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := summary.Month.Format("2006-01")
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range summaryHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style header cell %s: %w", cell, err)
		}
	}

	for i, day := range summary.Days {
		row := i + 2
		values := []interface{}{
			day.Day.Format("2006-01-02"),
			day.Day.Weekday().String(),
			day.Hours,
			day.Records,
			day.WorkingDay,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	totalRow := len(summary.Days) + 2
	totals := []interface{}{"Total", "", summary.TotalHours, "", summary.WorkingDays}
	for col, value := range totals {
		cell, err := excelize.CoordinatesToCellName(col+1, totalRow)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set total cell %s: %w", cell, err)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buffer.Bytes(), nil
}

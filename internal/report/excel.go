package report

import (
	"bytes"
	"fmt"

	"github.com/prabhmeharbedi/prabhmehar-loopai/internal/domain"

	"github.com/xuri/excelize/v2"
)

const excelSheetName = "Store Report"

// BuildExcel renders a report as an Excel workbook, for callers that prefer a
// spreadsheet over the raw CSV artifact.
func BuildExcel(rows []domain.StoreMetrics) ([]byte, error) {
	f := excelize.NewFile()
	// No defer Close() here, WriteTo needs the file open.

	index, err := f.NewSheet(excelSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(excelSheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(excelSheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// store_id column is wide, metric columns share one width
	if err := f.SetColWidth(excelSheetName, "A", "A", 38); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(excelSheetName, "B", "G", 20); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	for rowIdx, m := range rows {
		row := rowIdx + 2 // row 1 is the header
		values := []interface{}{
			m.StoreID,
			m.UptimeLastHour,
			m.UptimeLastDay,
			m.UptimeLastWeek,
			m.DowntimeLastHour,
			m.DowntimeLastDay,
			m.DowntimeLastWeek,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(excelSheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}

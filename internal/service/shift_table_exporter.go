package service

import (
	"bytes"
	"fmt"

	"doctor-roster/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

const shiftTableSheet = "Shift Table"

// ShiftTableExportHeader is the header row of the exported workbook
var ShiftTableExportHeader = []string{
	"Date",
	"Sub Department",
	"Shift",
	"Start",
	"End",
	"Doctor",
	"Care Provider Code",
	"Status",
	"Replacement For",
	"On Leave",
	"Covered By",
}

var shiftTableColumnWidths = []float64{12, 20, 18, 8, 8, 30, 18, 12, 30, 10, 30}

// ShiftTableExporter renders projected shift tables as XLSX workbooks
type ShiftTableExporter struct{}

func NewShiftTableExporter() *ShiftTableExporter {
	return &ShiftTableExporter{}
}

func (e *ShiftTableExporter) Export(entries []entity.ShiftTableEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(shiftTableSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	replacementStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FFF4CC"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create replacement style: %w", err)
	}

	if err := f.SetSheetRow(shiftTableSheet, "A1", &ShiftTableExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(ShiftTableExportHeader))
	if err != nil {
		return nil, fmt.Errorf("failed to convert column number: %w", err)
	}
	if err := f.SetCellStyle(shiftTableSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range shiftTableColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(shiftTableSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, entry := range entries {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}

		values := []interface{}{
			entity.FormatDate(entry.Date),
			entry.SubDepartment,
			entry.ShiftName,
			entry.StartTime,
			entry.EndTime,
			entry.ThaiFullName,
			entry.CareProviderCode,
			string(entry.Status),
			entry.OriginalDoctorName,
			yesNo(entry.IsOnLeave),
			entry.ReplacementName,
		}
		if err := f.SetSheetRow(shiftTableSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}

		if entry.Replacement {
			end := fmt.Sprintf("%s%d", lastCol, row)
			if err := f.SetCellStyle(shiftTableSheet, cell, end, replacementStyle); err != nil {
				return nil, fmt.Errorf("failed to style row %d: %w", row, err)
			}
		}
	}

	// Keep the header visible while scrolling
	if err := f.SetPanes(shiftTableSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(v bool) string {
	if v {
		return "Y"
	}
	return ""
}

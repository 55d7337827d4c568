package dataset

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"mit-dashboard/internal/models"
)

const (
	// ExportFilename is the suggested download name for exports.
	ExportFilename = "Material_Intransit_Export.xlsx"

	exportSheet = "Material In Transit"
)

// ErrNoData rejects an export while no data is loaded; a workbook with
// zero columns is not useful. A filter that matches nothing is different:
// it still exports a valid header-only workbook.
var ErrNoData = errors.New("no data available to export")

// Export materializes the filtered result set as a complete .xlsx
// workbook: a single sheet, the schema header row, one data row per
// matching shipment in source order. The whole document is built in
// memory before any byte is returned.
func Export(t *Table, c Criteria) ([]byte, error) {
	if t.Len() == 0 {
		return nil, ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(models.Columns))
	for i, name := range models.Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Filter(c) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		values := row.Values()
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v.Export()
		}
		if err := f.SetSheetRow(exportSheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

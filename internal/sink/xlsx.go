package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rjmelnik/deedtrace/internal/model"
)

const sheetName = "Records"

// XLSXSink writes records as a spreadsheet. Purchase Year is written as a
// numeric cell so spreadsheet tools can sort and filter on it.
type XLSXSink struct {
	Path string
}

func (s *XLSXSink) Write(records []model.PropertyRecord) (string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, 0, len(model.Columns()))
	for _, col := range model.Columns() {
		header = append(header, col)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		row := make([]interface{}, 0, len(header))
		for j, val := range rec.Row() {
			// Column 4 is Purchase Year
			if j == 4 && rec.PurchaseYear != 0 {
				row = append(row, rec.PurchaseYear)
				continue
			}
			row = append(row, val)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return "", fmt.Errorf("write record: %w", err)
		}
	}

	if err := f.SaveAs(s.Path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return s.Path, nil
}

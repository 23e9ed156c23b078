package render

import (
	"fmt"

	"github.com/derickschaefer/truewage/internal/model"
	"github.com/xuri/excelize/v2"
)

// WriteWorkbook saves a breakdown as a two-column spreadsheet at path:
// the formatted rows first, then the raw values for further analysis.
func WriteWorkbook(path string, b model.Breakdown, fm *Formatter) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	row := 1
	put := func(cells ...interface{}) error {
		for i, v := range cells {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to set cell value: %w", err)
			}
		}
		row++
		return nil
	}

	if err := put("True hourly wage", fm.Money(b.Headline)); err != nil {
		return err
	}
	if err := put("Comparison", CompareText(b, fm)); err != nil {
		return err
	}
	for _, r := range BreakdownRows(b, fm) {
		if err := put(r[0], r[1]); err != nil {
			return err
		}
	}
	row++
	if err := put("metric", "value"); err != nil {
		return err
	}
	for _, r := range rawRows(b) {
		if err := put(r[0], r[1]); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

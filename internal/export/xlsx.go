package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fjacquet/camt-export/internal/parsererror"
)

// xlsxSheetName is the worksheet that receives the export rows.
const xlsxSheetName = "Transactions"

// ExportXLSXFile writes the display half of every row to an XLSX workbook
// at the given path. The header row, when present, is rendered bold.
func ExportXLSXFile(path string, rows []Row, opts Options) error {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close XLSX workbook")
		}
	}()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return fmt.Errorf("error naming XLSX sheet: %w", err)
	}
	for r, row := range rows {
		vals := make([]interface{}, len(row))
		for i, v := range row {
			vals[i] = v.Display
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return fmt.Errorf("error addressing XLSX row %d: %w", r+1, err)
		}
		if err := f.SetSheetRow(xlsxSheetName, cell, &vals); err != nil {
			return fmt.Errorf("error writing XLSX row %d: %w", r+1, err)
		}
	}
	if opts.IncludeHeader && len(rows) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("error creating XLSX header style: %w", err)
		}
		if err := f.SetRowStyle(xlsxSheetName, 1, 1, style); err != nil {
			return fmt.Errorf("error styling XLSX header row: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return &parsererror.ExportError{Path: path, Err: err}
	}
	log.WithField("file", path).Info("Wrote XLSX export")
	return nil
}

package store

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"etlcli/internal/dataset"
)

// readXLSX loads the first sheet of an Excel workbook. The first row is
// the header; trailing short rows are padded with missing values.
func readXLSX(path string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q contains no header row", sheets[0])
	}

	headers := rows[0]
	records := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make([]string, len(headers))
		copy(record, row)
		records = append(records, record)
	}

	return gridToDataset(headers, records)
}

// writeXLSX stores the dataset as a single-sheet Excel workbook
func writeXLSX(path string, d *dataset.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, d.NumColumns())
	for c, name := range d.ColumnNames() {
		header[c] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r := 0; r < d.NumRows(); r++ {
		row := make([]any, d.NumColumns())
		for c := range row {
			cell := d.Cell(r, c)
			if cell.IsNull() {
				row[c] = nil
			} else if v, ok := cell.Float(); ok {
				row[c] = v
			} else {
				row[c] = cell.String()
			}
		}
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r, err)
		}
	}

	return f.SaveAs(path)
}

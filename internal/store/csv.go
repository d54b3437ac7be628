package store

import (
	"encoding/csv"
	"fmt"
	"os"

	"golang.org/x/text/encoding/charmap"

	"etlcli/internal/dataset"
)

// readCSV loads a CSV file decoded as ISO-8859-1, the encoding the
// upstream exports use. The first record is the header row; empty fields
// are missing values.
func readCSV(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(f))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file contains no header row")
	}

	return gridToDataset(records[0], records[1:])
}

// writeCSV stores the dataset as UTF-8 CSV with a header row
func writeCSV(path string, d *dataset.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(d.ColumnNames()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for r := 0; r < d.NumRows(); r++ {
		record := make([]string, d.NumColumns())
		for c := range record {
			record[c] = d.Cell(r, c).String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", r, err)
		}
	}

	return writer.Error()
}

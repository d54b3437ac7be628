package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"etlcli/internal/dataset"
)

// readJSON loads a JSON array of objects. Column order follows the key
// order of the first object; keys that only appear in later objects are
// appended in sorted order. Null and absent keys are missing values.
func readJSON(path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var objects []map[string]any
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("file contains no objects")
	}

	names, err := columnOrder(data, objects)
	if err != nil {
		return nil, err
	}

	columns := make([]dataset.Column, len(names))
	for i, name := range names {
		columns[i] = dataset.Column{Name: name}
	}
	d := dataset.New(columns)

	for _, obj := range objects {
		cells := make([]dataset.Cell, len(names))
		for i, name := range names {
			cells[i] = jsonCell(obj[name])
		}
		if err := d.AppendRow(cells); err != nil {
			return nil, err
		}
	}

	dataset.Classify(d)
	return d, nil
}

// columnOrder extracts the first object's key order from the raw bytes
// (Go maps forget it) and appends any keys seen only in later objects.
func columnOrder(data []byte, objects []map[string]any) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Consume the opening '[' and '{' tokens.
	for i := 0; i < 2; i++ {
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("failed to scan JSON keys: %w", err)
		}
	}

	var names []string
	seen := make(map[string]bool)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to scan JSON keys: %w", err)
		}
		if delim, ok := tok.(json.Delim); ok && delim == '}' {
			break
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in first object", tok)
		}
		names = append(names, key)
		seen[key] = true

		// Skip the key's value, whatever its shape.
		var discard any
		if err := dec.Decode(&discard); err != nil {
			return nil, fmt.Errorf("failed to scan JSON keys: %w", err)
		}
	}

	var extra []string
	for _, obj := range objects {
		for key := range obj {
			if !seen[key] {
				seen[key] = true
				extra = append(extra, key)
			}
		}
	}
	sort.Strings(extra)
	return append(names, extra...), nil
}

// jsonCell converts one decoded JSON value to a cell
func jsonCell(v any) dataset.Cell {
	switch val := v.(type) {
	case nil:
		return dataset.Null()
	case float64:
		return dataset.Number(val)
	case string:
		return dataset.Text(val)
	case bool:
		if val {
			return dataset.Text("true")
		}
		return dataset.Text("false")
	default:
		return dataset.Text(fmt.Sprint(val))
	}
}

// writeJSON stores the dataset as a JSON array of objects, preserving
// column order within each object.
func writeJSON(path string, d *dataset.Dataset) error {
	names := d.ColumnNames()
	var buf bytes.Buffer
	buf.WriteByte('[')

	for r := 0; r < d.NumRows(); r++ {
		if r > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for c, name := range names {
			if c > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			value, err := json.Marshal(cellValue(d.Cell(r, c)))
			if err != nil {
				return err
			}
			buf.Write(value)
		}
		buf.WriteByte('}')
	}

	buf.WriteByte(']')
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// cellValue converts a cell to its JSON representation
func cellValue(c dataset.Cell) any {
	if c.IsNull() {
		return nil
	}
	if v, ok := c.Float(); ok {
		return v
	}
	return c.String()
}

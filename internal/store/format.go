package store

import (
	"path/filepath"
	"strings"

	"etlcli/internal/errors"
)

// Format enumerates the supported file formats
type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatXLSX
	FormatParquet
)

// String returns the format's file extension
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatXLSX:
		return "xlsx"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// ParseFormat resolves a file extension (with or without a leading dot)
// to a Format. An extension outside the supported set is an
// unsupported-format error.
func ParseFormat(extension string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(extension, ".")) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx":
		return FormatXLSX, nil
	case "parquet":
		return FormatParquet, nil
	default:
		return 0, errors.NewUnsupportedFormatError(extension)
	}
}

// FormatForPath resolves the format from a file path's extension
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

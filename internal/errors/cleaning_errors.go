package errors

import "fmt"

// NewConfigError creates an error for an invalid configuration value,
// such as an unknown fill strategy. Configuration errors abort the
// operation that received them.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewUndefinedStatisticError creates an error for a statistic that cannot
// be computed, typically because every value in the column is missing.
func NewUndefinedStatisticError(statistic, column string) *AppError {
	return NewAppError(ErrTypeStatistic,
		fmt.Sprintf("%s is undefined for column %q: no non-missing values", statistic, column), nil).
		WithContext("statistic", statistic).
		WithContext("column", column)
}

// NewSchemaDriftError creates an error for a requested column that is
// absent from the dataset.
func NewSchemaDriftError(column string) *AppError {
	return NewAppError(ErrTypeSchema,
		fmt.Sprintf("column %q not present in dataset", column), nil).
		WithContext("column", column)
}

// NewParsingError creates an error for malformed input data
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates an error for a failed read or write against a
// file or database destination.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewUnsupportedFormatError creates an error for a file extension outside
// the supported format set.
func NewUnsupportedFormatError(extension string) *AppError {
	return NewAppError(ErrTypeFormat,
		fmt.Sprintf("unsupported file format %q", extension), nil).
		WithContext("extension", extension)
}

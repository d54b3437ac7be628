package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	err := NewAppError(ErrTypeStorage, "failed to read input", fs.ErrNotExist)
	assert.Equal(t, "[STORAGE] failed to read input: file does not exist", err.Error())

	bare := NewAppError(ErrTypeConfig, "bad strategy", nil)
	assert.Equal(t, "[CONFIG] bad strategy", bare.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError(ErrTypeStorage, "failed to read input", fs.ErrNotExist)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestIsType(t *testing.T) {
	err := NewConfigError("bad strategy", nil)

	assert.True(t, IsType(err, ErrTypeConfig))
	assert.False(t, IsType(err, ErrTypeStorage))
	assert.False(t, IsType(errors.New("plain"), ErrTypeConfig))
	assert.False(t, IsType(nil, ErrTypeConfig))
}

func TestIsTypeSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("stage outlier_capper: %w", NewConfigError("bad percentile", nil))
	assert.True(t, IsType(err, ErrTypeConfig))
}

func TestWithContext(t *testing.T) {
	err := NewAppError(ErrTypeSchema, "column missing", nil).
		WithContext("column", "price")

	require.NotNil(t, err.Context)
	assert.Equal(t, "price", err.Context["column"])
}

func TestNewUndefinedStatisticError(t *testing.T) {
	err := NewUndefinedStatisticError("median", "price")

	assert.True(t, IsType(err, ErrTypeStatistic))
	assert.Contains(t, err.Error(), "median")
	assert.Contains(t, err.Error(), `"price"`)
	assert.Equal(t, "price", err.Context["column"])
}

func TestNewSchemaDriftError(t *testing.T) {
	err := NewSchemaDriftError("ghost")

	assert.True(t, IsType(err, ErrTypeSchema))
	assert.Contains(t, err.Error(), `"ghost"`)
}

func TestNewUnsupportedFormatError(t *testing.T) {
	err := NewUnsupportedFormatError(".txt")

	assert.True(t, IsType(err, ErrTypeFormat))
	assert.Equal(t, ".txt", err.Context["extension"])
}

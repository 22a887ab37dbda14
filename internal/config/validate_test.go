package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/distcheck/internal/errors"
)

func validConfig() *Config {
	return &Config{Version: 1, Format: "text", MaxFileSize: 1024, Color: ColorAuto}
}

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, Validate(validConfig()))
}

func TestValidate_Nil(t *testing.T) {
	assert.Len(t, Validate(nil), 1)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{Version: 0, Format: "xml", MaxFileSize: -1, Color: "rainbow"}

	errs := Validate(cfg)
	require.Len(t, errs, 4)
	assert.True(t, errors.Is(errs[0], ErrVersionTooLow))
	assert.True(t, errors.Is(errs[1], ErrInvalidFormat))
	assert.True(t, errors.Is(errs[2], ErrInvalidColor))
	assert.True(t, errors.Is(errs[3], ErrInvalidFileSize))

	var fieldErr *FieldError
	require.True(t, errors.As(errs[1], &fieldErr))
	assert.Equal(t, "format", fieldErr.Field)
	assert.Equal(t, `format "xml": invalid format`, fieldErr.Error())
}

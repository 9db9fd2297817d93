package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "parse error with source",
			err: &ParseError{
				Parser: "camt",
				Source: "statement.xml",
				Err:    errors.New("XML syntax error on line 3"),
			},
			expected: "camt: failed to parse statement.xml: XML syntax error on line 3",
		},
		{
			name: "parse error without source",
			err: &ParseError{
				Parser: "camt",
				Err:    errors.New("unexpected EOF"),
			},
			expected: "camt: parse failed: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{
		Parser: "camt",
		Source: "input.xml",
		Err:    originalErr,
	}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestStructuralSentinels(t *testing.T) {
	t.Run("empty document survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading 'x.xml': %w", ErrEmptyDocument)
		assert.True(t, errors.Is(err, ErrEmptyDocument))
		assert.False(t, errors.Is(err, ErrUnsupportedRoot))
	})

	t.Run("unsupported root survives ParseError wrapping", func(t *testing.T) {
		err := &ParseError{Parser: "camt", Source: "pain.001.xml", Err: ErrUnsupportedRoot}
		assert.True(t, errors.Is(err, ErrUnsupportedRoot))
	})
}

func TestExportError_Unwrap(t *testing.T) {
	originalErr := errors.New("disk full")
	expErr := &ExportError{Path: "/out/result.csv", Err: originalErr}

	assert.Equal(t, "export to /out/result.csv failed: disk full", expErr.Error())
	assert.True(t, errors.Is(expErr, originalErr))

	var target *ExportError
	assert.True(t, errors.As(error(expErr), &target))
}

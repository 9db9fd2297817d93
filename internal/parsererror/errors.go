// Package parsererror defines the error types shared by the CAMT parsing
// and export packages.
//
// Only structural problems are reported as errors: unreadable input,
// malformed XML, an empty document, or a root element that is not one of
// the supported CAMT messages. Malformed values inside an otherwise
// well-formed document (bad amounts, short dates, unparseable rates) never
// produce an error; the affected field falls back to its zero value so a
// single bad transaction cannot sink a whole statement file.
package parsererror

import (
	"errors"
	"fmt"
)

// Structural sentinels, matched with errors.Is.
var (
	// ErrEmptyDocument is returned when the XML has no root element.
	ErrEmptyDocument = errors.New("empty document")

	// ErrUnsupportedRoot is returned when the document root wraps none of
	// the supported CAMT payloads (BkToCstmrAcctRpt, BkToCstmrStmt,
	// BkToCstmrDbtCdtNtfctn).
	ErrUnsupportedRoot = errors.New("unsupported CAMT root")
)

// ParseError represents a structural error during parsing.
type ParseError struct {
	Parser string
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: failed to parse %s: %v", e.Parser, e.Source, e.Err)
	}
	return fmt.Sprintf("%s: parse failed: %v", e.Parser, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExportError represents a failure while writing converted output.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

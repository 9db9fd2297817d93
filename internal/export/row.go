package export

import "github.com/sirupsen/logrus"

var log = logrus.New()

// SetLogger replaces the package logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Value is one cell of an output row. Display is what gets written to CSV
// or XLSX, Canonical is the normalized form used for ordering, hashing and
// duplicate detection.
type Value struct {
	Display   string
	Canonical string
}

// Row is a fixed-width slice of values, one per Field.
type Row []Value

// NewRow returns an empty row of the full field width.
func NewRow() Row {
	return make(Row, FieldCount)
}

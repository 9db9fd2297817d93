// Package gvc maps ISO 20022 bank transaction codes to the German/Swiss
// legacy business transaction codes (Geschäftsvorfallcodes) that older
// accounting systems still expect.
//
// The mapping table is a semicolon-separated CSV with the columns
// GVC;DC;Domain;Family;SubFamily;DomDesc;FamDesc;SubDesc;Comment. A lookup
// key is the domain, family, and subfamily plus the credit/debit side;
// when the same key appears more than once, the first row wins. A default
// table is embedded in the binary and a replacement can be loaded from
// disk.
package gvc

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"fjacquet/camt-export/internal/textutils"
)

//go:embed codes.csv
var defaultTable []byte

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// tableHeader is the canonical header line, prepended when a table file
// starts directly with data rows.
var tableHeader = []string{
	"GVC", "DC", "Domain", "Family", "SubFamily",
	"DomDesc", "FamDesc", "SubDesc", "Comment",
}

// tableRow mirrors one line of the mapping table.
type tableRow struct {
	GVC       string `csv:"GVC"`
	DC        string `csv:"DC"`
	Domain    string `csv:"Domain"`
	Family    string `csv:"Family"`
	SubFamily string `csv:"SubFamily"`
	DomDesc   string `csv:"DomDesc"`
	FamDesc   string `csv:"FamDesc"`
	SubDesc   string `csv:"SubDesc"`
	Comment   string `csv:"Comment"`
}

// Table is an immutable GVC lookup table.
type Table struct {
	codes map[string]string
}

// Load reads a mapping table from r. Rows with fewer than five columns,
// an invalid credit/debit flag, or an empty domain, family, or subfamily
// are skipped.
func Load(r io.Reader) (*Table, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read GVC table: %w", err)
	}

	var rows []tableRow
	if err := gocsv.UnmarshalCSV(&recordReader{records: records}, &rows); err != nil {
		return nil, fmt.Errorf("failed to map GVC table columns: %w", err)
	}

	table := &Table{codes: make(map[string]string, len(rows))}
	for _, row := range rows {
		iso := textutils.Trim(row.GVC)
		flag := textutils.TrimUpper(row.DC)
		domain := textutils.TrimUpper(row.Domain)
		family := textutils.TrimUpper(row.Family)
		subFamily := textutils.TrimUpper(row.SubFamily)

		if iso == "" || flag == "" || domain == "" || family == "" || subFamily == "" {
			continue
		}
		side := flag[0]
		if side != 'C' && side != 'D' {
			continue
		}

		key := lookupKey(domain, family, subFamily, side == 'C')
		if _, exists := table.codes[key]; !exists {
			table.codes[key] = iso
		}
	}

	log.WithField("count", len(table.codes)).Debug("Loaded GVC mapping table")
	return table, nil
}

// LoadFile reads a mapping table from a semicolon-separated CSV file.
func LoadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GVC table: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return Load(file)
}

var (
	defaultOnce     sync.Once
	defaultCodes    *Table
	defaultOverride *Table
)

// Default returns the shared mapping table: the embedded one, or the table
// installed with SetDefault. The embedded table is built on first use and
// shared afterwards.
func Default() *Table {
	if defaultOverride != nil {
		return defaultOverride
	}
	defaultOnce.Do(func() {
		table, err := Load(bytes.NewReader(defaultTable))
		if err != nil {
			log.WithError(err).Error("Failed to load embedded GVC table")
			table = &Table{codes: map[string]string{}}
		}
		defaultCodes = table
	})
	return defaultCodes
}

// SetDefault replaces the table returned by Default, typically with one
// loaded from a configured file. Call during startup, before exports run;
// a nil table restores the embedded one.
func SetDefault(table *Table) {
	defaultOverride = table
}

// Lookup returns the legacy code for a bank transaction code and booking
// side, or "" when the combination is not in the table.
func (t *Table) Lookup(domain, family, subFamily string, credit bool) string {
	if t == nil || len(t.codes) == 0 {
		return ""
	}
	key := lookupKey(
		textutils.TrimUpper(domain),
		textutils.TrimUpper(family),
		textutils.TrimUpper(subFamily),
		credit,
	)
	return t.codes[key]
}

// Len returns the number of distinct lookup keys in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.codes)
}

func lookupKey(domain, family, subFamily string, credit bool) string {
	side := "D"
	if credit {
		side = "C"
	}
	return domain + ";" + family + ";" + subFamily + ";" + side
}

// readRecords reads raw semicolon-separated records, drops rows that are
// too short to carry a mapping, pads ragged rows, and ensures a header
// record so gocsv can map columns by name.
func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	records := [][]string{tableHeader}
	for _, record := range raw {
		if len(record) > 0 && textutils.Trim(record[0]) == "GVC" {
			continue
		}
		if len(record) < 5 {
			continue
		}
		for len(record) < len(tableHeader) {
			record = append(record, "")
		}
		records = append(records, record[:len(tableHeader)])
	}
	return records, nil
}

// recordReader adapts pre-cleaned records to the reader gocsv consumes.
type recordReader struct {
	records [][]string
	next    int
}

func (r *recordReader) Read() ([]string, error) {
	if r.next >= len(r.records) {
		return nil, io.EOF
	}
	record := r.records[r.next]
	r.next++
	return record, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	remaining := r.records[r.next:]
	r.next = len(r.records)
	return remaining, nil
}

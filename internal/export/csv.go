package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/camt-export/internal/parsererror"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the display half of every row to w. Fields are quoted
// only when they contain the delimiter, a double quote, or a line break,
// so the blank-space balance placeholder passes through unquoted.
func WriteCSV(w io.Writer, rows []Row, opts Options) error {
	if opts.WriteUTF8BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("error writing byte order mark: %w", err)
		}
	}
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				bw.WriteRune(opts.Delimiter)
			}
			bw.WriteString(escapeField(v.Display, opts.Delimiter))
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing CSV rows: %w", err)
	}
	return nil
}

// ExportCSVFile writes the rows to a CSV file at the given path.
func ExportCSVFile(path string, rows []Row, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return &parsererror.ExportError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close CSV file")
		}
	}()
	if err := WriteCSV(f, rows, opts); err != nil {
		return &parsererror.ExportError{Path: path, Err: err}
	}
	log.WithField("file", path).Info("Wrote CSV export")
	return nil
}

func escapeField(s string, delimiter rune) string {
	if !strings.ContainsRune(s, delimiter) && !strings.ContainsAny(s, "\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

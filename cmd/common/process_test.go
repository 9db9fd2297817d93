package common_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/camt-export/cmd/common"
	"fjacquet/camt-export/internal/config"
	"fjacquet/camt-export/internal/export"
	"fjacquet/camt-export/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const statementXML = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.08">
	<BkToCstmrStmt>
		<GrpHdr><MsgId>MSG-001</MsgId></GrpHdr>
		<Stmt>
			<Id>STMT-001</Id>
			<Acct>
				<Id><IBAN>CH9300762011623852957</IBAN></Id>
				<Ccy>CHF</Ccy>
			</Acct>
			<Ntry>
				<Amt Ccy="CHF">150.50</Amt>
				<CdtDbtInd>CRDT</CdtDbtInd>
				<Sts>BOOK</Sts>
				<BookgDt><Dt>2024-01-10</Dt></BookgDt>
				<ValDt><Dt>2024-01-11</Dt></ValDt>
			</Ntry>
			<Ntry>
				<Amt Ccy="CHF">20.00</Amt>
				<CdtDbtInd>DBIT</CdtDbtInd>
				<Sts>BOOK</Sts>
				<BookgDt><Dt>2024-01-05</Dt></BookgDt>
				<ValDt><Dt>2024-01-06</Dt></ValDt>
			</Ntry>
		</Stmt>
	</BkToCstmrStmt>
</Document>`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.xml")
	require.NoError(t, os.WriteFile(path, []byte(statementXML), 0o644))
	return path
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.CSV.Delimiter = ","
	cfg.CSV.IncludeHeader = true
	cfg.CSV.WriteBOM = true
	cfg.Export.SignedAmount = false
	cfg.Export.CreditAsBool = false
	cfg.Export.RemittanceSeparator = " / "
	cfg.Export.EffectiveCredit = true
	cfg.Export.PreferUltimateParty = false

	opts := common.OptionsFromConfig(cfg)
	assert.Equal(t, ',', opts.Delimiter)
	assert.True(t, opts.IncludeHeader)
	assert.True(t, opts.WriteUTF8BOM)
	assert.False(t, opts.SignedAmount)
	assert.False(t, opts.CreditAsBool)
	assert.Equal(t, " / ", opts.RemittanceSeparator)
	assert.True(t, opts.UseEffectiveCredit)
	assert.False(t, opts.PreferUltimateCounterparty)
}

func TestOptionsFromConfigNil(t *testing.T) {
	assert.Equal(t, export.DefaultOptions(), common.OptionsFromConfig(nil))
}

func TestOptionsFromConfigEmptyDelimiterKeepsDefault(t *testing.T) {
	cfg := &config.Config{}
	opts := common.OptionsFromConfig(cfg)
	assert.Equal(t, ';', opts.Delimiter)
}

func TestProcessFileCSV(t *testing.T) {
	input := writeInput(t)
	output := filepath.Join(t.TempDir(), "statement.csv")
	logger := logging.NewMockLogger()

	err := common.ProcessFile(input, output, "csv", true, export.DefaultOptions(), false, logger)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "BookingDate;"))

	// Entries arrive newest first and leave sorted by booking date.
	first := strings.Split(lines[1], ";")
	second := strings.Split(lines[2], ";")
	assert.Equal(t, "2024-01-05", first[export.FieldBookingDate])
	assert.Equal(t, "-20.00", first[export.FieldAmount])
	assert.Equal(t, "2024-01-10", second[export.FieldBookingDate])
	assert.Equal(t, "130.5", second[export.FieldRunningBalance])

	assert.True(t, logger.HasEntry("INFO", "Validation successful."))
	assert.True(t, logger.HasEntry("INFO", "Conversion completed"))
}

func TestProcessFileValueDateOrdering(t *testing.T) {
	input := writeInput(t)
	output := filepath.Join(t.TempDir(), "statement.csv")

	err := common.ProcessFile(input, output, "csv", false, export.DefaultOptions(), true, logging.NewMockLogger())
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	first := strings.Split(lines[1], ";")
	assert.Equal(t, "2024-01-06", first[export.FieldValueDate])
}

func TestProcessFileXLSX(t *testing.T) {
	input := writeInput(t)
	output := filepath.Join(t.TempDir(), "statement.xlsx")

	err := common.ProcessFile(input, output, "XLSX", false, export.DefaultOptions(), false, logging.NewMockLogger())
	require.NoError(t, err)

	book, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, book.Close())
	}()

	rows, err := book.GetRows("Transactions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "BookingDate", rows[0][0])
}

func TestProcessFileUnsupportedFormat(t *testing.T) {
	input := writeInput(t)
	err := common.ProcessFile(input, filepath.Join(t.TempDir(), "out.bin"), "parquet", false, export.DefaultOptions(), false, logging.NewMockLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestProcessFileInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "invoice.xml")
	require.NoError(t, os.WriteFile(input, []byte(`<Document><Invoice><Id>1</Id></Invoice></Document>`), 0o644))

	err := common.ProcessFile(input, filepath.Join(dir, "out.csv"), "csv", true, export.DefaultOptions(), false, logging.NewMockLogger())
	assert.ErrorIs(t, err, common.ErrInvalidFormat)
}

func TestProcessFileParseError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.xml")
	require.NoError(t, os.WriteFile(input, []byte("not xml <<<"), 0o644))

	err := common.ProcessFile(input, filepath.Join(dir, "out.csv"), "csv", false, export.DefaultOptions(), false, logging.NewMockLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing")
}

func TestProcessFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := common.ProcessFile(filepath.Join(dir, "absent.xml"), filepath.Join(dir, "out.csv"), "csv", false, export.DefaultOptions(), false, logging.NewMockLogger())
	assert.Error(t, err)
}

func TestProcessFileDefaultFormatIsCSV(t *testing.T) {
	input := writeInput(t)
	output := filepath.Join(t.TempDir(), fmt.Sprintf("out-%d.csv", os.Getpid()))

	err := common.ProcessFile(input, output, "", false, export.DefaultOptions(), false, logging.NewMockLogger())
	require.NoError(t, err)
	assert.FileExists(t, output)
}

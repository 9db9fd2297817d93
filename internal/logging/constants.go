package logging

// Standardized field names for structured logging.
// Using the same keys everywhere keeps the log output easy to filter
// when a batch run touches dozens of statement files.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldKind       = "document_kind"
	FieldAccount    = "account"
	FieldStatements = "statements"
	FieldEntries    = "entries"
	FieldRows       = "rows"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldRunID      = "run_id"
)

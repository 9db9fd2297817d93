// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/camt-export/internal/camtparser"
	"fjacquet/camt-export/internal/config"
	"fjacquet/camt-export/internal/export"
	"fjacquet/camt-export/internal/logging"
)

// Output formats accepted by the convert pipeline.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ErrInvalidFormat reports that the input file failed format validation.
var ErrInvalidFormat = errors.New("file is not a recognized CAMT document")

// OptionsFromConfig maps the loaded configuration onto export options.
// A nil config yields the defaults.
func OptionsFromConfig(cfg *config.Config) export.Options {
	opts := export.DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.CSV.Delimiter != "" {
		opts.Delimiter = []rune(cfg.CSV.Delimiter)[0]
	}
	opts.IncludeHeader = cfg.CSV.IncludeHeader
	opts.WriteUTF8BOM = cfg.CSV.WriteBOM
	opts.SignedAmount = cfg.Export.SignedAmount
	opts.CreditAsBool = cfg.Export.CreditAsBool
	opts.RemittanceSeparator = cfg.Export.RemittanceSeparator
	opts.UseEffectiveCredit = cfg.Export.EffectiveCredit
	opts.PreferUltimateCounterparty = cfg.Export.PreferUltimateParty
	return opts
}

// ProcessFile converts one CAMT file into a sorted export written to
// outputFile in the requested format.
func ProcessFile(inputFile, outputFile, format string, validate bool, opts export.Options, useValueDate bool, log logging.Logger) error {
	if validate {
		log.Info("Validating format...")
		valid, err := camtparser.ValidateFormat(inputFile)
		if err != nil {
			return fmt.Errorf("error validating file: %w", err)
		}
		if !valid {
			return fmt.Errorf("%s: %w", inputFile, ErrInvalidFormat)
		}
		log.Info("Validation successful.")
	}

	doc, err := camtparser.ParseFile(inputFile)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", inputFile, err)
	}

	rows := export.BuildRows(doc, opts)
	export.SortRows(rows, opts.IncludeHeader, !useValueDate)

	switch strings.ToLower(format) {
	case "", FormatCSV:
		err = export.ExportCSVFile(outputFile, rows, opts)
	case FormatXLSX:
		err = export.ExportXLSXFile(outputFile, rows, opts)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("error writing %s: %w", outputFile, err)
	}

	log.Info("Conversion completed",
		logging.Field{Key: "input", Value: inputFile},
		logging.Field{Key: "output", Value: outputFile},
		logging.Field{Key: "kind", Value: doc.Kind.String()},
		logging.Field{Key: "rows", Value: len(rows)})
	return nil
}

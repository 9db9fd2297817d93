package batch

import (
	"fmt"
	"path/filepath"

	"fjacquet/camt-export/internal/camtparser"
	"fjacquet/camt-export/internal/export"
	"fjacquet/camt-export/internal/fileutils"
	"fjacquet/camt-export/internal/logging"
	"fjacquet/camt-export/internal/report"
)

// ReportFilename is the name of the YAML run report written next to the
// consolidated account files.
const ReportFilename = "run_report.yaml"

// RunOptions configures a batch run.
type RunOptions struct {
	InputDir     string
	OutputDir    string
	Export       export.Options
	UseValueDate bool
}

// Run converts every XML file under InputDir into consolidated per-account
// CSV files under OutputDir and writes a YAML run report next to them.
// Individual file failures are recorded in the report and do not abort the
// run; only environmental failures (listing, directory creation, output
// writes) return an error.
func Run(opts RunOptions, logger logging.Logger) (*report.RunReport, error) {
	files, err := fileutils.ListXMLFiles(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("error listing input files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no XML files found in %s", opts.InputDir)
	}
	if err := fileutils.EnsureDirectoryExists(opts.OutputDir); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	logger.Info("Found files for processing",
		logging.Field{Key: "count", Value: len(files)},
		logging.Field{Key: "input", Value: opts.InputDir})

	// Consolidated files carry a single header each, so per-file rows are
	// assembled without one.
	rowOpts := opts.Export
	rowOpts.IncludeHeader = false

	processor := NewProcessor(logger, rowOpts)
	outcomes := processor.ProcessFiles(files, camtparser.ParseFile)

	run := report.NewRunReport(opts.InputDir, opts.OutputDir)
	aggregator := NewAggregator(logger)
	contributed := make([][]string, len(outcomes))

	for i, outcome := range outcomes {
		result := report.FileResult{Input: outcome.File}
		if outcome.Err != nil {
			result.Error = outcome.Err.Error()
			logger.WithError(outcome.Err).Error("Failed to process file",
				logging.Field{Key: "file", Value: outcome.File})
			run.Add(result)
			continue
		}
		result.Kind = outcome.Doc.Kind.String()
		result.Statements = len(outcome.Doc.Statements)
		result.Rows = len(outcome.Rows)
		contributed[i] = aggregator.Add(outcome.File, outcome.Rows)
		run.Add(result)
	}

	outputs := make(map[string]string)
	for _, group := range aggregator.Groups() {
		export.SortRows(group.Rows, false, !opts.UseValueDate)

		rows := group.Rows
		if opts.Export.IncludeHeader {
			rows = append([]export.Row{export.HeaderRow(opts.Export)}, rows...)
		}

		path := filepath.Join(opts.OutputDir, OutputFilename(group))
		if err := export.ExportCSVFile(path, rows, opts.Export); err != nil {
			return nil, fmt.Errorf("error writing consolidated file for account %s: %w", group.AccountIBAN, err)
		}
		outputs[group.AccountIBAN] = filepath.Base(path)

		logger.Info("Created consolidated file",
			logging.Field{Key: "account", Value: group.AccountIBAN},
			logging.Field{Key: "rows", Value: len(group.Rows)},
			logging.Field{Key: "output", Value: filepath.Base(path)})
	}

	for i := range run.Files {
		for _, iban := range contributed[i] {
			if name, ok := outputs[iban]; ok {
				run.Files[i].Outputs = append(run.Files[i].Outputs, name)
			}
		}
	}

	run.Duplicates = aggregator.Duplicates()
	run.Finish()

	if err := run.WriteFile(filepath.Join(opts.OutputDir, ReportFilename)); err != nil {
		return nil, fmt.Errorf("error writing run report: %w", err)
	}

	logger.Info("Batch run completed",
		logging.Field{Key: "files", Value: len(files)},
		logging.Field{Key: "accounts", Value: len(outputs)},
		logging.Field{Key: "rows", Value: run.TotalRows},
		logging.Field{Key: "failed", Value: run.Failed})

	return run, nil
}

// Package batch handles batch processing of statement directories
package batch

import (
	"fjacquet/camt-export/cmd/common"
	"fjacquet/camt-export/cmd/root"
	"fjacquet/camt-export/internal/batch"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process CAMT files from a directory",
	Long: `Batch process all CAMT XML files from an input directory into consolidated
per-account exports in an output directory.

Every file is parsed, rows from the same account IBAN are merged across
files, sorted chronologically with recomputed running balances, and written
as one CSV per account. A YAML run report with per-file results lands next
to the consolidated files.

Example:
  camt-export batch -i statements/ -o consolidated/`,
	Run: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	root.Log.Infof("Input directory: %s", inputDir)
	root.Log.Infof("Output directory: %s", outputDir)

	if inputDir == "" || outputDir == "" {
		root.Log.Fatal("Input and output directories must be specified")
	}

	run, err := batch.Run(batch.RunOptions{
		InputDir:     inputDir,
		OutputDir:    outputDir,
		Export:       common.OptionsFromConfig(root.Cfg),
		UseValueDate: root.Cfg != nil && root.Cfg.Export.SortByValueDate,
	}, root.GetLogrusAdapter())
	if err != nil {
		root.Log.Fatalf("Error during batch conversion: %v", err)
	}

	if run.Failed > 0 {
		root.Log.Warnf("Batch processing finished with %d failed file(s), see %s", run.Failed, batch.ReportFilename)
	}
	root.Log.Infof("Batch processing completed. %d rows exported from %d file(s).", run.TotalRows, len(run.Files))
}

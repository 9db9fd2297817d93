// Package convert handles single-file conversion commands
package convert

import (
	"fjacquet/camt-export/cmd/common"
	"fjacquet/camt-export/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a CAMT file to a normalized export",
	Long: `Convert a single CAMT.052/053/054 XML file into a normalized CSV or XLSX
export. Rows are sorted by booking date, account and document order, and
running balances are recomputed per account.

Example:
  camt-export convert -i statement.xml -o statement.csv
  camt-export convert -i statement.xml -o statement.xlsx --format xlsx`,
	Run: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Convert command called")
	root.Log.Infof("Input CAMT file: %s", root.SharedFlags.Input)
	root.Log.Infof("Output file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		root.Log.Fatal("Input and output files must be specified")
	}

	opts := common.OptionsFromConfig(root.Cfg)
	useValueDate := root.Cfg != nil && root.Cfg.Export.SortByValueDate

	err := common.ProcessFile(
		root.SharedFlags.Input,
		root.SharedFlags.Output,
		root.SharedFlags.Format,
		root.SharedFlags.Validate,
		opts,
		useValueDate,
		root.GetLogrusAdapter(),
	)
	if err != nil {
		root.Log.Fatalf("Error converting file: %v", err)
	}
	root.Log.Info("CAMT conversion completed successfully!")
}

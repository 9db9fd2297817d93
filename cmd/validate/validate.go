// Package validate handles structural validation of CAMT files
package validate

import (
	"fjacquet/camt-export/cmd/root"
	"fjacquet/camt-export/internal/camtparser"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a CAMT file and report its structure",
	Long: `Validate that a file is a recognizable CAMT.052/053/054 document and report
the detected message kind together with statement, entry and row counts.
The command exits nonzero when the file is missing, malformed, or not a
CAMT document.

Example:
  camt-export validate -i statement.xml`,
	Run: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
	input := root.SharedFlags.Input
	if input == "" {
		root.Log.Fatal("Input file must be specified")
	}

	valid, err := camtparser.ValidateFormat(input)
	if err != nil {
		root.Log.Fatalf("Error validating file: %v", err)
	}
	if !valid {
		root.Log.Fatalf("%s is not a recognized CAMT document", input)
	}

	doc, err := camtparser.ParseFile(input)
	if err != nil {
		root.Log.Fatalf("Error parsing file: %v", err)
	}

	root.Log.Infof("Document kind: %s", doc.Kind)
	root.Log.Infof("Statements: %d, entries: %d, export rows: %d",
		len(doc.Statements), doc.EntryCount(), doc.RowCount())
	root.Log.Info("Validation successful.")
}

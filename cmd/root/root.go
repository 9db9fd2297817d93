// Package root contains the root command for the application
package root

import (
	"fjacquet/camt-export/internal/camtparser"
	"fjacquet/camt-export/internal/config"
	"fjacquet/camt-export/internal/currencyutils"
	"fjacquet/camt-export/internal/export"
	"fjacquet/camt-export/internal/fileutils"
	"fjacquet/camt-export/internal/gvc"
	"fjacquet/camt-export/internal/logging"
	"fjacquet/camt-export/internal/report"
	"fjacquet/camt-export/internal/xmlutils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Validate bool
	Format   string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the loaded configuration after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "camt-export",
		Short: "A CLI tool to convert CAMT.052/053/054 XML files to normalized CSV or XLSX exports.",
		Long: `camt-export converts ISO 20022 bank statement messages (camt.052 account
reports, camt.053 statements, camt.054 debit/credit notifications) into
normalized tabular exports with deterministic ordering, per-account running
balances and per-row content fingerprints.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to camt-export!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Cfg = config.Get()
			Log = config.Logger

			// Hand the configured logger to every package that logs.
			camtparser.SetLogger(Log)
			currencyutils.SetLogger(Log)
			export.SetLogger(Log)
			fileutils.SetLogger(Log)
			gvc.SetLogger(Log)
			report.SetLogger(Log)
			xmlutils.SetLogger(Log)

			if Cfg.GVC.TableFile != "" {
				table, err := gvc.LoadFile(Cfg.GVC.TableFile)
				if err != nil {
					Log.WithError(err).Warn("Failed to load GVC table file, keeping embedded table")
				} else {
					gvc.SetDefault(table)
					Log.WithFields(logrus.Fields{
						"file":  Cfg.GVC.TableFile,
						"codes": table.Len(),
					}).Debug("Loaded GVC table override")
				}
			}
		},
	}

	// SharedFlags are the common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// GetLogrusAdapter wraps the shared logger in the structured logging
// interface the processing packages consume.
func GetLogrusAdapter() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (directory for batch)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (directory for batch)")
	Cmd.PersistentFlags().BoolVarP(&SharedFlags.Validate, "validate", "v", false, "Validate file format before conversion")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "csv", "Output format: csv or xlsx")
}

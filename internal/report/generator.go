// Package report produces YAML run reports for batch conversions: one
// record per input file plus run-level totals, keyed by a run id.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"fjacquet/camt-export/internal/fileutils"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileResult records the outcome of one input file.
type FileResult struct {
	Input      string   `yaml:"input"`
	Kind       string   `yaml:"kind,omitempty"`
	Outputs    []string `yaml:"outputs,omitempty"`
	Statements int      `yaml:"statements,omitempty"`
	Rows       int      `yaml:"rows,omitempty"`
	Error      string   `yaml:"error,omitempty"`
}

// RunReport summarizes one batch run.
type RunReport struct {
	RunID      string       `yaml:"run_id"`
	StartedAt  time.Time    `yaml:"started_at"`
	FinishedAt time.Time    `yaml:"finished_at"`
	InputDir   string       `yaml:"input_dir"`
	OutputDir  string       `yaml:"output_dir"`
	Files      []FileResult `yaml:"files"`
	TotalRows  int          `yaml:"total_rows"`
	Failed     int          `yaml:"failed"`
	Duplicates int          `yaml:"duplicates,omitempty"`
}

// NewRunReport starts a report for a batch run over inputDir.
func NewRunReport(inputDir, outputDir string) *RunReport {
	return &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}

// Add records one file outcome and updates the run totals.
func (r *RunReport) Add(result FileResult) {
	r.Files = append(r.Files, result)
	r.TotalRows += result.Rows
	if result.Error != "" {
		r.Failed++
	}
}

// Finish stamps the end time.
func (r *RunReport) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Marshal renders the report as YAML.
func (r *RunReport) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run report: %w", err)
	}
	return data, nil
}

// WriteFile renders the report and writes it to path, creating parent
// directories as needed.
func (r *RunReport) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run report: %w", err)
	}
	log.WithFields(logrus.Fields{
		"file":  path,
		"files": len(r.Files),
		"rows":  r.TotalRows,
	}).Info("Wrote batch run report")
	return nil
}

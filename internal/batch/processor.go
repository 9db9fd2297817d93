package batch

import (
	"runtime"
	"sync"

	"fjacquet/camt-export/internal/export"
	"fjacquet/camt-export/internal/logging"
	"fjacquet/camt-export/internal/models"
)

// ParseFunc parses one input file into a document.
type ParseFunc func(path string) (*models.Document, error)

// FileOutcome is the result of parsing and exporting a single file.
type FileOutcome struct {
	File string
	Doc  *models.Document
	Rows []export.Row
	Err  error
}

// Processor parses input files on a worker pool and assembles their export
// rows. Outcomes keep the input order regardless of which worker finishes
// first.
type Processor struct {
	logger      logging.Logger
	opts        export.Options
	workerCount int
}

// NewProcessor creates a Processor sized to the available CPUs.
func NewProcessor(logger logging.Logger, opts export.Options) *Processor {
	return &Processor{
		logger:      logger,
		opts:        opts,
		workerCount: runtime.NumCPU(),
	}
}

// ProcessFiles runs parse and row assembly for every file. A failing file
// yields an outcome with Err set; the remaining files still process.
func (p *Processor) ProcessFiles(files []string, parse ParseFunc) []FileOutcome {
	// Sequential processing for a single file avoids pool overhead.
	if len(files) <= 1 {
		return p.processSequential(files, parse)
	}
	return p.processConcurrent(files, parse)
}

func (p *Processor) processSequential(files []string, parse ParseFunc) []FileOutcome {
	outcomes := make([]FileOutcome, 0, len(files))
	for _, file := range files {
		outcomes = append(outcomes, p.processOne(file, parse))
	}
	return outcomes
}

func (p *Processor) processConcurrent(files []string, parse ParseFunc) []FileOutcome {
	workers := p.workerCount
	if workers > len(files) {
		workers = len(files)
	}

	// Workers write into disjoint slots, so the outcome slice needs no lock
	// and keeps the input order.
	outcomes := make([]FileOutcome, len(files))
	jobs := make(chan int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = p.processOne(files[idx], parse)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	p.logger.Debug("Concurrent file processing completed",
		logging.Field{Key: "files", Value: len(files)},
		logging.Field{Key: "workers", Value: workers})

	return outcomes
}

func (p *Processor) processOne(path string, parse ParseFunc) FileOutcome {
	outcome := FileOutcome{File: path}

	doc, err := parse(path)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Doc = doc
	outcome.Rows = export.BuildRows(doc, p.opts)

	p.logger.Debug("Processed file",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "statements", Value: len(doc.Statements)},
		logging.Field{Key: "rows", Value: len(outcome.Rows)})

	return outcome
}

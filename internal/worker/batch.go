package worker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/yash-makwana/ipo/internal/document"
	"github.com/yash-makwana/ipo/internal/model"
)

// Evaluator evaluates one document file into a report
type Evaluator interface {
	EvaluateFile(ctx context.Context, path string) (*model.Report, error)
}

// EvalJob evaluates a single document file
type EvalJob struct {
	Path      string
	Evaluator Evaluator
}

// Execute runs the evaluation
func (j *EvalJob) Execute(ctx context.Context) Result {
	report, err := j.Evaluator.EvaluateFile(ctx, j.Path)
	return &EvalResult{Path: j.Path, Report: report, Error: err}
}

// EvalResult is the outcome of one document evaluation
type EvalResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the evaluation error, if any
func (r *EvalResult) GetError() error {
	return r.Error
}

// BatchProcessor evaluates a directory of documents concurrently. Each
// document is independent; the evaluator and its ontology are shared
// read-only state.
type BatchProcessor struct {
	evaluator   Evaluator
	concurrency int
	limit       int
}

// NewBatchProcessor creates a batch processor. limit caps how many documents
// of the batch are evaluated; zero or negative means no cap.
func NewBatchProcessor(evaluator Evaluator, concurrency, limit int) *BatchProcessor {
	return &BatchProcessor{
		evaluator:   evaluator,
		concurrency: concurrency,
		limit:       limit,
	}
}

// ProcessPaths evaluates the given document files concurrently
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*EvalResult {
	if len(paths) == 0 {
		return []*EvalResult{}
	}

	if b.limit > 0 && len(paths) > b.limit {
		paths = paths[:b.limit]
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	// Submit from a goroutine while Wait drains results, so a batch larger
	// than the channel buffers cannot wedge the pool.
	go func() {
		for _, path := range paths {
			pool.Submit(&EvalJob{Path: path, Evaluator: b.evaluator})
		}
		pool.Close()
	}()

	results := pool.Wait()

	evalResults := make([]*EvalResult, len(results))
	for i, result := range results {
		evalResults[i] = result.(*EvalResult)
	}

	sort.Slice(evalResults, func(i, j int) bool { return evalResults[i].Path < evalResults[j].Path })
	return evalResults
}

// ProcessDir finds document files under dir and evaluates them
func (b *BatchProcessor) ProcessDir(ctx context.Context, dir string) ([]*EvalResult, error) {
	paths, err := FindDocuments(dir)
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// FindDocuments returns all evaluable document files under dir, sorted, so
// the batch cap always selects the same leading subset
func FindDocuments(dir string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && document.IsDocument(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yash-makwana/ipo/internal/model"
)

// Aggregator folds per-document reports into the batch run artifact, with
// per-expectation counters and derived coverage metrics.
type Aggregator struct {
	kinds []model.Kind
	batch *model.BatchReport
}

// NewAggregator creates an aggregator covering the given expectation set
func NewAggregator(expectations []model.Expectation) *Aggregator {
	stats := make(map[model.Kind]*model.KindStats, len(expectations))
	kinds := make([]model.Kind, 0, len(expectations))
	for _, exp := range expectations {
		kinds = append(kinds, exp.ID)
		stats[exp.ID] = &model.KindStats{MissReasons: make(map[string]int)}
	}

	return &Aggregator{
		kinds: kinds,
		batch: &model.BatchReport{
			Stats: stats,
			Files: make(map[string]model.FileSummary),
		},
	}
}

// Add folds one document report into the aggregate
func (a *Aggregator) Add(name string, r *model.Report) {
	for _, kind := range r.Detection.Triggered {
		if s, ok := a.batch.Stats[kind]; ok {
			s.Triggered++
		}
	}
	for _, q := range r.Detection.Emitted {
		if s, ok := a.batch.Stats[q.Kind]; ok {
			s.Emitted++
		}
	}
	for _, m := range r.Detection.Missed {
		if s, ok := a.batch.Stats[m.Kind]; ok {
			s.Missed++
			if m.Reason != "" {
				s.MissReasons[m.Reason]++
			}
		}
	}

	a.batch.Files[name] = model.FileSummary{
		Pages:            r.PageCount,
		EmittedQuestions: r.Detection.EmittedKinds(),
		MissedQuestions:  r.Detection.Missed,
	}
	a.batch.FilesEvaluated++
}

// Build computes derived metrics and returns the batch report
func (a *Aggregator) Build() *model.BatchReport {
	covered := 0
	meanEmitRate := 0.0

	for _, kind := range a.kinds {
		s := a.batch.Stats[kind]
		if s.Triggered > 0 {
			covered++
			meanEmitRate += float64(s.Emitted) / float64(s.Triggered)
		}
	}

	coverage := 0.0
	if len(a.kinds) > 0 {
		coverage = float64(covered) / float64(len(a.kinds))
	}
	if covered > 0 {
		meanEmitRate /= float64(covered)
	}

	a.batch.GeneratedAt = time.Now().UTC()
	a.batch.Metrics = model.BatchMetrics{
		ExpectationCoverageRate:  coverage,
		MeanEmitRateForTriggered: meanEmitRate,
		FilesEvaluated:           a.batch.FilesEvaluated,
	}

	return a.batch
}

// WriteArtifact writes the batch report as a dated JSON artifact in dir and
// returns the artifact path
func (a *Aggregator) WriteArtifact(dir string) (string, error) {
	batch := a.Build()

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal batch report: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("expectation_eval_%d.json", batch.GeneratedAt.Unix()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write batch report: %w", err)
	}

	return path, nil
}

package app

import (
	"context"

	"cleansheet/adapters/cleaning"
	"cleansheet/adapters/cleaning/classifier"
	"cleansheet/adapters/stats/engine"
	"cleansheet/domain/report"
	"cleansheet/domain/table"
	"cleansheet/internal"
	"cleansheet/internal/errors"
)

// AnalysisService orchestrates the full pipeline: optional cleaning, then
// descriptive stats, correlations, anomalies, and recommendations over the
// active table. Services hold no mutable state across calls; the bundle is
// recomputed per invocation.
type AnalysisService struct {
	classifier *classifier.Classifier
	pipeline   *cleaning.Pipeline
	engine     *engine.Engine
	logger     *internal.Logger
}

// NewAnalysisService creates a service with the given cleaning config
func NewAnalysisService(config cleaning.Config) *AnalysisService {
	return &AnalysisService{
		classifier: classifier.NewClassifier(),
		pipeline:   cleaning.NewPipeline(config),
		engine:     engine.NewEngine(),
		logger:     internal.DefaultLogger,
	}
}

// Analyze validates the table, optionally cleans it, and returns the
// analysis bundle. With clean=false the statistics run on the raw table
// with classifier-stamped types. An invalid table is a caller contract
// violation and fails the call.
func (s *AnalysisService) Analyze(ctx context.Context, t table.Table, clean bool) (report.Bundle, error) {
	if err := t.Validate(); err != nil {
		return report.Bundle{}, errors.Wrap(errors.InvalidInput(err.Error()), "table failed contract validation")
	}

	active := s.classifier.ClassifyTable(t)
	var cleaningReport *report.CleaningReport

	if clean {
		cleaned, rep, err := s.pipeline.Clean(ctx, active)
		if err != nil {
			return report.Bundle{}, errors.Wrap(err, "cleaning pipeline failed")
		}
		active = cleaned
		cleaningReport = &rep
	}

	columnStats := s.engine.ColumnStats(active)
	correlations := s.engine.Correlate(active)
	anomalies := s.engine.DetectAnomalies(active, columnStats)
	recommendations := s.engine.Recommend(active, columnStats, correlations, anomalies)

	s.logger.Info("analyzed %q: %d columns, %d rows, %d anomalies, %d recommendations",
		t.SourceName, active.ColumnCount(), active.Rows(), len(anomalies), len(recommendations))

	return report.Bundle{
		Summary:         report.Summarize(active),
		Cleaning:        cleaningReport,
		Stats:           columnStats,
		Correlations:    correlations,
		Anomalies:       anomalies,
		Recommendations: recommendations,
	}, nil
}

// ActiveTable returns the cleaned table for a bundle consumer that needs
// the data itself (exports), re-running the same deterministic pipeline
func (s *AnalysisService) ActiveTable(ctx context.Context, t table.Table, clean bool) (table.Table, error) {
	if err := t.Validate(); err != nil {
		return table.Table{}, errors.InvalidInput(err.Error())
	}
	active := s.classifier.ClassifyTable(t)
	if !clean {
		return active, nil
	}
	cleaned, _, err := s.pipeline.Clean(ctx, active)
	return cleaned, err
}

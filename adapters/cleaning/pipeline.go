package cleaning

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"cleansheet/adapters/cleaning/classifier"
	"cleansheet/adapters/cleaning/coercer"
	"cleansheet/adapters/cleaning/imputer"
	"cleansheet/adapters/cleaning/normalizer"
	"cleansheet/domain/core"
	"cleansheet/domain/report"
	"cleansheet/domain/table"
	"cleansheet/internal"
)

// FlagColumn is the boolean column appended after cleaning, true at row i
// iff any cell of row i differs from the original raw value
const FlagColumn = "cleaning_performed"

// Config bundles the component configs of one pipeline
type Config struct {
	Normalizer normalizer.Config `json:"normalizer"`
	Coercer    coercer.Config    `json:"coercer"`
	Workers    int               `json:"workers"` // column fan-out bound; 0 means NumCPU
}

// DefaultConfig returns the standard pipeline configuration
func DefaultConfig() Config {
	return Config{
		Normalizer: normalizer.DefaultConfig(),
		Coercer:    coercer.DefaultConfig(),
	}
}

// Pipeline orchestrates Normalize -> Coerce -> Impute per column and
// aggregates a cleaning report. Clean is a pure function of its input
// table: no hidden randomness, no shared accumulator across columns.
type Pipeline struct {
	classifier *classifier.Classifier
	normalizer *normalizer.Normalizer
	coercer    *coercer.Coercer
	imputer    *imputer.Imputer
	workers    int64
	logger     *internal.Logger
}

// NewPipeline creates a pipeline with the given config
func NewPipeline(config Config) *Pipeline {
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{
		classifier: classifier.NewClassifier(),
		normalizer: normalizer.NewNormalizer(config.Normalizer),
		coercer:    coercer.NewCoercer(config.Coercer),
		imputer:    imputer.NewImputer(),
		workers:    int64(workers),
		logger:     internal.DefaultLogger,
	}
}

// columnResult collects one column's outcome; indexed assembly keeps the
// parallel path byte-identical to sequential execution
type columnResult struct {
	column table.Column
	report report.ColumnCleaningReport
}

// Clean runs the full pipeline over every column and returns the cleaned
// table plus its report. The input table is never mutated. Columns are
// processed behind a worker bound; the only cross-column synchronization
// point is collecting results before the row-modification flags.
func (p *Pipeline) Clean(ctx context.Context, t table.Table) (table.Table, report.CleaningReport, error) {
	// A flag column from a previous pass is pipeline-owned metadata, not
	// data: it is dropped here and rebuilt, never cleaned or duplicated.
	dataColumns := make([]table.Column, 0, len(t.Columns))
	for _, col := range t.Columns {
		if col.Name != FlagColumn {
			dataColumns = append(dataColumns, col)
		}
	}

	results := make([]columnResult, len(dataColumns))
	sem := semaphore.NewWeighted(p.workers)
	var wg sync.WaitGroup

	for i, col := range dataColumns {
		if err := sem.Acquire(ctx, 1); err != nil {
			return table.Table{}, report.CleaningReport{}, err
		}
		wg.Add(1)
		go func(i int, col table.Column) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = p.cleanColumn(col)
		}(i, col)
	}
	wg.Wait()

	columns := make([]table.Column, 0, len(dataColumns)+1)
	perColumn := make([]report.ColumnCleaningReport, 0, len(dataColumns))
	totals := report.CleaningTotals{}
	for _, r := range results {
		columns = append(columns, r.column)
		perColumn = append(perColumn, r.report)
		totals.ValuesImputed += r.report.ValuesImputed
		totals.ErrorsFixed += r.report.ErrorsFixed
		if r.report.TypeConverted {
			totals.TypesConverted++
		}
	}

	flags, rowsModified := modificationFlags(dataColumns, columns)
	columns = append(columns, flags)

	cleaned := table.Table{SourceName: t.SourceName, Columns: columns}
	rep := report.CleaningReport{
		ID:                core.NewReportID(),
		SourceFingerprint: core.ComputeFingerprint(t.ColumnNames(), t.Rows()),
		TotalRowsModified: rowsModified,
		PerColumn:         perColumn,
		Totals:            totals,
		GeneratedAt:       core.Now(),
	}

	p.logger.Info("cleaned %d columns, %d rows modified, %d imputed, %d fixed, %d converted",
		len(dataColumns), rowsModified, totals.ValuesImputed, totals.ErrorsFixed, totals.TypesConverted)
	return cleaned, rep, nil
}

// cleanColumn runs the three stages over one column in the fixed order
// Normalize -> Coerce -> Impute. The order is contractual: the
// normalizer's sign heuristic must see still-string values.
func (p *Pipeline) cleanColumn(col table.Column) columnResult {
	originalType := col.Type
	if originalType == table.TypeUnknown {
		originalType = p.classifier.Classify(col.Cells)
	}

	fixed, errorsFixed := p.normalizer.Fix(col.Cells, originalType)
	coerced, finalType, converted := p.coercer.Coerce(fixed, col.Name, originalType)
	imputed, valuesImputed, method := p.imputer.Impute(coerced, finalType)

	return columnResult{
		column: table.Column{Name: col.Name, Type: finalType, Cells: imputed},
		report: report.ColumnCleaningReport{
			ColumnName:       col.Name,
			OriginalType:     originalType,
			FinalType:        finalType,
			ValuesImputed:    valuesImputed,
			ErrorsFixed:      errorsFixed,
			TypeConverted:    converted,
			ImputationMethod: method,
		},
	}
}

// modificationFlags builds the appended flag column and counts modified
// rows. A cell counts as changed when its canonical form differs from the
// raw cell's, with missing equal only to missing.
func modificationFlags(original, cleaned []table.Column) (table.Column, int) {
	rows := 0
	if len(original) > 0 {
		rows = len(original[0].Cells)
	}

	cells := make([]table.Cell, rows)
	modified := 0
	for row := 0; row < rows; row++ {
		changed := false
		for i := range original {
			if !original[i].Cells[row].Equal(cleaned[i].Cells[row]) {
				changed = true
				break
			}
		}
		if changed {
			modified++
			cells[row] = table.Text("true")
		} else {
			cells[row] = table.Text("false")
		}
	}

	return table.Column{Name: FlagColumn, Type: table.TypeCategorical, Cells: cells}, modified
}

package engine

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"cleansheet/domain/report"
	"cleansheet/domain/table"
)

// Engine computes the statistical layers of an analysis: descriptive
// stats, correlations, anomalies, and recommendations. It is stateless;
// every call derives its output from the table it is handed.
type Engine struct{}

// NewEngine creates an engine
func NewEngine() *Engine {
	return &Engine{}
}

const topValueLimit = 10

// ColumnStats computes one ColumnStats entry per column, carrying the
// column's recorded type. Numerical columns get descriptive stats over
// their numeric-coercible non-missing values, categorical columns get a
// frequency table, date and text columns get neither.
func (e *Engine) ColumnStats(t table.Table) []report.ColumnStats {
	out := make([]report.ColumnStats, len(t.Columns))
	for i, col := range t.Columns {
		cs := report.ColumnStats{Name: col.Name, Type: col.Type}
		switch col.Type {
		case table.TypeNumerical:
			cs.Numerical = numericalStats(col)
		case table.TypeCategorical:
			cs.Categorical = categoricalStats(col)
		}
		out[i] = cs
	}
	return out
}

// numericalStats computes descriptive statistics for one numerical column.
// An empty numeric set yields an all-zero stats object, never an error: a
// degenerate column is still a row in the report.
func numericalStats(col table.Column) *report.NumericalStats {
	values := numericValues(col)
	if len(values) == 0 {
		return &report.NumericalStats{Outliers: []float64{}}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	std, _ := stats.StandardDeviationPopulation(values)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	// Outlier membership is decided on unrounded values.
	outliers := []float64{}
	for _, v := range values {
		if v < lower || v > upper {
			outliers = append(outliers, round2(v))
		}
	}

	return &report.NumericalStats{
		Mean:     round2(mean),
		Median:   round2(median),
		Std:      round2(std),
		Min:      round2(sorted[0]),
		Max:      round2(sorted[len(sorted)-1]),
		Q1:       round2(q1),
		Q3:       round2(q3),
		Outliers: outliers,
	}
}

// categoricalStats computes the unique count and top-10 frequency table
// over non-missing values. Counts accumulate in first-seen order so ties
// rank the value encountered first.
func categoricalStats(col table.Column) *report.CategoricalStats {
	type entry struct {
		value string
		count int
	}
	index := make(map[string]int)
	ordered := make([]entry, 0)
	nonMissing := 0

	for _, cell := range col.Cells {
		if cell.IsMissing() {
			continue
		}
		nonMissing++
		key := cell.String()
		if i, seen := index[key]; seen {
			ordered[i].count++
		} else {
			index[key] = len(ordered)
			ordered = append(ordered, entry{value: key, count: 1})
		}
	}

	// Stable sort preserves first-seen order among equal counts.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].count > ordered[j].count
	})

	limit := topValueLimit
	if len(ordered) < limit {
		limit = len(ordered)
	}
	top := make([]report.TopValue, limit)
	for i := 0; i < limit; i++ {
		top[i] = report.TopValue{
			Value:      ordered[i].value,
			Count:      ordered[i].count,
			Percentage: round1(float64(ordered[i].count) / float64(nonMissing) * 100),
		}
	}

	return &report.CategoricalStats{UniqueCount: len(ordered), TopValues: top}
}

// numericValues extracts the numeric-coercible, non-missing values of a
// column in row order
func numericValues(col table.Column) []float64 {
	values := make([]float64, 0, len(col.Cells))
	for _, cell := range col.Cells {
		if v, ok := table.ParseNumber(cell); ok {
			values = append(values, v)
		}
	}
	return values
}

// percentile interpolates linearly at index p/100*(n-1) over sorted data.
// Neither the montanaflynn nor the gonum quantile definitions match this
// rank rule, so it stays local.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	index := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(index))
	hi := int(math.Ceil(index))
	if lo == hi {
		return sorted[lo]
	}
	frac := index - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

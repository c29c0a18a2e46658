package engine

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"cleansheet/domain/report"
	"cleansheet/domain/table"
)

// Correlate computes the pairwise Pearson matrix over numerical columns.
// Rows enter a pair only when both cells are numeric-coercible (pairwise
// complete-case deletion). Self-correlation is assigned 1, not computed.
// Fewer than 2 usable pairs or zero variance in either column yields 0.
// Each unordered pair is computed once and mirrored, so the matrix is
// exactly symmetric. Coefficients round to 3 decimals.
func (e *Engine) Correlate(t table.Table) report.CorrelationMatrix {
	numerical := make([]table.Column, 0, len(t.Columns))
	for _, col := range t.Columns {
		if col.Type == table.TypeNumerical {
			numerical = append(numerical, col)
		}
	}

	matrix := make(report.CorrelationMatrix, len(numerical))
	for _, col := range numerical {
		matrix[col.Name] = map[string]float64{col.Name: 1}
	}

	for i := 0; i < len(numerical); i++ {
		for j := i + 1; j < len(numerical); j++ {
			r := pairCorrelation(numerical[i], numerical[j])
			matrix[numerical[i].Name][numerical[j].Name] = r
			matrix[numerical[j].Name][numerical[i].Name] = r
		}
	}
	return matrix
}

// pairCorrelation computes one Pearson coefficient over complete cases
func pairCorrelation(a, b table.Column) float64 {
	xs := make([]float64, 0, len(a.Cells))
	ys := make([]float64, 0, len(b.Cells))
	for row := range a.Cells {
		x, okX := table.ParseNumber(a.Cells[row])
		y, okY := table.ParseNumber(b.Cells[row])
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	if len(xs) < 2 {
		return 0
	}

	r := stat.Correlation(xs, ys, nil)
	// Zero variance gives NaN; the contract resolves that to 0.
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return round3(r)
}

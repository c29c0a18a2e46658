package imputer

import (
	"github.com/montanaflynn/stats"

	"cleansheet/domain/table"
)

// Imputation method labels recorded in cleaning reports
const (
	MethodMedian       = "median"
	MethodMode         = "mode"
	MethodFrequentDate = "most_frequent_date"
	MethodFrequentText = "most_frequent_text"
	MethodNone         = "no_imputation_possible"
)

// Imputer fills missing cells with a type-appropriate central-tendency
// estimator
type Imputer struct{}

// NewImputer creates an imputer
func NewImputer() *Imputer {
	return &Imputer{}
}

// Impute fills every missing cell with a single value computed from the
// column's non-missing cells and returns the new cells, the number filled,
// and the method label. An all-missing column comes back unchanged.
func (im *Imputer) Impute(cells []table.Cell, columnType table.ColumnType) ([]table.Cell, int, string) {
	missing := 0
	for _, cell := range cells {
		if cell.IsMissing() {
			missing++
		}
	}
	if missing == len(cells) {
		out := make([]table.Cell, len(cells))
		copy(out, cells)
		return out, 0, MethodNone
	}

	var fill table.Cell
	var method string
	var ok bool

	switch columnType {
	case table.TypeNumerical:
		fill, ok = medianCell(cells)
		method = MethodMedian
	case table.TypeCategorical:
		fill, ok = modeCell(cells)
		method = MethodMode
	case table.TypeDate:
		fill, ok = modeCell(cells)
		method = MethodFrequentDate
	default:
		fill, ok = modeCell(cells)
		method = MethodFrequentText
	}
	if !ok {
		// Non-missing values exist but none are usable for the method
		// (e.g. a numerical column whose survivors are all text junk).
		out := make([]table.Cell, len(cells))
		copy(out, cells)
		return out, 0, method
	}

	out := make([]table.Cell, len(cells))
	imputed := 0
	for i, cell := range cells {
		if cell.IsMissing() {
			out[i] = fill
			imputed++
		} else {
			out[i] = cell
		}
	}
	return out, imputed, method
}

// medianCell computes the median of the numeric-parseable cells. An
// even-length set averages the two middle sorted values.
func medianCell(cells []table.Cell) (table.Cell, bool) {
	values := make([]float64, 0, len(cells))
	for _, cell := range cells {
		if v, ok := table.ParseNumber(cell); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return table.Cell{}, false
	}
	median, err := stats.Median(values)
	if err != nil {
		return table.Cell{}, false
	}
	return table.Number(median), true
}

// modeCell returns the most frequent non-missing cell by canonical literal.
// Counts accumulate in first-seen order so ties break to the value
// encountered first, deterministically.
func modeCell(cells []table.Cell) (table.Cell, bool) {
	type entry struct {
		cell  table.Cell
		count int
	}
	index := make(map[string]int)
	ordered := make([]entry, 0)

	for _, cell := range cells {
		if cell.IsMissing() {
			continue
		}
		key := cell.String()
		if i, seen := index[key]; seen {
			ordered[i].count++
		} else {
			index[key] = len(ordered)
			ordered = append(ordered, entry{cell: cell, count: 1})
		}
	}
	if len(ordered) == 0 {
		return table.Cell{}, false
	}

	best := ordered[0]
	for _, e := range ordered[1:] {
		if e.count > best.count {
			best = e
		}
	}
	return best.cell, true
}

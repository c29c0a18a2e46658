package classifier

import (
	"cleansheet/domain/table"
)

// Policy thresholds for type inference. These are fixed policy, not
// configuration: changing them changes what every report means.
const (
	numericRatio     = 0.8
	dateRatio        = 0.8
	uniqueRatioLimit = 0.5
	uniqueCountLimit = 20
)

// Classifier infers a column's semantic type from its raw values
type Classifier struct{}

// NewClassifier creates a classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify infers the semantic type of a column from its non-missing
// cells. Rules are checked in a fixed priority order, which is also the
// tie-break: numerical before date before categorical before text.
func (c *Classifier) Classify(cells []table.Cell) table.ColumnType {
	numericCount := 0
	dateCount := 0
	unique := make(map[string]bool)
	total := 0

	for _, cell := range cells {
		if cell.IsMissing() {
			continue
		}
		total++
		if _, ok := table.ParseNumber(cell); ok {
			numericCount++
		}
		if _, ok := table.ParseDate(cell); ok {
			dateCount++
		}
		unique[cell.String()] = true
	}

	if total == 0 {
		return table.TypeText
	}
	if float64(numericCount)/float64(total) > numericRatio {
		return table.TypeNumerical
	}
	if float64(dateCount)/float64(total) > dateRatio {
		return table.TypeDate
	}
	if float64(len(unique))/float64(total) < uniqueRatioLimit && len(unique) < uniqueCountLimit {
		return table.TypeCategorical
	}
	return table.TypeText
}

// ClassifyTable returns a copy of the table with every untyped column
// stamped with its inferred type. Already-typed columns keep their type.
func (c *Classifier) ClassifyTable(t table.Table) table.Table {
	columns := make([]table.Column, len(t.Columns))
	for i, col := range t.Columns {
		columns[i] = col
		if col.Type == table.TypeUnknown {
			columns[i].Type = c.Classify(col.Cells)
		}
	}
	return table.Table{SourceName: t.SourceName, Columns: columns}
}

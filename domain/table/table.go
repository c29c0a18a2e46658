package table

import (
	"fmt"
)

// ColumnType is the semantic type assigned to a column by classification
// or coercion
type ColumnType string

const (
	TypeUnknown     ColumnType = ""
	TypeNumerical   ColumnType = "numerical"
	TypeCategorical ColumnType = "categorical"
	TypeDate        ColumnType = "date"
	TypeText        ColumnType = "text"
)

// Column holds one named, typed sequence of cells
type Column struct {
	Name  string     `json:"name"`
	Type  ColumnType `json:"type"`
	Cells []Cell     `json:"values"`
}

// MissingCount returns the number of missing cells
func (c Column) MissingCount() int {
	count := 0
	for _, cell := range c.Cells {
		if cell.IsMissing() {
			count++
		}
	}
	return count
}

// MissingRate returns missing cells as a fraction of all cells
func (c Column) MissingRate() float64 {
	if len(c.Cells) == 0 {
		return 0
	}
	return float64(c.MissingCount()) / float64(len(c.Cells))
}

// NonMissing returns the column's non-missing cells in order
func (c Column) NonMissing() []Cell {
	out := make([]Cell, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.IsMissing() {
			out = append(out, cell)
		}
	}
	return out
}

// Table is a rectangular, immutable collection of columns. Transformations
// return new tables; no component mutates a caller-owned table in place.
type Table struct {
	SourceName string   `json:"source_name"`
	Columns    []Column `json:"columns"`
}

// Rows returns the row count (equal across columns by invariant)
func (t Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// ColumnCount returns the number of columns
func (t Table) ColumnCount() int {
	return len(t.Columns)
}

// Column returns the named column, or false when absent
func (t Table) Column(name string) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Validate checks the rectangular invariant and name uniqueness. A failure
// is a contract violation by the caller, not a data-quality finding.
func (t Table) Validate() error {
	seen := make(map[string]bool, len(t.Columns))
	rows := t.Rows()
	for _, col := range t.Columns {
		if col.Name == "" {
			return fmt.Errorf("column with empty name")
		}
		if seen[col.Name] {
			return fmt.Errorf("duplicate column name %q", col.Name)
		}
		seen[col.Name] = true
		if len(col.Cells) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Cells), rows)
		}
	}
	return nil
}

// ColumnNames returns the column names in table order
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

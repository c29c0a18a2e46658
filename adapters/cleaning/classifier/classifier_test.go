package classifier

import (
	"fmt"
	"testing"

	"cleansheet/domain/table"
)

func textCells(literals ...string) []table.Cell {
	cells := make([]table.Cell, len(literals))
	for i, s := range literals {
		if s == "" {
			cells[i] = table.Null()
		} else {
			cells[i] = table.Text(s)
		}
	}
	return cells
}

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		cells []table.Cell
		want  table.ColumnType
	}{
		{
			name:  "numeric strings",
			cells: textCells("25", "34", "45", "28", "52"),
			want:  table.TypeNumerical,
		},
		{
			name:  "mostly numeric passes the 0.8 bar",
			cells: textCells("1", "2", "3", "4", "5", "x"),
			want:  table.TypeNumerical,
		},
		{
			name:  "exactly 0.8 numeric is not enough",
			cells: textCells("1", "2", "3", "4", "x"),
			want:  table.TypeText,
		},
		{
			name:  "dates",
			cells: textCells("2024-01-01", "2024-02-15", "01/20/2024", "2024-03-09", "2024-04-30"),
			want:  table.TypeDate,
		},
		{
			name:  "low cardinality strings are categorical",
			cells: textCells("red", "blue", "red", "red", "green", "blue", "red", "green"),
			want:  table.TypeCategorical,
		},
		{
			name:  "high cardinality strings are text",
			cells: textCells("alpha", "beta", "gamma", "delta", "epsilon"),
			want:  table.TypeText,
		},
		{
			name:  "empty input is text",
			cells: nil,
			want:  table.TypeText,
		},
		{
			name:  "all missing is text",
			cells: textCells("", "", ""),
			want:  table.TypeText,
		},
		{
			name:  "missing values are excluded from ratios",
			cells: textCells("1", "2", "3", "4", "5", "", ""),
			want:  table.TypeNumerical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.cells); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

// Numeric integers that also look like codes stay numerical: rule order is
// the tie-break, numerical is checked before categorical.
func TestClassifyNumericBeforeCategorical(t *testing.T) {
	c := NewClassifier()
	cells := textCells("1", "2", "1", "2", "1", "2", "1", "2")
	if got := c.Classify(cells); got != table.TypeNumerical {
		t.Errorf("Classify() = %s, want numerical", got)
	}
}

func TestClassifyCategoricalNeedsBothBounds(t *testing.T) {
	c := NewClassifier()

	// 25 distinct values over 100 rows: ratio 0.25 < 0.5 but count >= 20.
	var cells []table.Cell
	for i := 0; i < 100; i++ {
		cells = append(cells, table.Text(fmt.Sprintf("group_%d", i%25)))
	}
	if got := c.Classify(cells); got != table.TypeText {
		t.Errorf("Classify() = %s, want text when unique count exceeds 20", got)
	}
}

func TestClassifyTableStampsUntypedColumns(t *testing.T) {
	c := NewClassifier()
	input := table.Table{Columns: []table.Column{
		{Name: "n", Cells: textCells("1", "2", "3")},
		{Name: "pre", Type: table.TypeDate, Cells: textCells("x", "y", "z")},
	}}

	out := c.ClassifyTable(input)
	if out.Columns[0].Type != table.TypeNumerical {
		t.Errorf("untyped column got %s, want numerical", out.Columns[0].Type)
	}
	if out.Columns[1].Type != table.TypeDate {
		t.Errorf("pre-typed column got %s, want date preserved", out.Columns[1].Type)
	}
	if input.Columns[0].Type != table.TypeUnknown {
		t.Error("ClassifyTable must not mutate its input")
	}
}

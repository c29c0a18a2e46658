package engine

import (
	"testing"

	"cleansheet/domain/table"
	"cleansheet/internal/testkit"
)

func TestCorrelatePerfectLinear(t *testing.T) {
	e := NewEngine()
	tbl := table.Table{
		SourceName: "pairs.csv",
		Columns: []table.Column{
			testkit.NumberColumn("x", 1, 2, 3, 4),
			testkit.NumberColumn("y", 2, 4, 6, 8),
			testkit.NumberColumn("z", 8, 6, 4, 2),
		},
	}

	m := e.Correlate(tbl)
	if got := m["x"]["y"]; got != 1 {
		t.Errorf("r(x,y) = %v, want 1", got)
	}
	if got := m["x"]["z"]; got != -1 {
		t.Errorf("r(x,z) = %v, want -1", got)
	}
	for _, name := range []string{"x", "y", "z"} {
		if m[name][name] != 1 {
			t.Errorf("r(%s,%s) = %v, want 1", name, name, m[name][name])
		}
	}
}

func TestCorrelateSymmetry(t *testing.T) {
	e := NewEngine()
	tbl := table.Table{
		SourceName: "pairs.csv",
		Columns: []table.Column{
			testkit.NumberColumn("a", 1, 5, 2, 8, 3),
			testkit.NumberColumn("b", 4, 2, 9, 1, 7),
		},
	}

	m := e.Correlate(tbl)
	if m["a"]["b"] != m["b"]["a"] {
		t.Errorf("matrix not symmetric: %v vs %v", m["a"]["b"], m["b"]["a"])
	}
	if m["a"]["b"] < -1 || m["a"]["b"] > 1 {
		t.Errorf("r out of range: %v", m["a"]["b"])
	}
}

func TestCorrelateZeroVariance(t *testing.T) {
	e := NewEngine()
	tbl := table.Table{
		SourceName: "pairs.csv",
		Columns: []table.Column{
			testkit.NumberColumn("flat", 5, 5, 5, 5),
			testkit.NumberColumn("x", 1, 2, 3, 4),
		},
	}

	if got := e.Correlate(tbl)["flat"]["x"]; got != 0 {
		t.Errorf("zero-variance pair r = %v, want 0", got)
	}
}

func TestCorrelateTooFewCompletePairs(t *testing.T) {
	e := NewEngine()
	a := table.Column{Name: "a", Type: table.TypeNumerical, Cells: []table.Cell{
		table.Number(1), table.Null(), table.Null(), table.Number(4),
	}}
	b := table.Column{Name: "b", Type: table.TypeNumerical, Cells: []table.Cell{
		table.Null(), table.Number(2), table.Number(3), table.Number(8),
	}}
	tbl := table.Table{SourceName: "pairs.csv", Columns: []table.Column{a, b}}

	// Only row 3 is complete in both columns.
	if got := e.Correlate(tbl)["a"]["b"]; got != 0 {
		t.Errorf("single complete pair r = %v, want 0", got)
	}
}

func TestCorrelateSkipsNonNumerical(t *testing.T) {
	e := NewEngine()
	region := testkit.TextColumn("region", "North", "South", "East")
	region.Type = table.TypeCategorical
	tbl := table.Table{
		SourceName: "pairs.csv",
		Columns: []table.Column{
			testkit.NumberColumn("x", 1, 2, 3),
			region,
		},
	}

	m := e.Correlate(tbl)
	if _, ok := m["region"]; ok {
		t.Error("categorical columns must not enter the matrix")
	}
	if len(m) != 1 {
		t.Errorf("matrix size = %d, want 1", len(m))
	}
}

func TestCorrelatePairwiseDeletion(t *testing.T) {
	e := NewEngine()
	a := table.Column{Name: "a", Type: table.TypeNumerical, Cells: []table.Cell{
		table.Number(1), table.Number(2), table.Null(), table.Number(3),
	}}
	b := table.Column{Name: "b", Type: table.TypeNumerical, Cells: []table.Cell{
		table.Number(2), table.Number(4), table.Number(99), table.Number(6),
	}}
	tbl := table.Table{SourceName: "pairs.csv", Columns: []table.Column{a, b}}

	// Row 2 drops out; what remains is exactly linear.
	if got := e.Correlate(tbl)["a"]["b"]; got != 1 {
		t.Errorf("r = %v, want 1 after dropping the incomplete row", got)
	}
}

package table

import (
	"testing"
)

func TestCellMissingPredicate(t *testing.T) {
	tests := []struct {
		name    string
		cell    Cell
		missing bool
	}{
		{"null", Null(), true},
		{"zero value", Cell{}, true},
		{"empty string", Text(""), true},
		{"whitespace only", Text("   "), true},
		{"tab and newline", Text("\t\n"), true},
		{"zero string", Text("0"), false},
		{"zero number", Number(0), false},
		{"plain text", Text("hello"), false},
		{"negative number", Number(-1.5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.IsMissing(); got != tt.missing {
				t.Errorf("IsMissing() = %v, want %v", got, tt.missing)
			}
		})
	}
}

func TestCellCanonicalString(t *testing.T) {
	tests := []struct {
		cell Cell
		want string
	}{
		{Number(10), "10"},
		{Number(10.5), "10.5"},
		{Number(-5), "-5"},
		{Text("abc"), "abc"},
		{Null(), ""},
	}
	for _, tt := range tests {
		if got := tt.cell.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCellEqual(t *testing.T) {
	if !Null().Equal(Text("  ")) {
		t.Error("missing cells should compare equal regardless of representation")
	}
	if !Number(10).Equal(Text("10")) {
		t.Error("number and its canonical literal should compare equal")
	}
	if Number(10).Equal(Number(11)) {
		t.Error("distinct numbers should not compare equal")
	}
	if Null().Equal(Text("0")) {
		t.Error("missing should not equal a present zero")
	}
}

func TestParseNumber(t *testing.T) {
	if _, ok := ParseNumber(Text("abc")); ok {
		t.Error("expected parse failure for non-numeric text")
	}
	if _, ok := ParseNumber(Null()); ok {
		t.Error("missing cells must never parse")
	}
	if v, ok := ParseNumber(Text(" 42.5 ")); !ok || v != 42.5 {
		t.Errorf("ParseNumber(\" 42.5 \") = %v, %v", v, ok)
	}
	if v, ok := ParseNumber(Number(-3)); !ok || v != -3 {
		t.Errorf("ParseNumber(Number(-3)) = %v, %v", v, ok)
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{"2024-01-15", "01/15/2024", "2024/01/15", "15-Jan-2024"}
	for _, literal := range valid {
		if _, ok := ParseDate(Text(literal)); !ok {
			t.Errorf("expected %q to parse as a date", literal)
		}
	}
	if _, ok := ParseDate(Text("not a date")); ok {
		t.Error("expected parse failure for non-date text")
	}
	if _, ok := ParseDate(Number(20240115)); ok {
		t.Error("bare numbers must not parse as dates")
	}
}

func TestTableInvariants(t *testing.T) {
	valid := Table{Columns: []Column{
		{Name: "a", Cells: []Cell{Number(1), Number(2)}},
		{Name: "b", Cells: []Cell{Text("x"), Null()}},
	}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid table failed validation: %v", err)
	}
	if valid.Rows() != 2 || valid.ColumnCount() != 2 {
		t.Errorf("Rows/ColumnCount = %d/%d, want 2/2", valid.Rows(), valid.ColumnCount())
	}

	ragged := Table{Columns: []Column{
		{Name: "a", Cells: []Cell{Number(1), Number(2)}},
		{Name: "b", Cells: []Cell{Text("x")}},
	}}
	if err := ragged.Validate(); err == nil {
		t.Error("expected validation failure for ragged table")
	}

	duplicate := Table{Columns: []Column{
		{Name: "a", Cells: []Cell{Number(1)}},
		{Name: "a", Cells: []Cell{Number(2)}},
	}}
	if err := duplicate.Validate(); err == nil {
		t.Error("expected validation failure for duplicate column names")
	}
}

func TestMissingRate(t *testing.T) {
	col := Column{Name: "c", Cells: []Cell{Number(1), Null(), Text(" "), Text("x"), Null()}}
	if got := col.MissingCount(); got != 3 {
		t.Errorf("MissingCount() = %d, want 3", got)
	}
	if got := col.MissingRate(); got != 0.6 {
		t.Errorf("MissingRate() = %v, want 0.6", got)
	}
}

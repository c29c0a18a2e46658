package table

import (
	"strconv"
	"strings"
)

// CellKind defines the storage type for cells
type CellKind string

const (
	KindNull   CellKind = "null"
	KindNumber CellKind = "number"
	KindText   CellKind = "text"
)

// Cell is a tagged variant holding one table value. The zero value is a
// null cell. Cells are immutable; transformations build new ones.
type Cell struct {
	kind CellKind
	num  float64
	text string
}

// Null creates a null cell
func Null() Cell {
	return Cell{kind: KindNull}
}

// Number creates a numeric cell
func Number(n float64) Cell {
	return Cell{kind: KindNumber, num: n}
}

// Text creates a text cell
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Kind returns the cell's storage kind. The zero value reports KindNull.
func (c Cell) Kind() CellKind {
	if c.kind == "" {
		return KindNull
	}
	return c.kind
}

// IsMissing reports whether the cell counts as missing: null, or text that
// is empty or whitespace-only. Every component uses this single predicate.
func (c Cell) IsMissing() bool {
	switch c.Kind() {
	case KindNull:
		return true
	case KindText:
		return strings.TrimSpace(c.text) == ""
	}
	return false
}

// IsNumber reports whether the cell stores a number
func (c Cell) IsNumber() bool {
	return c.Kind() == KindNumber
}

// Float returns the numeric value and whether the cell stores one
func (c Cell) Float() (float64, bool) {
	if c.Kind() == KindNumber {
		return c.num, true
	}
	return 0, false
}

// String returns the canonical string form of the cell. Numbers use the
// shortest exact decimal representation, null is the empty string.
func (c Cell) String() string {
	switch c.Kind() {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindText:
		return c.text
	}
	return ""
}

// Equal compares two cells by missingness and canonical string form.
// Missing compares equal only to missing.
func (c Cell) Equal(other Cell) bool {
	if c.IsMissing() || other.IsMissing() {
		return c.IsMissing() == other.IsMissing()
	}
	return c.String() == other.String()
}

package coercer

import (
	"math"
	"strconv"
	"strings"

	"cleansheet/domain/table"
)

// Config defines the column-name keyword tables that route coercion.
// Matching is case-insensitive substring, first list that matches wins, in
// the order price, quantity, date. "amount" appears in both the price and
// quantity lists; the fixed precedence resolves it to price.
type Config struct {
	PriceKeywords    []string `json:"price_keywords"`
	QuantityKeywords []string `json:"quantity_keywords"`
	DateKeywords     []string `json:"date_keywords"`
}

// DefaultConfig returns the standard keyword tables
func DefaultConfig() Config {
	return Config{
		PriceKeywords: []string{
			"price", "cost", "amount", "value", "fee", "charge",
			"rate", "salary", "wage", "revenue", "income",
		},
		QuantityKeywords: []string{
			"quantity", "count", "number", "qty", "amount", "total",
			"sum", "volume", "size", "length", "width", "height",
		},
		DateKeywords: []string{
			"date", "time", "created", "updated", "modified",
			"timestamp", "year", "month", "day",
		},
	}
}

// Coercer converts a column's raw values to a canonical representation
// based on name-pattern heuristics, with the classified type as a fallback
// signal for dates
type Coercer struct {
	config Config
}

// NewCoercer creates a coercer with the given config
func NewCoercer(config Config) *Coercer {
	return &Coercer{config: config}
}

// Coerce converts the cells according to the first matching name rule and
// returns the new cells, the resulting column type, and whether a
// conversion happened. Unmatched columns pass through unchanged with the
// classified type. Non-parseable, non-missing values become missing.
func (c *Coercer) Coerce(cells []table.Cell, columnName string, classified table.ColumnType) ([]table.Cell, table.ColumnType, bool) {
	name := strings.ToLower(columnName)

	switch {
	case matchesAny(name, c.config.PriceKeywords):
		return c.coerceEach(cells, parsePrice), table.TypeNumerical, true
	case matchesAny(name, c.config.QuantityKeywords):
		return c.coerceEach(cells, parseQuantity), table.TypeNumerical, true
	case matchesAny(name, c.config.DateKeywords) || classified == table.TypeDate:
		return c.coerceEach(cells, parseDate), table.TypeDate, true
	}

	out := make([]table.Cell, len(cells))
	copy(out, cells)
	return out, classified, false
}

// coerceEach applies a parse to every non-missing cell. Parse failures
// become missing rather than errors: a value the rule cannot read is a
// defect to impute over, not a reason to stop.
func (c *Coercer) coerceEach(cells []table.Cell, parse func(table.Cell) (table.Cell, bool)) []table.Cell {
	out := make([]table.Cell, len(cells))
	for i, cell := range cells {
		if cell.IsMissing() {
			out[i] = cell
			continue
		}
		if converted, ok := parse(cell); ok {
			out[i] = converted
		} else {
			out[i] = table.Null()
		}
	}
	return out
}

// currencySymbols are stripped before price parsing
var currencySymbols = []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY"}

// parsePrice parses a float after stripping currency symbols and
// thousands-separator commas
func parsePrice(cell table.Cell) (table.Cell, bool) {
	if n, ok := cell.Float(); ok {
		return table.Number(n), true
	}
	literal := strings.TrimSpace(cell.String())
	for _, symbol := range currencySymbols {
		literal = strings.ReplaceAll(literal, symbol, "")
	}
	literal = strings.ReplaceAll(literal, ",", "")
	literal = strings.TrimSpace(literal)

	v, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return table.Cell{}, false
	}
	return table.Number(v), true
}

// parseQuantity parses an integer after stripping commas. Fractional
// literals truncate toward zero, matching integer-parse semantics.
func parseQuantity(cell table.Cell) (table.Cell, bool) {
	if n, ok := cell.Float(); ok {
		return table.Number(math.Trunc(n)), true
	}
	literal := strings.ReplaceAll(strings.TrimSpace(cell.String()), ",", "")
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return table.Number(float64(i)), true
	}
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return table.Cell{}, false
	}
	return table.Number(math.Trunc(v)), true
}

// parseDate parses a calendar date and normalizes it to YYYY-MM-DD
func parseDate(cell table.Cell) (table.Cell, bool) {
	t, ok := table.ParseDate(cell)
	if !ok {
		return table.Cell{}, false
	}
	return table.Text(t.Format(table.ISODate)), true
}

// matchesAny reports whether the lower-cased name contains any keyword
func matchesAny(name string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

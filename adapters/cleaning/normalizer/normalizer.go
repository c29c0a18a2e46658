package normalizer

import (
	"math"
	"strconv"
	"strings"

	"cleansheet/domain/table"
)

// Config defines the normalization rules. The sentinel set is passed in
// rather than hard-coded so locale-specific token sets can be substituted.
type Config struct {
	Sentinels     []string `json:"sentinels"`      // literals that mean "missing"
	PositiveShare float64  `json:"positive_share"` // share of >=0 values before negatives get flipped
}

// DefaultConfig returns the standard sentinel set and thresholds
func DefaultConfig() Config {
	return Config{
		Sentinels:     []string{"n/a", "na", "unknown", "null", "none", "-", "--", "?", "missing"},
		PositiveShare: 0.8,
	}
}

// Normalizer detects and repairs erroneous literal values within a column
type Normalizer struct {
	config    Config
	sentinels map[string]bool
}

// NewNormalizer creates a normalizer with the given config
func NewNormalizer(config Config) *Normalizer {
	sentinels := make(map[string]bool, len(config.Sentinels))
	for _, s := range config.Sentinels {
		sentinels[strings.ToLower(strings.TrimSpace(s))] = true
	}
	return &Normalizer{config: config, sentinels: sentinels}
}

// Fix returns a repaired copy of the cells and the number of values fixed.
// Sentinel tokens become missing. For numerical columns that look like
// price/quantity data (a clear majority of parseable values >= 0), negative
// values are flipped to their absolute value. Missing cells are never
// touched; the input slice is never mutated.
func (n *Normalizer) Fix(cells []table.Cell, columnType table.ColumnType) ([]table.Cell, int) {
	out := make([]table.Cell, len(cells))
	fixed := 0

	for i, cell := range cells {
		if !cell.IsMissing() && n.isSentinel(cell) {
			out[i] = table.Null()
			fixed++
			continue
		}
		out[i] = cell
	}

	if columnType == table.TypeNumerical && n.positiveMajority(out) {
		for i, cell := range out {
			v, ok := table.ParseNumber(cell)
			if !ok || v >= 0 {
				continue
			}
			out[i] = flipSign(cell, v)
			fixed++
		}
	}

	return out, fixed
}

// isSentinel checks the lower-cased, trimmed literal against the sentinel set
func (n *Normalizer) isSentinel(cell table.Cell) bool {
	return n.sentinels[strings.ToLower(strings.TrimSpace(cell.String()))]
}

// positiveMajority reports whether enough of the column's parseable values
// are non-negative for negatives to be treated as sign errors. The check
// runs on the sentinel-scrubbed, still-string values: order matters, this
// stage sees the column before coercion.
func (n *Normalizer) positiveMajority(cells []table.Cell) bool {
	parseable := 0
	nonNegative := 0
	for _, cell := range cells {
		if v, ok := table.ParseNumber(cell); ok {
			parseable++
			if v >= 0 {
				nonNegative++
			}
		}
	}
	if parseable == 0 {
		return false
	}
	return float64(nonNegative)/float64(parseable) > n.config.PositiveShare
}

// flipSign replaces a negative value with its absolute value, preserving
// the cell's storage kind so coercion still sees string-typed input
func flipSign(cell table.Cell, v float64) table.Cell {
	abs := math.Abs(v)
	if cell.IsNumber() {
		return table.Number(abs)
	}
	return table.Text(strconv.FormatFloat(abs, 'f', -1, 64))
}

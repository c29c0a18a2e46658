package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"cleansheet/domain/table"
)

// GeneratorConfig configures the synthetic retail table generator
type GeneratorConfig struct {
	Rows         int     `json:"rows"`
	MissingRate  float64 `json:"missing_rate"`  // chance a price/region cell goes missing
	SentinelRate float64 `json:"sentinel_rate"` // chance a missing price uses a sentinel token instead
	NegativeRate float64 `json:"negative_rate"` // chance a price gets a sign error
	Seed         int64   `json:"seed"`
}

// DefaultGeneratorConfig returns sensible defaults for test tables
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:         200,
		MissingRate:  0.1,
		SentinelRate: 0.5,
		NegativeRate: 0.05,
		Seed:         42,
	}
}

// Generator produces synthetic but realistic retail tables with seeded,
// reproducible defects for pipeline tests
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a generator with the given config
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var regions = []string{"North", "South", "East", "West"}
var sentinels = []string{"n/a", "unknown", "-", "?"}

// RetailTable generates an order table with an id column, a defective
// price column, a quantity column, an order date column, and a region
// category. The same seed always yields the same table.
func (g *Generator) RetailTable() table.Table {
	rows := g.config.Rows
	ids := make([]table.Cell, rows)
	prices := make([]table.Cell, rows)
	quantities := make([]table.Cell, rows)
	dates := make([]table.Cell, rows)
	cats := make([]table.Cell, rows)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		ids[i] = table.Text(fmt.Sprintf("ORD-%05d", i+1))

		price := 5 + g.rng.Float64()*95
		switch {
		case g.rng.Float64() < g.config.MissingRate:
			if g.rng.Float64() < g.config.SentinelRate {
				prices[i] = table.Text(sentinels[g.rng.Intn(len(sentinels))])
			} else {
				prices[i] = table.Null()
			}
		case g.rng.Float64() < g.config.NegativeRate:
			prices[i] = table.Text(fmt.Sprintf("-%.2f", price))
		default:
			prices[i] = table.Text(fmt.Sprintf("$%.2f", price))
		}

		quantities[i] = table.Text(fmt.Sprintf("%d", 1+g.rng.Intn(9)))
		day := start.AddDate(0, 0, g.rng.Intn(90))
		dates[i] = table.Text(day.Format("01/02/2006"))

		if g.rng.Float64() < g.config.MissingRate {
			cats[i] = table.Null()
		} else {
			cats[i] = table.Text(regions[g.rng.Intn(len(regions))])
		}
	}

	return table.Table{
		SourceName: "synthetic_retail.csv",
		Columns: []table.Column{
			{Name: "order_id", Cells: ids},
			{Name: "unit_price", Cells: prices},
			{Name: "quantity", Cells: quantities},
			{Name: "order_date", Cells: dates},
			{Name: "region", Cells: cats},
		},
	}
}

// TextColumn builds a column of text cells, with "" meaning null
func TextColumn(name string, literals ...string) table.Column {
	cells := make([]table.Cell, len(literals))
	for i, s := range literals {
		if s == "" {
			cells[i] = table.Null()
		} else {
			cells[i] = table.Text(s)
		}
	}
	return table.Column{Name: name, Cells: cells}
}

// NumberColumn builds a column of numeric cells
func NumberColumn(name string, values ...float64) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		cells[i] = table.Number(v)
	}
	return table.Column{Name: name, Type: table.TypeNumerical, Cells: cells}
}

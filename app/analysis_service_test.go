package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleansheet/adapters/cleaning"
	"cleansheet/domain/table"
	"cleansheet/internal/errors"
	"cleansheet/internal/testkit"
)

func TestAnalyzeWithCleaning(t *testing.T) {
	service := NewAnalysisService(cleaning.DefaultConfig())
	input := table.Table{
		SourceName: "orders.csv",
		Columns: []table.Column{
			testkit.TextColumn("unit_price", "$10", "n/a", "$30", "$20"),
			testkit.TextColumn("quantity", "1", "2", "3", "4"),
		},
	}

	bundle, err := service.Analyze(context.Background(), input, true)
	require.NoError(t, err)

	require.NotNil(t, bundle.Cleaning)
	assert.GreaterOrEqual(t, bundle.Cleaning.Totals.ErrorsFixed, 1)
	assert.Equal(t, "orders.csv", bundle.Summary.SourceName)
	// Cleaning appends the modification flag column.
	assert.Equal(t, 3, bundle.Summary.TotalColumns)

	var priceStats bool
	for _, cs := range bundle.Stats {
		if cs.Name == "unit_price" && cs.Numerical != nil {
			priceStats = true
		}
	}
	assert.True(t, priceStats, "cleaned price column should carry numerical stats")

	assert.Contains(t, bundle.Correlations, "unit_price")
	assert.Contains(t, bundle.Correlations, "quantity")
}

func TestAnalyzeWithoutCleaning(t *testing.T) {
	service := NewAnalysisService(cleaning.DefaultConfig())
	input := table.Table{
		SourceName: "orders.csv",
		Columns: []table.Column{
			testkit.TextColumn("score", "1", "2", "3", "4", "5"),
		},
	}

	bundle, err := service.Analyze(context.Background(), input, false)
	require.NoError(t, err)

	assert.Nil(t, bundle.Cleaning)
	assert.Equal(t, 1, bundle.Summary.TotalColumns, "no flag column without cleaning")
	// The classifier still stamps types so stats run on the raw table.
	require.Len(t, bundle.Stats, 1)
	assert.NotNil(t, bundle.Stats[0].Numerical)
}

func TestAnalyzeRejectsInvalidTable(t *testing.T) {
	service := NewAnalysisService(cleaning.DefaultConfig())
	input := table.Table{
		SourceName: "bad.csv",
		Columns: []table.Column{
			testkit.TextColumn("a", "1", "2"),
			testkit.TextColumn("a", "3", "4"),
		},
	}

	_, err := service.Analyze(context.Background(), input, true)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestActiveTableMatchesAnalysis(t *testing.T) {
	service := NewAnalysisService(cleaning.DefaultConfig())
	gen := testkit.NewGenerator(testkit.DefaultGeneratorConfig())
	input := gen.RetailTable()

	bundle, err := service.Analyze(context.Background(), input, true)
	require.NoError(t, err)
	active, err := service.ActiveTable(context.Background(), input, true)
	require.NoError(t, err)

	assert.Equal(t, bundle.Summary.TotalRows, active.Rows())
	assert.Equal(t, bundle.Summary.TotalColumns, active.ColumnCount())
	for i, col := range bundle.Summary.Columns {
		assert.Equal(t, col.Name, active.Columns[i].Name)
		assert.Equal(t, col.Type, active.Columns[i].Type)
	}
}

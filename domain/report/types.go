package report

import (
	"cleansheet/domain/core"
	"cleansheet/domain/table"
)

// ColumnSummary describes one column of the active table
type ColumnSummary struct {
	Name         string           `json:"name"`
	Type         table.ColumnType `json:"type"`
	MissingCount int              `json:"missing_count"`
	MissingRate  float64          `json:"missing_rate"`
}

// Summary describes the shape of the active table
type Summary struct {
	SourceName   string          `json:"source_name"`
	TotalRows    int             `json:"total_rows"`
	TotalColumns int             `json:"total_columns"`
	Columns      []ColumnSummary `json:"columns"`
}

// CleaningTotals aggregates per-column cleaning counts
type CleaningTotals struct {
	ValuesImputed  int `json:"values_imputed"`
	ErrorsFixed    int `json:"errors_fixed"`
	TypesConverted int `json:"types_converted"`
}

// ColumnCleaningReport records what cleaning did to one column
type ColumnCleaningReport struct {
	ColumnName       string           `json:"column_name"`
	OriginalType     table.ColumnType `json:"original_type"`
	FinalType        table.ColumnType `json:"final_type"`
	ValuesImputed    int              `json:"values_imputed"`
	ErrorsFixed      int              `json:"errors_fixed"`
	TypeConverted    bool             `json:"type_converted"`
	ImputationMethod string           `json:"imputation_method,omitempty"`
}

// CleaningReport is produced once per cleaning run and immutable thereafter
type CleaningReport struct {
	ID                core.ReportID          `json:"id"`
	SourceFingerprint core.Fingerprint       `json:"source_fingerprint"`
	TotalRowsModified int                    `json:"total_rows_modified"`
	PerColumn         []ColumnCleaningReport `json:"per_column"`
	Totals            CleaningTotals         `json:"totals"`
	GeneratedAt       core.Timestamp         `json:"generated_at"`
}

// NumericalStats holds descriptive statistics over the numeric-coercible,
// non-missing values of a column. Values are rounded to 2 decimals for
// presentation; Outliers membership was decided on unrounded values.
type NumericalStats struct {
	Mean     float64   `json:"mean"`
	Median   float64   `json:"median"`
	Std      float64   `json:"std"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Q1       float64   `json:"q1"`
	Q3       float64   `json:"q3"`
	Outliers []float64 `json:"outliers"`
}

// TopValue is one entry of a categorical frequency table
type TopValue struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoricalStats holds the frequency profile of a categorical column
type CategoricalStats struct {
	UniqueCount int        `json:"unique_count"`
	TopValues   []TopValue `json:"top_values"`
}

// ColumnStats pairs a column with its type-appropriate statistics. Exactly
// one of Numerical/Categorical is set, chosen by Type; date and text
// columns carry neither.
type ColumnStats struct {
	Name        string            `json:"name"`
	Type        table.ColumnType  `json:"type"`
	Numerical   *NumericalStats   `json:"numerical,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
}

// AnomalyKind classifies a data-quality finding
type AnomalyKind string

const (
	AnomalyOutlier         AnomalyKind = "outlier"
	AnomalyMissingValues   AnomalyKind = "missing_values"
	AnomalyDuplicateValues AnomalyKind = "duplicate_values"
)

// Severity ranks how serious a finding is
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Anomaly is a data-quality finding. Findings are data, never errors: a
// badly formatted column is something to report, not a failure.
type Anomaly struct {
	Kind          AnomalyKind `json:"kind"`
	Severity      Severity    `json:"severity"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	ColumnName    string      `json:"column_name"`
	AffectedCount int         `json:"affected_count,omitempty"`
}

// Category groups recommendations by the kind of action they suggest
type Category string

const (
	CategoryDataQuality   Category = "data_quality"
	CategoryAnalysis      Category = "analysis"
	CategoryPreprocessing Category = "preprocessing"
)

// Priority ranks recommendations for display
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Recommendation is a heuristic, human-readable suggestion synthesized
// from statistics and anomalies
type Recommendation struct {
	Category        Category `json:"category"`
	Priority        Priority `json:"priority"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	SuggestedAction string   `json:"suggested_action,omitempty"`
	ExpectedImpact  string   `json:"expected_impact,omitempty"`
}

// CorrelationMatrix maps numerical column name pairs to Pearson
// coefficients, symmetric with a unit diagonal
type CorrelationMatrix map[string]map[string]float64

// Bundle is the full analysis output handed to exporters and renderers
type Bundle struct {
	Summary         Summary           `json:"summary"`
	Cleaning        *CleaningReport   `json:"cleaning_report,omitempty"`
	Stats           []ColumnStats     `json:"column_stats"`
	Correlations    CorrelationMatrix `json:"correlations"`
	Anomalies       []Anomaly         `json:"anomalies"`
	Recommendations []Recommendation  `json:"recommendations"`
}

// Summarize builds a Summary from a table
func Summarize(t table.Table) Summary {
	columns := make([]ColumnSummary, len(t.Columns))
	for i, col := range t.Columns {
		columns[i] = ColumnSummary{
			Name:         col.Name,
			Type:         col.Type,
			MissingCount: col.MissingCount(),
			MissingRate:  col.MissingRate(),
		}
	}
	return Summary{
		SourceName:   t.SourceName,
		TotalRows:    t.Rows(),
		TotalColumns: t.ColumnCount(),
		Columns:      columns,
	}
}

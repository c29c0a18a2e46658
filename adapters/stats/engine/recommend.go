package engine

import (
	"fmt"
	"sort"
	"strings"

	"cleansheet/domain/report"
	"cleansheet/domain/table"
)

// Recommendation thresholds
const (
	missingRecommendRate  = 0.2
	strongCorrelation     = 0.7
	highCardinalityFactor = 0.8
)

// Recommend synthesizes prioritized suggestions from statistics,
// correlations, and anomalies. Each rule is evaluated independently in a
// fixed order and appends when its trigger holds. Consumers may truncate
// for display; the engine applies no cap.
func (e *Engine) Recommend(t table.Table, columnStats []report.ColumnStats, correlations report.CorrelationMatrix, anomalies []report.Anomaly) []report.Recommendation {
	recommendations := []report.Recommendation{}

	if gappy := columnsAboveMissingRate(t); len(gappy) > 0 {
		recommendations = append(recommendations, report.Recommendation{
			Category:        report.CategoryDataQuality,
			Priority:        report.PriorityHigh,
			Title:           "Address missing values",
			Description:     fmt.Sprintf("Columns %s are missing more than %.0f%% of their values", strings.Join(gappy, ", "), missingRecommendRate*100),
			SuggestedAction: "Run the cleaning pipeline to impute missing values, or drop the affected columns",
			ExpectedImpact:  "More complete statistics and fewer biased aggregates",
		})
	}

	if pairs := strongPairs(correlations); len(pairs) > 0 {
		recommendations = append(recommendations, report.Recommendation{
			Category:        report.CategoryAnalysis,
			Priority:        report.PriorityMedium,
			Title:           "Investigate correlated columns",
			Description:     fmt.Sprintf("Strongly correlated pairs found: %s", strings.Join(pairs, "; ")),
			SuggestedAction: "Check the pairs for redundancy before modeling",
			ExpectedImpact:  "Leaner feature set and clearer relationships",
		})
	}

	for _, a := range anomalies {
		if a.Kind == report.AnomalyOutlier && a.Severity == report.SeverityHigh {
			recommendations = append(recommendations, report.Recommendation{
				Category:        report.CategoryPreprocessing,
				Priority:        report.PriorityMedium,
				Title:           "Review outlier concentration",
				Description:     fmt.Sprintf("Column %q has a high share of outliers", a.ColumnName),
				SuggestedAction: "Inspect the extreme values and consider winsorizing or excluding them",
				ExpectedImpact:  "More robust summary statistics",
			})
			break
		}
	}

	totalRows := t.Rows()
	for _, cs := range columnStats {
		if cs.Categorical == nil {
			continue
		}
		if float64(cs.Categorical.UniqueCount) > highCardinalityFactor*float64(totalRows) {
			recommendations = append(recommendations, report.Recommendation{
				Category:        report.CategoryPreprocessing,
				Priority:        report.PriorityLow,
				Title:           fmt.Sprintf("High cardinality in %q", cs.Name),
				Description:     fmt.Sprintf("Column %q has nearly as many distinct values as rows; it may be an identifier rather than a category", cs.Name),
				SuggestedAction: "Treat the column as an identifier or bucket its values",
				ExpectedImpact:  "Meaningful frequency tables instead of near-unique noise",
			})
		}
	}

	return recommendations
}

// columnsAboveMissingRate lists columns past the data-quality trigger
func columnsAboveMissingRate(t table.Table) []string {
	names := []string{}
	for _, col := range t.Columns {
		if col.MissingRate() > missingRecommendRate {
			names = append(names, col.Name)
		}
	}
	return names
}

// strongPairs lists unordered numerical pairs with |r| above the analysis
// trigger, in matrix-key-sorted deterministic order
func strongPairs(correlations report.CorrelationMatrix) []string {
	names := make([]string, 0, len(correlations))
	for name := range correlations {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) < 2 {
		return nil
	}
	pairs := []string{}
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			r := correlations[names[i]][names[j]]
			if r > strongCorrelation || r < -strongCorrelation {
				pairs = append(pairs, fmt.Sprintf("%s/%s (r=%.3f)", names[i], names[j], r))
			}
		}
	}
	return pairs
}

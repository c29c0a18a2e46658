package engine

import (
	"fmt"

	"cleansheet/domain/report"
	"cleansheet/domain/table"
)

// Anomaly thresholds. Fixed policy, same caveat as the classifier's.
const (
	missingRateFlag     = 0.3
	missingRateHigh     = 0.5
	outlierShareHigh    = 0.1
	outlierShareMedium  = 0.05
	duplicateShareLimit = 0.8
)

// DetectAnomalies flags columns with excessive missingness, outlier
// concentration, or duplication. Order is discovery order: the missingness
// pass, then outliers, then duplicates. A column can appear more than
// once; findings are never de-duplicated.
func (e *Engine) DetectAnomalies(t table.Table, columnStats []report.ColumnStats) []report.Anomaly {
	anomalies := []report.Anomaly{}
	totalRows := t.Rows()

	for _, col := range t.Columns {
		rate := col.MissingRate()
		if rate <= missingRateFlag {
			continue
		}
		severity := report.SeverityMedium
		if rate > missingRateHigh {
			severity = report.SeverityHigh
		}
		anomalies = append(anomalies, report.Anomaly{
			Kind:          report.AnomalyMissingValues,
			Severity:      severity,
			Title:         fmt.Sprintf("High missing rate in %q", col.Name),
			Description:   fmt.Sprintf("%.1f%% of values in column %q are missing", rate*100, col.Name),
			ColumnName:    col.Name,
			AffectedCount: col.MissingCount(),
		})
	}

	for _, cs := range columnStats {
		if cs.Numerical == nil || len(cs.Numerical.Outliers) == 0 {
			continue
		}
		count := len(cs.Numerical.Outliers)
		share := 0.0
		if totalRows > 0 {
			share = float64(count) / float64(totalRows)
		}
		severity := report.SeverityLow
		switch {
		case share > outlierShareHigh:
			severity = report.SeverityHigh
		case share > outlierShareMedium:
			severity = report.SeverityMedium
		}
		anomalies = append(anomalies, report.Anomaly{
			Kind:          report.AnomalyOutlier,
			Severity:      severity,
			Title:         fmt.Sprintf("Outliers detected in %q", cs.Name),
			Description:   fmt.Sprintf("Column %q has %d values outside the 1.5*IQR fences", cs.Name, count),
			ColumnName:    cs.Name,
			AffectedCount: count,
		})
	}

	for _, col := range t.Columns {
		if col.Type == table.TypeCategorical {
			continue
		}
		nonMissing := len(col.Cells) - col.MissingCount()
		if nonMissing == 0 {
			continue
		}
		unique := make(map[string]bool, nonMissing)
		for _, cell := range col.Cells {
			if !cell.IsMissing() {
				unique[cell.String()] = true
			}
		}
		duplicateShare := 1 - float64(len(unique))/float64(nonMissing)
		if duplicateShare <= duplicateShareLimit {
			continue
		}
		anomalies = append(anomalies, report.Anomaly{
			Kind:          report.AnomalyDuplicateValues,
			Severity:      report.SeverityMedium,
			Title:         fmt.Sprintf("Heavy duplication in %q", col.Name),
			Description:   fmt.Sprintf("%.1f%% of non-missing values in column %q are duplicates", duplicateShare*100, col.Name),
			ColumnName:    col.Name,
			AffectedCount: nonMissing - len(unique),
		})
	}

	return anomalies
}

package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"cleansheet/domain/report"
	"cleansheet/domain/table"
	"cleansheet/internal"
	"cleansheet/internal/errors"
)

// Exporter writes tables and analysis bundles to delimited text or
// multi-sheet workbooks
type Exporter struct {
	logger *internal.Logger
}

// NewExporter creates an exporter
func NewExporter() *Exporter {
	return &Exporter{logger: internal.DefaultLogger}
}

// WriteCSV writes the table as a delimited text file, header row first
func (e *Exporter) WriteCSV(t table.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.ExportFailed("failed to create CSV file", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.ColumnNames()); err != nil {
		return errors.ExportFailed("failed to write CSV header", err)
	}
	for row := 0; row < t.Rows(); row++ {
		record := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			record[i] = col.Cells[row].String()
		}
		if err := w.Write(record); err != nil {
			return errors.ExportFailed("failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.ExportFailed("failed to flush CSV file", err)
	}

	e.logger.Info("exported %d rows to %s", t.Rows(), path)
	return nil
}

// Sheet names of the exported workbook
const (
	sheetData     = "Data"
	sheetCleaning = "Cleaning Report"
	sheetAnalysis = "Analysis"
)

// WriteWorkbook writes the table plus the analysis bundle as a workbook:
// a Data sheet, a Cleaning Report sheet when a report is present, and an
// Analysis sheet with stats, correlations, anomalies, and recommendations
func (e *Exporter) WriteWorkbook(t table.Table, bundle report.Bundle, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetData)
	if err := e.writeDataSheet(f, t); err != nil {
		return err
	}
	if bundle.Cleaning != nil {
		if _, err := f.NewSheet(sheetCleaning); err != nil {
			return errors.ExportFailed("failed to create cleaning sheet", err)
		}
		e.writeCleaningSheet(f, *bundle.Cleaning)
	}
	if _, err := f.NewSheet(sheetAnalysis); err != nil {
		return errors.ExportFailed("failed to create analysis sheet", err)
	}
	e.writeAnalysisSheet(f, bundle)

	if err := f.SaveAs(path); err != nil {
		return errors.ExportFailed("failed to save workbook", err)
	}
	e.logger.Info("exported workbook to %s", path)
	return nil
}

func (e *Exporter) writeDataSheet(f *excelize.File, t table.Table) error {
	header := make([]interface{}, len(t.Columns))
	for i, name := range t.ColumnNames() {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetData, "A1", &header); err != nil {
		return errors.ExportFailed("failed to write data header", err)
	}

	for row := 0; row < t.Rows(); row++ {
		record := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			cell := col.Cells[row]
			if n, ok := cell.Float(); ok {
				record[i] = n
			} else {
				record[i] = cell.String()
			}
		}
		axis, _ := excelize.CoordinatesToCellName(1, row+2)
		if err := f.SetSheetRow(sheetData, axis, &record); err != nil {
			return errors.ExportFailed("failed to write data row", err)
		}
	}
	return nil
}

func (e *Exporter) writeCleaningSheet(f *excelize.File, rep report.CleaningReport) {
	rows := [][]interface{}{
		{"Column", "Original Type", "Final Type", "Values Imputed", "Errors Fixed", "Type Converted", "Imputation Method"},
	}
	for _, col := range rep.PerColumn {
		rows = append(rows, []interface{}{
			col.ColumnName, string(col.OriginalType), string(col.FinalType),
			col.ValuesImputed, col.ErrorsFixed, col.TypeConverted, col.ImputationMethod,
		})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Rows Modified", rep.TotalRowsModified},
		[]interface{}{"Total Imputed", rep.Totals.ValuesImputed},
		[]interface{}{"Total Errors Fixed", rep.Totals.ErrorsFixed},
		[]interface{}{"Total Types Converted", rep.Totals.TypesConverted},
		[]interface{}{"Source Fingerprint", rep.SourceFingerprint.String()},
	)
	writeRows(f, sheetCleaning, rows)
}

func (e *Exporter) writeAnalysisSheet(f *excelize.File, bundle report.Bundle) {
	rows := [][]interface{}{
		{"Column", "Type", "Mean", "Median", "Std", "Min", "Max", "Q1", "Q3", "Outliers", "Unique", "Top Value"},
	}
	for _, cs := range bundle.Stats {
		row := []interface{}{cs.Name, string(cs.Type)}
		switch {
		case cs.Numerical != nil:
			n := cs.Numerical
			row = append(row, n.Mean, n.Median, n.Std, n.Min, n.Max, n.Q1, n.Q3, len(n.Outliers), "", "")
		case cs.Categorical != nil:
			top := ""
			if len(cs.Categorical.TopValues) > 0 {
				tv := cs.Categorical.TopValues[0]
				top = fmt.Sprintf("%s (%d)", tv.Value, tv.Count)
			}
			row = append(row, "", "", "", "", "", "", "", "", cs.Categorical.UniqueCount, top)
		}
		rows = append(rows, row)
	}

	rows = append(rows, []interface{}{}, []interface{}{"Anomalies"})
	for _, a := range bundle.Anomalies {
		rows = append(rows, []interface{}{string(a.Kind), string(a.Severity), a.ColumnName, a.Description, strconv.Itoa(a.AffectedCount)})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Recommendations"})
	for _, r := range bundle.Recommendations {
		rows = append(rows, []interface{}{string(r.Category), string(r.Priority), r.Title, r.Description})
	}

	writeRows(f, sheetAnalysis, rows)
}

// writeRows writes consecutive sheet rows starting at A1. Export is best
// effort once the sheet exists; excelize only errors on invalid axes here.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) {
	for i := range rows {
		axis, _ := excelize.CoordinatesToCellName(1, i+1)
		_ = f.SetSheetRow(sheet, axis, &rows[i])
	}
}

package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"cleansheet/domain/table"
	"cleansheet/internal"
	"cleansheet/internal/errors"
)

// DataReader reads Excel and CSV files into the pipeline's table model
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: internal.DefaultLogger}
}

// ReadTable reads the file into a rectangular Table. Requires a header
// row plus at least one data row; the structural errors here are the
// ingestion collaborator's responsibility, not the pipeline's.
func (r *DataReader) ReadTable() (table.Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return table.Table{}, errors.IngestFailed(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath), err)
	}

	start := time.Now()
	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return table.Table{}, err
	}
	r.logger.Info("read %s file %s in %.2fms (%d rows)",
		r.fileType, r.filePath, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return table.Table{}, errors.IngestFailed("file must have at least a header row and one data row", nil)
	}
	return r.buildTable(rows)
}

// readExcelRows reads Sheet1 of an Excel workbook
func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IngestFailed("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, errors.IngestFailed("failed to read Sheet1", err)
	}
	return rows, nil
}

// readCSVRows reads all records of a CSV file
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IngestFailed("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IngestFailed("failed to read CSV file", err)
	}
	return rows, nil
}

// buildTable converts raw string rows into columns of cells. Headers are
// de-duplicated with _2/_3 suffixes; excelize trims trailing empties, so
// short rows are padded to header width with nulls.
func (r *DataReader) buildTable(rows [][]string) (table.Table, error) {
	headers := dedupeHeaders(rows[0])

	columns := make([]table.Column, len(headers))
	for i, header := range headers {
		columns[i] = table.Column{Name: header, Cells: make([]table.Cell, 0, len(rows)-1)}
	}

	for _, row := range rows[1:] {
		for j := range headers {
			if j < len(row) && strings.TrimSpace(row[j]) != "" {
				columns[j].Cells = append(columns[j].Cells, table.Text(strings.TrimSpace(row[j])))
			} else {
				columns[j].Cells = append(columns[j].Cells, table.Null())
			}
		}
	}

	t := table.Table{SourceName: filepath.Base(r.filePath), Columns: columns}
	if err := t.Validate(); err != nil {
		return table.Table{}, errors.IngestFailed("ingested table failed validation", err)
	}
	return t, nil
}

// dedupeHeaders trims headers, fills in blanks, and suffixes repeats
func dedupeHeaders(raw []string) []string {
	seen := make(map[string]int, len(raw))
	headers := make([]string, len(raw))
	for i, header := range raw {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		seen[name]++
		if seen[name] > 1 {
			name = fmt.Sprintf("%s_%d", name, seen[name])
		}
		headers[i] = name
	}
	return headers
}

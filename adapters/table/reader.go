// Package table loads the study's tabular inputs into typed cohort tables.
package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"coassoc/internal"
)

// RawRowData maps header name to the raw string cell.
type RawRowData map[string]string

// RawData is a header row plus string records, before typed coercion.
type RawData struct {
	Headers []string
	Rows    []RawRowData
}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	log      *internal.Logger
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	fileType := "csv"
	if strings.ToLower(filepath.Ext(filePath)) == ".xlsx" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType, log: internal.DefaultLogger}
}

// ReadData reads the file into raw string records.
func (r *DataReader) ReadData() (*RawData, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "xlsx":
		return r.readExcelData()
	default:
		return r.readCSVData()
	}
}

// readExcelData reads Sheet1 of an Excel workbook.
func (r *DataReader) readExcelData() (*RawData, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}
	return r.processRows(rows)
}

// readCSVData reads a CSV file.
func (r *DataReader) readCSVData() (*RawData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}
	return r.processRows(rows)
}

// processRows converts raw string rows into header-mapped records.
func (r *DataReader) processRows(rows [][]string) (*RawData, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRowData
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRowData)
		for j, cell := range rows[i] {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.log.Debug("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &RawData{Headers: headers, Rows: dataRows}, nil
}

// Package export serializes report tables as CSV or XLSX.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"adsight/internal/reports"
)

// ErrUnknownFormat is returned for formats other than csv and excel.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export file type.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// ParseFormat maps the route parameter onto a Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == FormatExcel {
		return "xlsx"
	}
	return "csv"
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write serializes table in the given format.
func Write(w io.Writer, f Format, sheet string, table reports.Table) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, table)
	case FormatExcel:
		return WriteXLSX(w, sheet, table)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// WriteCSV writes the header row followed by every record.
func WriteCSV(w io.Writer, table reports.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	record := make([]string, len(table.Headers))
	for _, row := range table.Records {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = cast.ToString(row[i])
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// WriteXLSX writes table to a single-sheet workbook named sheet.
func WriteXLSX(w io.Writer, sheet string, table reports.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("failed to find sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	// Header row
	for i, h := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	// Data rows
	for r, row := range table.Records {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Filename builds an export file name stamped with now, e.g.
// amazon_keywords_report_20240131_154500.csv.
func Filename(prefix string, f Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format("20060102_150405"), f.Extension())
}

// AdsPrefix is the file name prefix of an ads report export.
func AdsPrefix(rt reports.ReportType) string {
	return fmt.Sprintf("amazon_%s_report", strings.ToLower(string(rt)))
}

// AdsSheet is the worksheet name of an ads report export.
func AdsSheet(rt reports.ReportType) string {
	return fmt.Sprintf("%s Report", rt)
}

// Business export naming.
const (
	BusinessPrefix = "business_reports"
	BusinessSheet  = "Business Reports"
)

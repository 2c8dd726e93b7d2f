package reports

import "fmt"

// BusinessDailyFields are the columns of the per-day business export.
var BusinessDailyFields = []Field{
	FieldDate,
	FieldSessions,
	FieldPageViews,
	FieldUnitsOrdered,
	FieldOrderedProductSales,
	FieldConversionRate,
	FieldAvgOrderValue,
}

// Table is an unpaginated export row-set: raw cell values under
// human-readable headers.
type Table struct {
	Fields  []Field
	Headers []string
	Records [][]any
}

// BuildTable renders rows into a Table with the given columns.
func BuildTable(rows []Row, fields []Field) Table {
	t := Table{
		Fields:  append([]Field(nil), fields...),
		Headers: Headers(fields),
		Records: make([][]any, len(rows)),
	}
	for i, row := range rows {
		record := make([]any, len(fields))
		for j, f := range fields {
			record[j] = row.Value(f)
		}
		t.Records[i] = record
	}
	return t
}

// CanonicalFields maps the table's headers back to field names.
func (t Table) CanonicalFields() ([]Field, error) {
	fields := make([]Field, len(t.Headers))
	for i, h := range t.Headers {
		f, ok := FieldForHeader(h)
		if !ok {
			return nil, fmt.Errorf("unknown header %q", h)
		}
		fields[i] = f
	}
	return fields, nil
}

package grid

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"adsight/internal/reports"
)

// DefaultCurrencySymbol prefixes currency cells unless configured otherwise.
const DefaultCurrencySymbol = "₹"

// Formatter renders cells as display strings.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter creates a formatter using symbol for currency cells.
func NewFormatter(symbol string) *Formatter {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Currency renders 2 decimals with grouping and the currency symbol.
func (f *Formatter) Currency(v float64) string {
	return f.symbol + f.printer.Sprintf("%.2f", v)
}

// Percent renders 2 decimals with a "%" suffix.
func (f *Formatter) Percent(v float64) string {
	return f.printer.Sprintf("%.2f%%", v)
}

// Ratio renders 2 decimals.
func (f *Formatter) Ratio(v float64) string {
	return f.printer.Sprintf("%.2f", v)
}

// Cell renders one column of a row for transport.
func (f *Formatter) Cell(row reports.Row, col reports.Column) any {
	switch col.Kind {
	case reports.KindCurrency:
		return f.Currency(row.Number(col.Field))
	case reports.KindPercent:
		return f.Percent(row.Number(col.Field))
	case reports.KindRatio:
		return f.Ratio(row.Number(col.Field))
	case reports.KindInteger:
		return int64(row.Number(col.Field))
	default:
		return row.Text(col.Field)
	}
}

// Row renders every column of the schema in order.
func (f *Formatter) Row(row reports.Row, schema reports.Schema) []any {
	cells := make([]any, len(schema.Columns))
	for i, col := range schema.Columns {
		cells[i] = f.Cell(row, col)
	}
	return cells
}

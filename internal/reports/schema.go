package reports

import (
	"fmt"
	"strings"
)

// ReportType selects the aggregated view.
type ReportType string

const (
	ReportKeywords  ReportType = "Keywords"
	ReportCampaigns ReportType = "Campaigns"
	ReportProducts  ReportType = "Products"
)

// ReportTypes lists every report type.
var ReportTypes = []ReportType{ReportKeywords, ReportCampaigns, ReportProducts}

// ParseReportType matches value case-insensitively, defaulting to Keywords.
func ParseReportType(value string) ReportType {
	for _, rt := range ReportTypes {
		if strings.EqualFold(strings.TrimSpace(value), string(rt)) {
			return rt
		}
	}
	return ReportKeywords
}

// Source identifies which dataset a report reads.
type Source int

const (
	SourceAds Source = iota
	SourceBusiness
)

// Column is one display column. Its position in Schema.Columns is the sort
// index used by the grid.
type Column struct {
	Field      Field
	Kind       Kind
	Searchable bool
}

// Header returns the column's display header.
func (c Column) Header() string { return Header(c.Field) }

// Schema describes one report type.
type Schema struct {
	Type    ReportType
	Source  Source
	GroupBy []Field
	Columns []Column
}

func text(f Field) Column { return Column{Field: f, Kind: KindText, Searchable: true} }
func num(f Field) Column  { return Column{Field: f, Kind: KindOf(f)} }

var schemas = map[ReportType]Schema{
	ReportKeywords: {
		Type:    ReportKeywords,
		Source:  SourceAds,
		GroupBy: []Field{FieldSearchTerm},
		Columns: []Column{
			text(FieldSearchTerm),
			text(FieldKeyword),
			text(FieldCampaignName),
			num(FieldCost),
			num(FieldSales),
			num(FieldACOS),
			num(FieldROAS),
			num(FieldCPC),
			num(FieldCTR),
			num(FieldClicks),
			num(FieldImpressions),
			num(FieldPurchases),
		},
	},
	ReportCampaigns: {
		Type:    ReportCampaigns,
		Source:  SourceAds,
		GroupBy: []Field{FieldCampaignName},
		Columns: []Column{
			text(FieldCampaignName),
			num(FieldCost),
			num(FieldSales),
			num(FieldACOS),
			num(FieldROAS),
			num(FieldCPC),
			num(FieldCTR),
			num(FieldClicks),
			num(FieldImpressions),
			num(FieldPurchases),
		},
	},
	ReportProducts: {
		Type:    ReportProducts,
		Source:  SourceBusiness,
		GroupBy: []Field{FieldSKU, FieldParentASIN},
		Columns: []Column{
			text(FieldSKU),
			text(FieldParentASIN),
			text(FieldProductTitle),
			num(FieldSessions),
			num(FieldPageViews),
			num(FieldUnitsOrdered),
			num(FieldOrderedProductSales),
			num(FieldConversionRate),
			num(FieldAvgOrderValue),
		},
	},
}

// groupable lists the group-by fields each source can produce.
var groupable = map[Source]map[Field]bool{
	SourceAds:      {FieldSearchTerm: true, FieldKeyword: true, FieldCampaignName: true, FieldDate: true},
	SourceBusiness: {FieldSKU: true, FieldParentASIN: true, FieldDate: true},
}

// SchemaFor returns the descriptor for rt, falling back to Keywords.
func SchemaFor(rt ReportType) Schema {
	if s, ok := schemas[rt]; ok {
		return s
	}
	return schemas[ReportKeywords]
}

// Fields returns the display fields in column order.
func (s Schema) Fields() []Field {
	fields := make([]Field, len(s.Columns))
	for i, c := range s.Columns {
		fields[i] = c.Field
	}
	return fields
}

// Headers returns the display headers in column order.
func (s Schema) Headers() []string {
	return Headers(s.Fields())
}

// SortColumn maps a grid column index to its column. Out-of-range indexes
// report false.
func (s Schema) SortColumn(index int) (Column, bool) {
	if index < 0 || index >= len(s.Columns) {
		return Column{}, false
	}
	return s.Columns[index], true
}

// SearchableFields returns the text columns free-text search runs over.
func (s Schema) SearchableFields() []Field {
	var fields []Field
	for _, c := range s.Columns {
		if c.Searchable && c.Kind.IsText() {
			fields = append(fields, c.Field)
		}
	}
	return fields
}

// CanGroupBy reports whether fields is a legal group-by override.
func (s Schema) CanGroupBy(fields []Field) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !groupable[s.Source][f] {
			return false
		}
	}
	return true
}

// Validate checks that every column is a known field of the matching kind
// and that the group-by fields are producible from the source.
func (s Schema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema %s has no columns", s.Type)
	}
	seen := make(map[Field]bool, len(s.Columns))
	for i, c := range s.Columns {
		if !Known(c.Field) {
			return fmt.Errorf("schema %s column %d: unknown field %q", s.Type, i, c.Field)
		}
		if c.Kind != KindOf(c.Field) {
			return fmt.Errorf("schema %s column %d: kind mismatch for %q", s.Type, i, c.Field)
		}
		if seen[c.Field] {
			return fmt.Errorf("schema %s column %d: duplicate field %q", s.Type, i, c.Field)
		}
		seen[c.Field] = true
	}
	if !s.CanGroupBy(s.GroupBy) {
		return fmt.Errorf("schema %s: invalid group by %v", s.Type, s.GroupBy)
	}
	return nil
}

package sources

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataUnavailable signals that a source table is missing, empty, or lacks
// a required column. Callers treat it as an empty dataset.
var ErrDataUnavailable = errors.New("data unavailable")

// ColumnKind is the coercion applied to a raw column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumber
	KindCount
	KindDate
	KindCurrency
)

// SourceColumn maps one stored column onto its canonical name.
type SourceColumn struct {
	Name      string
	Canonical string
	Kind      ColumnKind
	Required  bool
}

// SourceSchema describes a source table: the canonical name map plus the
// required/optional split checked once before normalization.
type SourceSchema struct {
	Table   string
	Columns []SourceColumn
}

// AdsSource describes amazon_ads_reports.
var AdsSource = SourceSchema{
	Table: AdsTable,
	Columns: []SourceColumn{
		{Name: "report_date", Canonical: "date", Kind: KindDate, Required: true},
		{Name: "search_term", Canonical: "searchTerm", Kind: KindText, Required: true},
		{Name: "keyword_info", Canonical: "keyword", Kind: KindText},
		{Name: "campaign_name", Canonical: "campaignName", Kind: KindText, Required: true},
		{Name: "campaign_id", Canonical: "campaignId", Kind: KindText},
		{Name: "profile_id", Canonical: "profileId", Kind: KindText},
		{Name: "cost", Canonical: "cost", Kind: KindNumber, Required: true},
		{Name: "clicks", Canonical: "clicks", Kind: KindCount, Required: true},
		{Name: "impressions", Canonical: "impressions", Kind: KindCount, Required: true},
		{Name: "sales_1d", Canonical: "sales1d", Kind: KindNumber, Required: true},
		{Name: "purchases_1d", Canonical: "purchases1d", Kind: KindCount, Required: true},
		{Name: "click_through_rate", Canonical: "clickThroughRate", Kind: KindNumber},
		{Name: "campaign_budget_currency_code", Canonical: "campaignBudgetCurrencyCode", Kind: KindText},
		{Name: "campaign_budget_type", Canonical: "campaignBudgetType", Kind: KindText},
		{Name: "campaign_budget_amount", Canonical: "campaignBudgetAmount", Kind: KindNumber},
		{Name: "campaign_status", Canonical: "campaignStatus", Kind: KindText},
		{Name: "keyword_bid", Canonical: "keywordBid", Kind: KindNumber},
		{Name: "ad_group_name", Canonical: "adGroupName", Kind: KindText},
		{Name: "ad_group_id", Canonical: "adGroupId", Kind: KindText},
		{Name: "keyword_type", Canonical: "keywordType", Kind: KindText},
		{Name: "match_type", Canonical: "matchType", Kind: KindText},
		{Name: "ad_keyword_status", Canonical: "adKeywordStatus", Kind: KindText},
	},
}

// BusinessSource describes amazon_sales_traffic.
var BusinessSource = SourceSchema{
	Table: BusinessTable,
	Columns: []SourceColumn{
		{Name: "date", Canonical: "date", Kind: KindDate, Required: true},
		{Name: "sku", Canonical: "sku", Kind: KindText, Required: true},
		{Name: "parent_asin", Canonical: "parent_asin", Kind: KindText, Required: true},
		{Name: "sessions", Canonical: "sessions", Kind: KindCount},
		{Name: "page_views", Canonical: "page_views", Kind: KindCount},
		{Name: "units_ordered", Canonical: "units_ordered", Kind: KindCount},
		{Name: "ordered_product_sales", Canonical: "ordered_product_sales", Kind: KindCurrency, Required: true},
	},
}

// CanonicalNames returns the stored-name to canonical-name map.
func (s SourceSchema) CanonicalNames() map[string]string {
	names := make(map[string]string, len(s.Columns))
	for _, c := range s.Columns {
		names[c.Name] = c.Canonical
	}
	return names
}

// Validate checks that every required column is among present. Matching is
// case-insensitive and accepts either the stored or the canonical name.
func (s SourceSchema) Validate(present []string) error {
	have := make(map[string]bool, len(present))
	for _, p := range present {
		have[strings.ToLower(p)] = true
	}

	var missing []string
	for _, c := range s.Columns {
		if !c.Required {
			continue
		}
		if !have[strings.ToLower(c.Name)] && !have[strings.ToLower(c.Canonical)] {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s missing columns %s", ErrDataUnavailable, s.Table, strings.Join(missing, ", "))
	}
	return nil
}

// Selectable returns the columns of the schema that exist in present, in
// schema order. A column missing under its stored name is selected under its
// canonical name when present, matching Validate.
func (s SourceSchema) Selectable(present []string) []string {
	have := make(map[string]bool, len(present))
	for _, p := range present {
		have[strings.ToLower(p)] = true
	}

	cols := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		switch {
		case have[strings.ToLower(c.Name)]:
			cols = append(cols, c.Name)
		case have[strings.ToLower(c.Canonical)]:
			cols = append(cols, c.Canonical)
		}
	}
	return cols
}

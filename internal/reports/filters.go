package reports

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"adsight/internal/sources"
	"adsight/internal/timeframe"
)

// Filters are the domain filters applied before aggregation. Allow-lists
// match exactly; an empty list filters nothing.
type Filters struct {
	Range       timeframe.DateRange
	Campaigns   []string
	Keywords    []string
	SKUs        []string
	ParentASINs []string
}

// CleanValues trims allow-list values and drops empties and duplicates.
func CleanValues(values []string) []string {
	trimmed := lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	})
	return lo.Uniq(lo.Compact(trimmed))
}

func allowSet(values []string) map[string]struct{} {
	clean := CleanValues(values)
	if len(clean) == 0 {
		return nil
	}
	return lo.SliceToMap(clean, func(v string) (string, struct{}) {
		return v, struct{}{}
	})
}

func allowed(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

// ApplyAds filters ads records by date range and campaign. The keyword
// allow-list only applies to the Keywords report.
func (f Filters) ApplyAds(records []sources.AdRecord, rt ReportType) []sources.AdRecord {
	campaigns := allowSet(f.Campaigns)
	var keywords map[string]struct{}
	if rt == ReportKeywords {
		keywords = allowSet(f.Keywords)
	}

	return lo.Filter(records, func(r sources.AdRecord, _ int) bool {
		return f.Range.Contains(r.Date) &&
			allowed(campaigns, r.CampaignName) &&
			allowed(keywords, r.Keyword)
	})
}

// ApplyBusiness filters business records by date range, SKU and parent ASIN.
func (f Filters) ApplyBusiness(records []sources.BusinessRecord) []sources.BusinessRecord {
	skus := allowSet(f.SKUs)
	parents := allowSet(f.ParentASINs)

	return lo.Filter(records, func(r sources.BusinessRecord, _ int) bool {
		return f.Range.Contains(r.Date) &&
			allowed(skus, r.SKU) &&
			allowed(parents, r.ParentASIN)
	})
}

// WithoutKeywords returns a copy of f with the keyword allow-list cleared.
func (f Filters) WithoutKeywords() Filters {
	f.Keywords = nil
	return f
}

func options(values []string) []string {
	out := lo.Uniq(lo.Compact(values))
	sort.Strings(out)
	return out
}

// CampaignOptions lists the distinct campaign names, sorted.
func CampaignOptions(records []sources.AdRecord) []string {
	return options(lo.Map(records, func(r sources.AdRecord, _ int) string { return r.CampaignName }))
}

// KeywordOptions lists the distinct keywords, sorted.
func KeywordOptions(records []sources.AdRecord) []string {
	return options(lo.Map(records, func(r sources.AdRecord, _ int) string { return r.Keyword }))
}

// SKUOptions lists the distinct SKUs, sorted.
func SKUOptions(records []sources.BusinessRecord) []string {
	return options(lo.Map(records, func(r sources.BusinessRecord, _ int) string { return r.SKU }))
}

// ParentASINOptions lists the distinct parent ASINs, sorted.
func ParentASINOptions(records []sources.BusinessRecord) []string {
	return options(lo.Map(records, func(r sources.BusinessRecord, _ int) string { return r.ParentASIN }))
}

// AdsDateBounds returns the earliest and latest record dates. ok is false
// for an empty set.
func AdsDateBounds(records []sources.AdRecord) (timeframe.DateRange, bool) {
	if len(records) == 0 {
		return timeframe.DateRange{}, false
	}
	minDate := lo.MinBy(records, func(a, b sources.AdRecord) bool { return a.Date.Before(b.Date) }).Date
	maxDate := lo.MaxBy(records, func(a, b sources.AdRecord) bool { return a.Date.After(b.Date) }).Date
	return timeframe.DateRange{From: &minDate, To: &maxDate}, true
}

// BusinessDateBounds returns the earliest and latest business dates.
func BusinessDateBounds(records []sources.BusinessRecord) (timeframe.DateRange, bool) {
	if len(records) == 0 {
		return timeframe.DateRange{}, false
	}
	minDate := lo.MinBy(records, func(a, b sources.BusinessRecord) bool { return a.Date.Before(b.Date) }).Date
	maxDate := lo.MaxBy(records, func(a, b sources.BusinessRecord) bool { return a.Date.After(b.Date) }).Date
	return timeframe.DateRange{From: &minDate, To: &maxDate}, true
}

// WithDefaultRange fills each open bound of the filter range from bounds.
func (f Filters) WithDefaultRange(bounds timeframe.DateRange) Filters {
	if f.Range.From == nil {
		f.Range.From = bounds.From
	}
	if f.Range.To == nil {
		f.Range.To = bounds.To
	}
	return f
}

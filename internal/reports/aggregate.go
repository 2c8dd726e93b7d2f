package reports

import (
	"sort"
	"strings"

	"adsight/internal/sources"
	"adsight/internal/timeframe"
)

const keySeparator = "\x1f"

// Aggregate groups the dataset for the report type and derives each row's
// ratios from its sums. groupBy overrides the schema's grouping when every
// field is producible from the report's source; otherwise it is ignored.
// Rows come back ordered by group key.
func Aggregate(ds sources.Dataset, rt ReportType, groupBy ...Field) []Row {
	schema := SchemaFor(rt)
	keys := schema.GroupBy
	if len(groupBy) > 0 && schema.CanGroupBy(groupBy) {
		keys = groupBy
	}

	var rows []Row
	switch schema.Source {
	case SourceBusiness:
		rows = aggregateBusiness(ds.Business, keys)
	default:
		rows = aggregateAds(ds.Ads, keys, schema.Type == ReportKeywords)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

func adsKeyValue(r sources.AdRecord, f Field) string {
	switch f {
	case FieldSearchTerm:
		return r.SearchTerm
	case FieldKeyword:
		return r.Keyword
	case FieldCampaignName:
		return r.CampaignName
	case FieldDate:
		return r.Date.Format(timeframe.LabelFormat)
	default:
		return ""
	}
}

func businessKeyValue(r sources.BusinessRecord, f Field) string {
	switch f {
	case FieldSKU:
		return r.SKU
	case FieldParentASIN:
		return r.ParentASIN
	case FieldDate:
		return r.Date.Format(timeframe.LabelFormat)
	default:
		return ""
	}
}

func groupKey[T any](r T, keys []Field, value func(T, Field) string) string {
	parts := make([]string, len(keys))
	for i, f := range keys {
		parts[i] = value(r, f)
	}
	return strings.Join(parts, keySeparator)
}

func hasField(fields []Field, f Field) bool {
	for _, k := range fields {
		if k == f {
			return true
		}
	}
	return false
}

// aggregateAds sums ads records per key. With carryLabels the first-seen
// keyword and campaign of each group are kept as representative labels.
func aggregateAds(records []sources.AdRecord, keys []Field, carryLabels bool) []Row {
	index := make(map[string]int)
	var rows []Row

	for _, r := range records {
		key := groupKey(r, keys, adsKeyValue)
		i, ok := index[key]
		if !ok {
			row := Row{Key: key}
			if hasField(keys, FieldSearchTerm) {
				row.SearchTerm = r.SearchTerm
			}
			if hasField(keys, FieldKeyword) || carryLabels {
				row.Keyword = r.Keyword
			}
			if hasField(keys, FieldCampaignName) || carryLabels {
				row.CampaignName = r.CampaignName
			}
			if hasField(keys, FieldDate) {
				row.Date = r.Date
			}
			rows = append(rows, row)
			i = len(rows) - 1
			index[key] = i
		}

		row := &rows[i]
		row.Cost += r.Cost
		row.Sales += r.Sales1d
		row.Clicks += r.Clicks
		row.Impressions += r.Impressions
		row.Purchases += r.Purchases1d
	}

	for i := range rows {
		rows[i].derive()
	}
	return rows
}

func aggregateBusiness(records []sources.BusinessRecord, keys []Field) []Row {
	index := make(map[string]int)
	var rows []Row

	for _, r := range records {
		key := groupKey(r, keys, businessKeyValue)
		i, ok := index[key]
		if !ok {
			row := Row{Key: key}
			if hasField(keys, FieldSKU) {
				row.SKU = r.SKU
			}
			if hasField(keys, FieldParentASIN) {
				row.ParentASIN = r.ParentASIN
			}
			if hasField(keys, FieldDate) {
				row.Date = r.Date
			}
			rows = append(rows, row)
			i = len(rows) - 1
			index[key] = i
		}

		row := &rows[i]
		row.Sessions += r.Sessions
		row.PageViews += r.PageViews
		row.UnitsOrdered += r.UnitsOrdered
		row.OrderedProductSales += r.OrderedProductSales
	}

	for i := range rows {
		rows[i].derive()
	}
	return rows
}

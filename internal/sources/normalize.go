package sources

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"

	"adsight/internal/timeframe"
)

// RawRecord is one stored row keyed by column name.
type RawRecord map[string]any

// fieldReader resolves canonical fields on a raw record using a schema's
// name map, accepting either the stored or the canonical key.
type fieldReader struct {
	byCanonical map[string]SourceColumn
	logger      *slog.Logger
}

func newFieldReader(schema SourceSchema, logger *slog.Logger) fieldReader {
	byCanonical := make(map[string]SourceColumn, len(schema.Columns))
	for _, c := range schema.Columns {
		byCanonical[c.Canonical] = c
	}
	return fieldReader{byCanonical: byCanonical, logger: logger}
}

func (f fieldReader) lookup(r RawRecord, canonical string) any {
	col, ok := f.byCanonical[canonical]
	if !ok {
		return nil
	}
	if v, ok := r[col.Name]; ok {
		return v
	}
	return r[col.Canonical]
}

func (f fieldReader) text(r RawRecord, canonical string) string {
	return ToText(f.lookup(r, canonical))
}

func (f fieldReader) number(r RawRecord, canonical string) float64 {
	return ToNumber(f.lookup(r, canonical))
}

func (f fieldReader) count(r RawRecord, canonical string) int64 {
	return ToCount(f.lookup(r, canonical))
}

func (f fieldReader) currency(r RawRecord, canonical string) float64 {
	return CurrencyValue(f.lookup(r, canonical), f.logger)
}

func (f fieldReader) date(r RawRecord, canonical string) (time.Time, bool) {
	return ToDate(f.lookup(r, canonical))
}

// ToText coerces a raw value to a trimmed string; nil becomes "".
func ToText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return strings.TrimSpace(string(t))
	default:
		return strings.TrimSpace(cast.ToString(v))
	}
}

// ToNumber coerces a raw value to a finite float; invalid or missing
// values become 0.
func ToNumber(v any) float64 {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToCount coerces a raw value to an integer count, rounding fractional
// inputs; invalid or missing values become 0.
func ToCount(v any) int64 {
	return int64(math.Round(ToNumber(v)))
}

// ToDate coerces a raw value to UTC midnight of its calendar date.
func ToDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return timeframe.Day(t), true
	case []byte:
		v = string(t)
	}

	s, ok := v.(string)
	if ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return time.Time{}, false
		}
		// stored timestamps keep the report day as their leading YYYY-MM-DD
		if len(s) >= len(timeframe.LabelFormat) {
			if d, err := timeframe.ParseDate(s[:len(timeframe.LabelFormat)]); err == nil {
				return d, true
			}
		}
		v = s
	}

	parsed, err := cast.ToTimeE(v)
	if err != nil || parsed.IsZero() {
		return time.Time{}, false
	}
	return timeframe.Day(parsed), true
}

// NormalizeAds maps raw ads rows onto AdRecords. Rows without a usable date
// are dropped since they cannot be bucketed.
func NormalizeAds(raw []RawRecord, logger *slog.Logger) []AdRecord {
	if logger == nil {
		logger = slog.Default()
	}
	f := newFieldReader(AdsSource, logger)

	records := make([]AdRecord, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		d, ok := f.date(r, "date")
		if !ok {
			dropped++
			continue
		}
		records = append(records, AdRecord{
			Date:                       d,
			SearchTerm:                 f.text(r, "searchTerm"),
			Keyword:                    f.text(r, "keyword"),
			CampaignName:               f.text(r, "campaignName"),
			CampaignID:                 f.text(r, "campaignId"),
			ProfileID:                  f.text(r, "profileId"),
			CampaignStatus:             f.text(r, "campaignStatus"),
			CampaignBudgetAmount:       f.number(r, "campaignBudgetAmount"),
			CampaignBudgetType:         f.text(r, "campaignBudgetType"),
			CampaignBudgetCurrencyCode: f.text(r, "campaignBudgetCurrencyCode"),
			AdGroupID:                  f.text(r, "adGroupId"),
			AdGroupName:                f.text(r, "adGroupName"),
			KeywordType:                f.text(r, "keywordType"),
			KeywordBid:                 f.number(r, "keywordBid"),
			MatchType:                  f.text(r, "matchType"),
			AdKeywordStatus:            f.text(r, "adKeywordStatus"),
			ClickThroughRate:           f.number(r, "clickThroughRate"),
			Cost:                       f.number(r, "cost"),
			Sales1d:                    f.number(r, "sales1d"),
			Clicks:                     f.count(r, "clicks"),
			Impressions:                f.count(r, "impressions"),
			Purchases1d:                f.count(r, "purchases1d"),
		})
	}

	if dropped > 0 {
		logger.Debug("Dropped ads rows without a valid date", slog.Int("count", dropped))
	}
	return records
}

// NormalizeBusiness maps raw sales/traffic rows onto BusinessRecords.
func NormalizeBusiness(raw []RawRecord, logger *slog.Logger) []BusinessRecord {
	if logger == nil {
		logger = slog.Default()
	}
	f := newFieldReader(BusinessSource, logger)

	records := make([]BusinessRecord, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		d, ok := f.date(r, "date")
		if !ok {
			dropped++
			continue
		}
		records = append(records, BusinessRecord{
			Date:                d,
			SKU:                 f.text(r, "sku"),
			ParentASIN:          f.text(r, "parent_asin"),
			Sessions:            f.count(r, "sessions"),
			PageViews:           f.count(r, "page_views"),
			UnitsOrdered:        f.count(r, "units_ordered"),
			OrderedProductSales: f.currency(r, "ordered_product_sales"),
		})
	}

	if dropped > 0 {
		logger.Debug("Dropped business rows without a valid date", slog.Int("count", dropped))
	}
	return records
}

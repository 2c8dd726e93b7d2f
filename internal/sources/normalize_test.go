package sources_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adsight/internal/sources"
	"adsight/internal/testsupport"
	"adsight/internal/timeframe"
)

func TestNormalizeAds(t *testing.T) {
	logger := testsupport.GetLogger()

	raw := []sources.RawRecord{
		{
			"report_date":   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			"search_term":   " running shoes ",
			"keyword_info":  "shoes",
			"campaign_name": "Spring",
			"cost":          "12.5",
			"clicks":        int64(10),
			"impressions":   "200",
			"sales_1d":      30.0,
			"purchases_1d":  []byte("2"),
		},
		{
			// canonical keys are accepted as well
			"date":         "2024-01-07",
			"searchTerm":   "boots",
			"campaignName": "Winter",
			"cost":         "not-a-number",
			"clicks":       nil,
			"impressions":  "NaN",
			"sales1d":      "",
			"purchases1d":  "1.6",
		},
		{
			"report_date": "garbage",
			"search_term": "dropped",
		},
	}

	records := sources.NormalizeAds(raw, logger)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "running shoes", first.SearchTerm)
	assert.Equal(t, "shoes", first.Keyword)
	assert.Equal(t, "Spring", first.CampaignName)
	assert.Equal(t, 12.5, first.Cost)
	assert.Equal(t, int64(10), first.Clicks)
	assert.Equal(t, int64(200), first.Impressions)
	assert.Equal(t, 30.0, first.Sales1d)
	assert.Equal(t, int64(2), first.Purchases1d)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.WeekStart())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.MonthStart())

	second := records[1]
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), second.Date)
	assert.Equal(t, "boots", second.SearchTerm)
	assert.Equal(t, "", second.Keyword, "missing optional text defaults to empty")
	assert.Equal(t, 0.0, second.Cost)
	assert.Equal(t, int64(0), second.Clicks)
	assert.Equal(t, int64(0), second.Impressions)
	assert.Equal(t, 0.0, second.Sales1d)
	assert.Equal(t, int64(2), second.Purchases1d, "fractional counts round")
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), second.BucketStart(timeframe.GranularityWeekly))
}

func TestNormalizeBusiness(t *testing.T) {
	raw := []sources.RawRecord{
		{
			"date":                  "2024-02-29 00:00:00+00:00",
			"sku":                   "SKU-1",
			"parent_asin":           "B00PARENT",
			"sessions":              int64(40),
			"page_views":            "80",
			"units_ordered":         4.0,
			"ordered_product_sales": "$1,234.50",
		},
		{
			"date":                  time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC),
			"sku":                   "SKU-2",
			"parent_asin":           "B00PARENT",
			"ordered_product_sales": "N/A",
		},
	}

	records := sources.NormalizeBusiness(raw, testsupport.GetLogger())
	require.Len(t, records, 2)

	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, int64(40), records[0].Sessions)
	assert.Equal(t, int64(80), records[0].PageViews)
	assert.Equal(t, int64(4), records[0].UnitsOrdered)
	assert.Equal(t, 1234.5, records[0].OrderedProductSales)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), records[1].Date)
	assert.Equal(t, 0.0, records[1].OrderedProductSales, "unparsable sales become 0")
	assert.Equal(t, time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC), records[1].WeekStart())
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), records[1].MonthStart())
}

func TestCoercion(t *testing.T) {
	assert.Equal(t, 3.5, sources.ToNumber(" 3.5 "))
	assert.Equal(t, 0.0, sources.ToNumber("Inf"))
	assert.Equal(t, 0.0, sources.ToNumber(map[string]int{}))
	assert.Equal(t, int64(3), sources.ToCount("2.5"))
	assert.Equal(t, "", sources.ToText(nil))
	assert.Equal(t, "12", sources.ToText(12))

	_, ok := sources.ToDate("")
	assert.False(t, ok)
	_, ok = sources.ToDate(time.Time{})
	assert.False(t, ok)
	d, ok := sources.ToDate("2024-05-06T13:00:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), d)
}

func TestSourceSchemaValidate(t *testing.T) {
	err := sources.AdsSource.Validate([]string{"report_date", "search_term", "campaign_name", "cost", "clicks", "impressions", "sales_1d", "purchases_1d"})
	assert.NoError(t, err)

	err = sources.AdsSource.Validate([]string{"date", "searchTerm", "campaignName", "cost", "clicks", "impressions", "sales1d", "purchases1d"})
	assert.NoError(t, err, "canonical names satisfy the descriptor")

	err = sources.BusinessSource.Validate([]string{"date", "sku"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sources.ErrDataUnavailable)
	assert.Contains(t, err.Error(), "parent_asin")
	assert.Contains(t, err.Error(), "ordered_product_sales")

	assert.Equal(t, []string{"date", "sku"}, sources.BusinessSource.Selectable([]string{"SKU", "date", "unrelated"}))
	assert.Equal(t, "searchTerm", sources.AdsSource.CanonicalNames()["search_term"])
}

func TestSourceSchemaSelectableCanonicalNames(t *testing.T) {
	present := []string{"date", "searchTerm", "campaignName", "cost", "clicks", "impressions", "sales1d", "purchases1d"}
	require.NoError(t, sources.AdsSource.Validate(present))

	assert.Equal(t, present, sources.AdsSource.Selectable(present))
	assert.Equal(t,
		[]string{"report_date", "searchTerm", "campaign_name"},
		sources.AdsSource.Selectable([]string{"report_date", "searchTerm", "campaign_name"}),
		"stored names win, canonical names fill the gaps")
}

package kpi_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"adsight/internal/kpi"
	"adsight/internal/sources"
)

func TestCalculateAdsExample(t *testing.T) {
	records := []sources.AdRecord{
		{SearchTerm: "shoe", Cost: 100, Sales1d: 200, Clicks: 50, Impressions: 1000, Purchases1d: 5},
	}

	k := kpi.CalculateAds(records)

	assert.InDelta(t, 50.0, k.ACOS, 1e-9)
	assert.InDelta(t, 2.0, k.ROAS, 1e-9)
	assert.InDelta(t, 2.0, k.CPC, 1e-9)
	assert.InDelta(t, 5.0, k.CTR, 1e-9)
	assert.InDelta(t, 10.0, k.CVR, 1e-9)

	m := k.Map()
	assert.Len(t, m, 10)
	assert.Equal(t, 100.0, m["cost"])
	assert.Equal(t, 200.0, m["sales"])
	assert.Equal(t, 5.0, m["purchases"])
}

func TestCalculateAdsZeroDenominators(t *testing.T) {
	testCases := []struct {
		name    string
		records []sources.AdRecord
		check   func(t *testing.T, k kpi.AdsKPIs)
	}{
		{
			name:    "Empty set is all zeros",
			records: nil,
			check: func(t *testing.T, k kpi.AdsKPIs) {
				assert.Equal(t, kpi.AdsKPIs{}, k)
			},
		},
		{
			name:    "Cost without sales",
			records: []sources.AdRecord{{Cost: 10, Clicks: 4}},
			check: func(t *testing.T, k kpi.AdsKPIs) {
				assert.Equal(t, 0.0, k.ACOS)
				assert.Equal(t, 0.0, k.ROAS)
				assert.Equal(t, 2.5, k.CPC)
				assert.Equal(t, 0.0, k.CTR)
				assert.Equal(t, 0.0, k.CVR)
			},
		},
		{
			name:    "Sales without cost or clicks",
			records: []sources.AdRecord{{Sales1d: 50, Impressions: 10, Purchases1d: 2}},
			check: func(t *testing.T, k kpi.AdsKPIs) {
				assert.Equal(t, 0.0, k.ACOS)
				assert.Equal(t, 0.0, k.ROAS)
				assert.Equal(t, 0.0, k.CPC)
				assert.Equal(t, 0.0, k.CVR)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			k := kpi.CalculateAds(tc.records)
			for name, v := range k.Map() {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s must be finite", name)
			}
			tc.check(t, k)
		})
	}
}

func TestCalculateBusiness(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	records := []sources.BusinessRecord{
		{Date: d1, SKU: "A", Sessions: 10, PageViews: 50, UnitsOrdered: 2, OrderedProductSales: 100},
		{Date: d1, SKU: "B", Sessions: 20, PageViews: 50, UnitsOrdered: 3, OrderedProductSales: 200},
		{Date: d2, SKU: "A", Sessions: 30, PageViews: 100, UnitsOrdered: 5, OrderedProductSales: 300},
	}

	k := kpi.CalculateBusiness(records)

	assert.Equal(t, int64(60), k.TotalSessions)
	assert.Equal(t, int64(200), k.TotalPageViews)
	assert.Equal(t, int64(10), k.TotalUnitsOrdered)
	assert.Equal(t, 600.0, k.TotalSales)
	assert.Equal(t, 2, k.Days)
	assert.Equal(t, 30.0, k.AvgSessionsPerDay)
	assert.Equal(t, 300.0, k.AvgSalesPerDay)
	assert.Equal(t, 5.0, k.ConversionRate)

	assert.Equal(t, kpi.BusinessKPIs{}, kpi.CalculateBusiness(nil))
}

func TestRatioHelpers(t *testing.T) {
	assert.Equal(t, 0.0, kpi.SafeDiv(1, 0))
	assert.Equal(t, 0.0, kpi.SafeDiv(1, -5))
	assert.Equal(t, 0.0, kpi.SafeDiv(math.Inf(1), 1))
	assert.Equal(t, 25.0, kpi.TCOS(25, 100))
	assert.Equal(t, 0.0, kpi.TCOS(25, 0))
	assert.Equal(t, 12.5, kpi.AvgOrderValue(50, 4))
	assert.Equal(t, 0.0, kpi.AvgOrderValue(50, 0))
	assert.Equal(t, 1.23, kpi.Round2(1.234))
	assert.Equal(t, 1.24, kpi.Round2(1.235000001))
}

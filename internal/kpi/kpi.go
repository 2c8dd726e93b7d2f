package kpi

import (
	"time"

	"adsight/internal/sources"
)

// AdsKPIs are the headline ads metrics for a filtered row-set.
type AdsKPIs struct {
	Cost        float64 `json:"cost"`
	Sales       float64 `json:"sales"`
	Clicks      int64   `json:"clicks"`
	Impressions int64   `json:"impressions"`
	Purchases   int64   `json:"purchases"`
	ACOS        float64 `json:"acos"`
	ROAS        float64 `json:"roas"`
	CPC         float64 `json:"cpc"`
	CTR         float64 `json:"ctr"`
	CVR         float64 `json:"cvr"`
}

// CalculateAds sums the row-set and derives the ratios from the totals.
func CalculateAds(records []sources.AdRecord) AdsKPIs {
	var k AdsKPIs
	for _, r := range records {
		k.Cost += r.Cost
		k.Sales += r.Sales1d
		k.Clicks += r.Clicks
		k.Impressions += r.Impressions
		k.Purchases += r.Purchases1d
	}

	k.ACOS = ACOS(k.Cost, k.Sales)
	k.ROAS = ROAS(k.Sales, k.Cost)
	k.CPC = CPC(k.Cost, k.Clicks)
	k.CTR = CTR(k.Clicks, k.Impressions)
	k.CVR = CVR(k.Purchases, k.Clicks)
	return k
}

// Map returns the KPIs as named scalars.
func (k AdsKPIs) Map() map[string]float64 {
	return map[string]float64{
		"cost":        k.Cost,
		"sales":       k.Sales,
		"clicks":      float64(k.Clicks),
		"impressions": float64(k.Impressions),
		"purchases":   float64(k.Purchases),
		"acos":        k.ACOS,
		"roas":        k.ROAS,
		"cpc":         k.CPC,
		"ctr":         k.CTR,
		"cvr":         k.CVR,
	}
}

// BusinessKPIs are the sales/traffic metrics for a filtered row-set.
type BusinessKPIs struct {
	TotalSessions     int64   `json:"total_sessions"`
	TotalPageViews    int64   `json:"total_page_views"`
	TotalUnitsOrdered int64   `json:"total_units_ordered"`
	TotalSales        float64 `json:"total_sales"`
	AvgSessionsPerDay float64 `json:"avg_sessions_per_day"`
	AvgSalesPerDay    float64 `json:"avg_sales_per_day"`
	ConversionRate    float64 `json:"conversion_rate"`
	Days              int     `json:"days"`
}

// CalculateBusiness totals a possibly multi-SKU row-set. Per-day averages
// are taken over the distinct dates present.
func CalculateBusiness(records []sources.BusinessRecord) BusinessKPIs {
	var k BusinessKPIs
	days := make(map[time.Time]struct{})
	for _, r := range records {
		k.TotalSessions += r.Sessions
		k.TotalPageViews += r.PageViews
		k.TotalUnitsOrdered += r.UnitsOrdered
		k.TotalSales += r.OrderedProductSales
		days[r.Date] = struct{}{}
	}

	k.Days = len(days)
	k.AvgSessionsPerDay = SafeDiv(float64(k.TotalSessions), float64(k.Days))
	k.AvgSalesPerDay = SafeDiv(k.TotalSales, float64(k.Days))
	k.ConversionRate = ConversionRate(k.TotalUnitsOrdered, k.TotalPageViews)
	return k
}

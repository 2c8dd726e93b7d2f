// Package kpi computes the marketing metrics shown on the dashboards.
package kpi

import "math"

// SafeDiv returns num/den, or 0 when den is not positive or the result is
// not finite.
func SafeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ACOS is advertising cost of sales: cost/sales×100.
func ACOS(cost, sales float64) float64 { return SafeDiv(cost, sales) * 100 }

// ROAS is return on ad spend: sales/cost.
func ROAS(sales, cost float64) float64 { return SafeDiv(sales, cost) }

// CPC is cost per click.
func CPC(cost float64, clicks int64) float64 { return SafeDiv(cost, float64(clicks)) }

// CTR is click-through rate: clicks/impressions×100.
func CTR(clicks, impressions int64) float64 {
	return SafeDiv(float64(clicks), float64(impressions)) * 100
}

// CVR is conversion rate over clicks: purchases/clicks×100.
func CVR(purchases, clicks int64) float64 {
	return SafeDiv(float64(purchases), float64(clicks)) * 100
}

// ConversionRate is the business conversion rate: units/page_views×100.
func ConversionRate(units, pageViews int64) float64 {
	return SafeDiv(float64(units), float64(pageViews)) * 100
}

// AvgOrderValue is sales per unit ordered.
func AvgOrderValue(sales float64, units int64) float64 {
	return SafeDiv(sales, float64(units))
}

// TCOS is total cost of sales: ad cost over all business sales ×100.
func TCOS(cost, businessSales float64) float64 { return SafeDiv(cost, businessSales) * 100 }

// Round2 rounds to two decimals for chart payloads.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

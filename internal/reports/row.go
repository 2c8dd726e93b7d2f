package reports

import (
	"time"

	"adsight/internal/kpi"
	"adsight/internal/timeframe"
)

// Row is one aggregated report row. Text fields left empty display as
// NotAvailable, numeric fields default to 0.
type Row struct {
	Key string

	Date         time.Time
	SearchTerm   string
	Keyword      string
	CampaignName string
	SKU          string
	ParentASIN   string

	Cost        float64
	Sales       float64
	Clicks      int64
	Impressions int64
	Purchases   int64

	Sessions            int64
	PageViews           int64
	UnitsOrdered        int64
	OrderedProductSales float64

	ACOS           float64
	ROAS           float64
	CPC            float64
	CTR            float64
	CVR            float64
	ConversionRate float64
	AvgOrderValue  float64
}

// derive recomputes every ratio from the row's summed values.
func (r *Row) derive() {
	r.ACOS = kpi.ACOS(r.Cost, r.Sales)
	r.ROAS = kpi.ROAS(r.Sales, r.Cost)
	r.CPC = kpi.CPC(r.Cost, r.Clicks)
	r.CTR = kpi.CTR(r.Clicks, r.Impressions)
	r.CVR = kpi.CVR(r.Purchases, r.Clicks)
	r.ConversionRate = kpi.ConversionRate(r.UnitsOrdered, r.PageViews)
	r.AvgOrderValue = kpi.AvgOrderValue(r.OrderedProductSales, r.UnitsOrdered)
}

// Text returns the display string of a text field, NotAvailable when empty
// or when the field is not textual.
func (r Row) Text(f Field) string {
	var s string
	switch f {
	case FieldDate:
		if !r.Date.IsZero() {
			s = r.Date.Format(timeframe.LabelFormat)
		}
	case FieldSearchTerm:
		s = r.SearchTerm
	case FieldKeyword:
		s = r.Keyword
	case FieldCampaignName:
		s = r.CampaignName
	case FieldSKU:
		s = r.SKU
	case FieldParentASIN:
		s = r.ParentASIN
	case FieldProductTitle:
		if r.SKU != "" {
			s = "Product " + r.SKU
		}
	}
	if s == "" {
		return NotAvailable
	}
	return s
}

// Number returns the value of a numeric field, 0 for anything else.
func (r Row) Number(f Field) float64 {
	switch f {
	case FieldCost:
		return r.Cost
	case FieldSales:
		return r.Sales
	case FieldClicks:
		return float64(r.Clicks)
	case FieldImpressions:
		return float64(r.Impressions)
	case FieldPurchases:
		return float64(r.Purchases)
	case FieldSessions:
		return float64(r.Sessions)
	case FieldPageViews:
		return float64(r.PageViews)
	case FieldUnitsOrdered:
		return float64(r.UnitsOrdered)
	case FieldOrderedProductSales:
		return r.OrderedProductSales
	case FieldACOS:
		return r.ACOS
	case FieldROAS:
		return r.ROAS
	case FieldCPC:
		return r.CPC
	case FieldCTR:
		return r.CTR
	case FieldCVR:
		return r.CVR
	case FieldConversionRate:
		return r.ConversionRate
	case FieldAvgOrderValue:
		return r.AvgOrderValue
	default:
		return 0
	}
}

// Value returns the raw cell value of f: a string for text fields, an int64
// for integers and a float64 otherwise.
func (r Row) Value(f Field) any {
	switch k := KindOf(f); {
	case k.IsText():
		return r.Text(f)
	case k == KindInteger:
		return int64(r.Number(f))
	default:
		return r.Number(f)
	}
}

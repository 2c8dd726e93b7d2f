package reports

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotAvailable is the display value of a text field with no data.
const NotAvailable = "N/A"

// Field is a canonical column name.
type Field string

const (
	FieldDate                Field = "date"
	FieldSearchTerm          Field = "searchTerm"
	FieldKeyword             Field = "keyword"
	FieldCampaignName        Field = "campaignName"
	FieldCost                Field = "cost"
	FieldSales               Field = "sales1d"
	FieldACOS                Field = "acos"
	FieldROAS                Field = "roas"
	FieldCPC                 Field = "cpc"
	FieldCTR                 Field = "ctr"
	FieldCVR                 Field = "cvr"
	FieldClicks              Field = "clicks"
	FieldImpressions         Field = "impressions"
	FieldPurchases           Field = "purchases1d"
	FieldSKU                 Field = "sku"
	FieldParentASIN          Field = "parent_asin"
	FieldProductTitle        Field = "product_title"
	FieldSessions            Field = "sessions"
	FieldPageViews           Field = "page_views"
	FieldUnitsOrdered        Field = "units_ordered"
	FieldOrderedProductSales Field = "ordered_product_sales"
	FieldConversionRate      Field = "conversion_rate"
	FieldAvgOrderValue       Field = "avg_order_value"
)

// Kind is the semantic type of a field, used for formatting and sorting.
type Kind int

const (
	KindText Kind = iota
	KindCurrency
	KindPercent
	KindRatio
	KindInteger
)

// IsText reports whether the kind sorts and searches as a string.
func (k Kind) IsText() bool { return k == KindText }

// fieldKinds assigns every known field its kind.
var fieldKinds = map[Field]Kind{
	FieldDate:                KindText,
	FieldSearchTerm:          KindText,
	FieldKeyword:             KindText,
	FieldCampaignName:        KindText,
	FieldCost:                KindCurrency,
	FieldSales:               KindCurrency,
	FieldACOS:                KindPercent,
	FieldROAS:                KindRatio,
	FieldCPC:                 KindCurrency,
	FieldCTR:                 KindPercent,
	FieldCVR:                 KindPercent,
	FieldClicks:              KindInteger,
	FieldImpressions:         KindInteger,
	FieldPurchases:           KindInteger,
	FieldSKU:                 KindText,
	FieldParentASIN:          KindText,
	FieldProductTitle:        KindText,
	FieldSessions:            KindInteger,
	FieldPageViews:           KindInteger,
	FieldUnitsOrdered:        KindInteger,
	FieldOrderedProductSales: KindCurrency,
	FieldConversionRate:      KindPercent,
	FieldAvgOrderValue:       KindCurrency,
}

// headers is the field to human-readable header table. Headers are unique so
// the table inverts.
var headers = map[Field]string{
	FieldDate:                "Date",
	FieldSearchTerm:          "Search Term",
	FieldKeyword:             "Keywords",
	FieldCampaignName:        "Campaign Name",
	FieldCost:                "Spend",
	FieldSales:               "Sales",
	FieldACOS:                "ACOS",
	FieldROAS:                "ROAS",
	FieldCPC:                 "CPC",
	FieldCTR:                 "CTR",
	FieldCVR:                 "CVR",
	FieldClicks:              "Clicks",
	FieldImpressions:         "Impressions",
	FieldPurchases:           "Purchases",
	FieldSKU:                 "SKU",
	FieldParentASIN:          "Parent ASIN",
	FieldProductTitle:        "Product Title",
	FieldSessions:            "Sessions",
	FieldPageViews:           "Page Views",
	FieldUnitsOrdered:        "Units Ordered",
	FieldOrderedProductSales: "Ordered Product Sales",
	FieldConversionRate:      "Conversion Rate",
	FieldAvgOrderValue:       "Avg Order Value",
}

var headerFields = invertHeaders(headers)

func invertHeaders(h map[Field]string) map[string]Field {
	inv := make(map[string]Field, len(h))
	for f, name := range h {
		inv[name] = f
	}
	return inv
}

// KindOf returns the kind of f; unknown fields are text.
func KindOf(f Field) Kind {
	return fieldKinds[f]
}

// Known reports whether f is a recognised field.
func Known(f Field) bool {
	_, ok := fieldKinds[f]
	return ok
}

// Header returns the display header of f. Unknown fields fall back to a
// title-cased version of the name.
func Header(f Field) string {
	if h, ok := headers[f]; ok {
		return h
	}
	return cases.Title(language.English).String(string(f))
}

// FieldForHeader inverts Header for the known header table.
func FieldForHeader(header string) (Field, bool) {
	f, ok := headerFields[header]
	return f, ok
}

// Headers returns the display headers for fields, in order.
func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = Header(f)
	}
	return out
}

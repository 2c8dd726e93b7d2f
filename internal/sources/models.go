package sources

import (
	"time"

	"adsight/internal/timeframe"
)

// Table names of the two report sources.
const (
	AdsTable      = "amazon_ads_reports"
	BusinessTable = "amazon_sales_traffic"
)

// AdsReport is the storage model of one ads-performance report line.
type AdsReport struct {
	ID                         uint      `gorm:"primaryKey"`
	ReportDate                 time.Time `gorm:"column:report_date;type:date;index;not null"`
	ProfileID                  string    `gorm:"column:profile_id"`
	CampaignID                 string    `gorm:"column:campaign_id"`
	CampaignName               string    `gorm:"column:campaign_name;index"`
	CampaignStatus             string    `gorm:"column:campaign_status"`
	CampaignBudgetAmount       float64   `gorm:"column:campaign_budget_amount"`
	CampaignBudgetType         string    `gorm:"column:campaign_budget_type"`
	CampaignBudgetCurrencyCode string    `gorm:"column:campaign_budget_currency_code"`
	AdGroupID                  string    `gorm:"column:ad_group_id"`
	AdGroupName                string    `gorm:"column:ad_group_name"`
	SearchTerm                 string    `gorm:"column:search_term"`
	KeywordInfo                string    `gorm:"column:keyword_info"`
	KeywordType                string    `gorm:"column:keyword_type"`
	KeywordBid                 float64   `gorm:"column:keyword_bid"`
	MatchType                  string    `gorm:"column:match_type"`
	AdKeywordStatus            string    `gorm:"column:ad_keyword_status"`
	Impressions                int64     `gorm:"column:impressions"`
	Clicks                     int64     `gorm:"column:clicks"`
	ClickThroughRate           float64   `gorm:"column:click_through_rate"`
	Cost                       float64   `gorm:"column:cost"`
	Sales1d                    float64   `gorm:"column:sales_1d"`
	Purchases1d                int64     `gorm:"column:purchases_1d"`
}

func (AdsReport) TableName() string { return AdsTable }

// SalesTraffic is the storage model of one business report line. Sales are
// kept as text because upstream exports deliver them currency-formatted.
type SalesTraffic struct {
	ID                  uint      `gorm:"primaryKey"`
	Date                time.Time `gorm:"column:date;type:date;index;not null"`
	ParentASIN          string    `gorm:"column:parent_asin;index"`
	SKU                 string    `gorm:"column:sku;index"`
	Sessions            int64     `gorm:"column:sessions"`
	PageViews           int64     `gorm:"column:page_views"`
	UnitsOrdered        int64     `gorm:"column:units_ordered"`
	OrderedProductSales string    `gorm:"column:ordered_product_sales"`
}

func (SalesTraffic) TableName() string { return BusinessTable }

// Models lists the storage models for migrations.
func Models() []any {
	return []any{&AdsReport{}, &SalesTraffic{}}
}

// AdRecord is a normalized ads row.
type AdRecord struct {
	Date         time.Time
	SearchTerm   string
	Keyword      string
	CampaignName string
	CampaignID   string
	ProfileID    string

	CampaignStatus             string
	CampaignBudgetAmount       float64
	CampaignBudgetType         string
	CampaignBudgetCurrencyCode string
	AdGroupID                  string
	AdGroupName                string
	KeywordType                string
	KeywordBid                 float64
	MatchType                  string
	AdKeywordStatus            string
	ClickThroughRate           float64

	Cost        float64
	Sales1d     float64
	Clicks      int64
	Impressions int64
	Purchases1d int64
}

// WeekStart is the Monday of the record's week.
func (r AdRecord) WeekStart() time.Time { return timeframe.WeekStart(r.Date) }

// MonthStart is the first day of the record's month.
func (r AdRecord) MonthStart() time.Time { return timeframe.MonthStart(r.Date) }

// BucketStart is the start of the record's trend bucket.
func (r AdRecord) BucketStart(g timeframe.Granularity) time.Time {
	return timeframe.BucketStart(r.Date, g)
}

// BusinessRecord is a normalized sales/traffic row.
type BusinessRecord struct {
	Date                time.Time
	SKU                 string
	ParentASIN          string
	Sessions            int64
	PageViews           int64
	UnitsOrdered        int64
	OrderedProductSales float64
}

// WeekStart is the Monday of the record's week.
func (r BusinessRecord) WeekStart() time.Time { return timeframe.WeekStart(r.Date) }

// MonthStart is the first day of the record's month.
func (r BusinessRecord) MonthStart() time.Time { return timeframe.MonthStart(r.Date) }

// Dataset bundles both normalized sources for one request.
type Dataset struct {
	Ads      []AdRecord
	Business []BusinessRecord
}

package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/karloscodes/cartridge"

	"adsight/internal/kpi"
	"adsight/internal/pkg/async"
	"adsight/internal/reports"
	"adsight/internal/timeframe"
	"adsight/internal/trend"
)

const dashboardLoadError = "Unable to load report data"

// DashboardResponse is the ads dashboard page payload.
type DashboardResponse struct {
	KPIs               map[string]float64 `json:"kpis"`
	Chart              trend.Chart        `json:"chart"`
	AllCampaigns       []string           `json:"all_campaigns"`
	AllKeywords        []string           `json:"all_keywords"`
	SelectedCampaigns  []string           `json:"selected_campaigns"`
	SelectedKeywords   []string           `json:"selected_keywords"`
	TotalSalesBusiness float64            `json:"total_sales_business"`
	TCOS               float64            `json:"tcos"`
	StartDate          string             `json:"start_date"`
	EndDate            string             `json:"end_date"`
	GroupBy            string             `json:"group_by"`
	ReportType         string             `json:"report_type"`
	TableHeaders       []string           `json:"table_headers"`
	Error              string             `json:"error,omitempty"`
}

// BusinessDashboardResponse is the business dashboard page payload.
type BusinessDashboardResponse struct {
	KPIs                kpi.BusinessKPIs `json:"kpis"`
	AllSKUs             []string         `json:"all_skus"`
	AllParentASINs      []string         `json:"all_parent_asins"`
	SelectedSKUs        []string         `json:"selected_skus"`
	SelectedParentASINs []string         `json:"selected_parent_asins"`
	TotalSalesBusiness  float64          `json:"total_sales_business"`
	StartDate           string           `json:"start_date"`
	EndDate             string           `json:"end_date"`
	TableHeaders        []string         `json:"table_headers"`
	Error               string           `json:"error,omitempty"`
}

func emptyDashboard(rt reports.ReportType, g timeframe.Granularity, filters reports.Filters) *DashboardResponse {
	start, end := filters.Range.Format()
	return &DashboardResponse{
		KPIs:              kpi.AdsKPIs{}.Map(),
		Chart:             trend.NewChart(nil),
		AllCampaigns:      []string{},
		AllKeywords:       []string{},
		SelectedCampaigns: nonNil(filters.Campaigns),
		SelectedKeywords:  nonNil(filters.Keywords),
		StartDate:         start,
		EndDate:           end,
		GroupBy:           string(g),
		ReportType:        string(rt),
		TableHeaders:      reports.SchemaFor(rt).Headers(),
	}
}

// DashboardAction serves the ads dashboard: KPIs, trend chart, filter
// options and overall TCOS for the selected range.
func DashboardAction(ctx *cartridge.Context) error {
	start := time.Now()
	defer collector().ObserveRequest("/api/dashboard", start)

	values := queryValues(ctx)
	filters := parseFilters(ctx, values)
	rt := reports.ParseReportType(values.Get("report_type"))
	g := timeframe.ParseGranularity(values.Get("group_by"))
	cfg := appConfig(ctx)
	reqCtx := requestContext(ctx)

	repo := repository(ctx)
	ads, err := repo.FetchAdsDataset(reqCtx)
	if err != nil {
		ctx.Logger.Error("Failed to fetch ads dataset", slog.Any("error", err))
		collector().SourceFailure("fetch_ads")
		resp := emptyDashboard(rt, g, filters)
		resp.Error = dashboardLoadError
		return ctx.JSON(resp)
	}

	if bounds, ok := reports.AdsDateBounds(ads); ok {
		filters = filters.WithDefaultRange(bounds)
	}

	resp := emptyDashboard(rt, g, filters)

	// campaign options follow the date range only, keyword options also
	// follow the campaign selection
	dateOnly := reports.Filters{Range: filters.Range}
	resp.AllCampaigns = reports.CampaignOptions(dateOnly.ApplyAds(ads, reports.ReportCampaigns))
	byCampaign := reports.Filters{Range: filters.Range, Campaigns: filters.Campaigns}
	resp.AllKeywords = reports.KeywordOptions(byCampaign.ApplyAds(ads, reports.ReportCampaigns))

	filtered := filters.ApplyAds(ads, rt)
	kpis := kpi.CalculateAds(filtered)
	resp.KPIs = kpis.Map()

	builder := trend.NewBuilder(repo, ctx.Logger, cfg.GetTrendWorkers(), collector())
	from, to := filters.Range.From, filters.Range.To

	tasks := []async.Task[any]{
		{
			Name: "chart",
			Execute: func(c context.Context) (any, error) {
				points := builder.Build(c, trend.Request{Records: filtered, Granularity: g, Range: filters.Range})
				return trend.NewChart(points), nil
			},
		},
		{
			Name: "businessSales",
			Execute: func(c context.Context) (any, error) {
				return repo.SumBusinessSales(c, from, to)
			},
		},
	}

	results := async.Execute(reqCtx, async.NewPool(len(tasks)), tasks)

	if chart, ok := results["chart"].Data.(trend.Chart); ok {
		resp.Chart = chart
	}

	if r := results["businessSales"]; r.Err != nil {
		ctx.Logger.Warn("Failed to sum business sales", slog.Any("error", r.Err))
		collector().SourceFailure("sum_business_sales")
	} else if total, ok := r.Data.(float64); ok {
		resp.TotalSalesBusiness = kpi.Round2(total)
	}
	resp.TCOS = kpi.Round2(kpi.TCOS(kpis.Cost, resp.TotalSalesBusiness))

	return ctx.JSON(resp)
}

// BusinessDashboardAction serves the sales/traffic dashboard.
func BusinessDashboardAction(ctx *cartridge.Context) error {
	start := time.Now()
	defer collector().ObserveRequest("/api/business", start)

	values := queryValues(ctx)
	filters := parseFilters(ctx, values)

	resp := &BusinessDashboardResponse{
		AllSKUs:             []string{},
		AllParentASINs:      []string{},
		SelectedSKUs:        nonNil(filters.SKUs),
		SelectedParentASINs: nonNil(filters.ParentASINs),
		TableHeaders:        reports.SchemaFor(reports.ReportProducts).Headers(),
	}

	business, err := repository(ctx).FetchBusinessDataset(requestContext(ctx))
	if err != nil {
		ctx.Logger.Error("Failed to fetch business dataset", slog.Any("error", err))
		collector().SourceFailure("fetch_business")
		resp.StartDate, resp.EndDate = filters.Range.Format()
		resp.Error = dashboardLoadError
		return ctx.JSON(resp)
	}

	if bounds, ok := reports.BusinessDateBounds(business); ok {
		filters = filters.WithDefaultRange(bounds)
	}
	resp.StartDate, resp.EndDate = filters.Range.Format()

	dateOnly := reports.Filters{Range: filters.Range}.ApplyBusiness(business)
	resp.AllSKUs = reports.SKUOptions(dateOnly)
	resp.AllParentASINs = reports.ParentASINOptions(dateOnly)

	resp.KPIs = kpi.CalculateBusiness(filters.ApplyBusiness(business))
	resp.TotalSalesBusiness = kpi.Round2(resp.KPIs.TotalSales)

	ctx.Logger.Debug("Business dashboard served",
		slog.Int("rows", len(business)),
		slog.String("range", fmt.Sprintf("%s..%s", resp.StartDate, resp.EndDate)))

	return ctx.JSON(resp)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

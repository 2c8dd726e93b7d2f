package http

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/karloscodes/cartridge"

	"adsight/internal/grid"
	"adsight/internal/pkg/metrics"
	"adsight/internal/reports"
	"adsight/internal/sources"
)

// AdsDataAction serves the Keywords and Campaigns grids.
func AdsDataAction(ctx *cartridge.Context) error {
	start := time.Now()
	defer collector().ObserveRequest("/api/data", start)

	cfg := appConfig(ctx)
	req, err := grid.ParseRequest(queryValues(ctx), cfg.GetGridPageSize())
	logMalformedFilter(ctx, err)
	if reports.SchemaFor(req.ReportType).Source != reports.SourceAds {
		req.ReportType = reports.ReportKeywords
	}

	engine := grid.NewEngine(grid.NewFormatter(cfg.GetCurrencySymbol()), ctx.Logger)

	ads, err := repository(ctx).FetchAdsDataset(requestContext(ctx))
	if err != nil {
		collector().SourceFailure("fetch_ads")
		collector().GridQuery(string(req.ReportType), metrics.OutcomeError)
		return ctx.JSON(engine.Failed(req.Draw, fmt.Errorf("fetch ads dataset: %w", err)))
	}

	return respondWindow(ctx, req, engine.Query(sources.Dataset{Ads: ads}, req))
}

// BusinessDataAction serves the Products grid.
func BusinessDataAction(ctx *cartridge.Context) error {
	start := time.Now()
	defer collector().ObserveRequest("/api/business-data", start)

	cfg := appConfig(ctx)
	req, err := grid.ParseRequest(queryValues(ctx), cfg.GetBusinessPageSize())
	logMalformedFilter(ctx, err)
	req.ReportType = reports.ReportProducts

	engine := grid.NewEngine(grid.NewFormatter(cfg.GetCurrencySymbol()), ctx.Logger)

	business, err := repository(ctx).FetchBusinessDataset(requestContext(ctx))
	if err != nil {
		collector().SourceFailure("fetch_business")
		collector().GridQuery(string(req.ReportType), metrics.OutcomeError)
		return ctx.JSON(engine.Failed(req.Draw, fmt.Errorf("fetch business dataset: %w", err)))
	}

	return respondWindow(ctx, req, engine.Query(sources.Dataset{Business: business}, req))
}

func respondWindow(ctx *cartridge.Context, req grid.Request, window grid.Window) error {
	outcome := metrics.OutcomeOK
	switch {
	case window.Error != "":
		outcome = metrics.OutcomeError
	case window.RecordsFiltered == 0:
		outcome = metrics.OutcomeEmpty
	}
	collector().GridQuery(string(req.ReportType), outcome)

	ctx.Logger.Debug("Grid query served",
		slog.String("report_type", string(req.ReportType)),
		slog.Int("draw", window.Draw),
		slog.Int("records_total", window.RecordsTotal),
		slog.Int("records_filtered", window.RecordsFiltered))

	return ctx.JSON(window)
}

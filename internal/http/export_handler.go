package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"

	"adsight/internal/export"
	"adsight/internal/grid"
	"adsight/internal/pkg/metrics"
	"adsight/internal/reports"
	"adsight/internal/sources"
)

// ExportAction downloads the filtered Keywords or Campaigns report.
func ExportAction(ctx *cartridge.Context) error {
	format, err := export.ParseFormat(ctx.Params("format"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	values := queryValues(ctx)
	filters := parseFilters(ctx, values)
	rt := reports.ParseReportType(values.Get("report_type"))
	schema := reports.SchemaFor(rt)
	if schema.Source != reports.SourceAds {
		schema = reports.SchemaFor(reports.ReportKeywords)
	}

	ads, err := repository(ctx).FetchAdsDataset(requestContext(ctx))
	if err != nil {
		ctx.Logger.Error("Failed to fetch ads dataset for export", slog.Any("error", err))
		collector().SourceFailure("fetch_ads")
		collector().Export(string(format), metrics.OutcomeError)
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Unable to load report data"})
	}

	rows := grid.Prepare(sources.Dataset{Ads: ads}, schema.Type, filters)
	table := reports.BuildTable(rows, schema.Fields())

	filename := export.Filename(export.AdsPrefix(schema.Type), format, time.Now())
	return sendExport(ctx, format, export.AdsSheet(schema.Type), filename, table)
}

// BusinessExportAction downloads the filtered business data, one row per day.
func BusinessExportAction(ctx *cartridge.Context) error {
	format, err := export.ParseFormat(ctx.Params("format"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	filters := parseFilters(ctx, queryValues(ctx))

	business, err := repository(ctx).FetchBusinessDataset(requestContext(ctx))
	if err != nil {
		ctx.Logger.Error("Failed to fetch business dataset for export", slog.Any("error", err))
		collector().SourceFailure("fetch_business")
		collector().Export(string(format), metrics.OutcomeError)
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Unable to load report data"})
	}

	ds := sources.Dataset{Business: filters.ApplyBusiness(business)}
	rows := reports.Aggregate(ds, reports.ReportProducts, reports.FieldDate)
	table := reports.BuildTable(rows, reports.BusinessDailyFields)

	filename := export.Filename(export.BusinessPrefix, format, time.Now())
	return sendExport(ctx, format, export.BusinessSheet, filename, table)
}

func sendExport(ctx *cartridge.Context, format export.Format, sheet, filename string, table reports.Table) error {
	var buf bytes.Buffer
	if err := export.Write(&buf, format, sheet, table); err != nil {
		ctx.Logger.Error("Failed to write export", slog.String("format", string(format)), slog.Any("error", err))
		collector().Export(string(format), metrics.OutcomeError)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build export"})
	}

	ctx.Set("Content-Type", format.ContentType())
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	ctx.Logger.Info("Report exported",
		slog.String("file", filename),
		slog.Int("rows", len(table.Records)))
	collector().Export(string(format), metrics.OutcomeOK)

	_, err := buf.WriteTo(ctx.Response().BodyWriter())
	return err
}

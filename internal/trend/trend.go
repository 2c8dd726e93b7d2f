// Package trend buckets ad spend and sales over time and blends in the
// business sales of each bucket.
package trend

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"adsight/internal/kpi"
	"adsight/internal/pkg/async"
	"adsight/internal/pkg/metrics"
	"adsight/internal/sources"
	"adsight/internal/timeframe"
)

// DefaultWorkers bounds concurrent sales lookups when no count is configured.
const DefaultWorkers = 4

// SalesLookup returns total business sales for an inclusive day range.
type SalesLookup interface {
	SumBusinessSales(ctx context.Context, from, to *time.Time) (float64, error)
}

// Request describes one trend series.
type Request struct {
	Records     []sources.AdRecord
	Granularity timeframe.Granularity
	Range       timeframe.DateRange
}

// Point is one bucket of the series.
type Point struct {
	Label         string
	Span          timeframe.Span
	Spend         float64
	Sales         float64
	ACOS          float64
	BusinessSales float64
	TCOS          float64
}

// Builder produces trend series.
type Builder struct {
	lookup  SalesLookup
	logger  *slog.Logger
	workers int
	metrics *metrics.Collector
}

// NewBuilder creates a builder. workers below 1 uses DefaultWorkers. A nil
// collector disables metrics.
func NewBuilder(lookup SalesLookup, logger *slog.Logger, workers int, collector *metrics.Collector) *Builder {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{lookup: lookup, logger: logger, workers: workers, metrics: collector}
}

// Build buckets the records and looks up business sales per bucket. Points
// are ascending by bucket start. A failed lookup zeroes that bucket's
// business sales only.
func (b *Builder) Build(ctx context.Context, req Request) []Point {
	g := req.Granularity
	if g == "" {
		g = timeframe.GranularityDaily
	}

	buckets := make(map[time.Time]*Point)
	for _, rec := range req.Records {
		if !req.Range.Contains(rec.Date) {
			continue
		}
		start := rec.BucketStart(g)
		p, ok := buckets[start]
		if !ok {
			span := timeframe.BucketSpan(start, g)
			p = &Point{Label: span.Label(), Span: span}
			buckets[start] = p
		}
		p.Spend += rec.Cost
		p.Sales += rec.Sales1d
	}

	points := make([]Point, 0, len(buckets))
	for _, p := range buckets {
		p.ACOS = kpi.ACOS(p.Spend, p.Sales)
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Span.From.Before(points[j].Span.From)
	})

	if len(points) == 0 {
		return points
	}

	sales := b.lookupSales(ctx, points)
	for i := range points {
		points[i].BusinessSales = sales[points[i].Label]
		points[i].TCOS = kpi.TCOS(points[i].Spend, points[i].BusinessSales)
	}
	return points
}

func (b *Builder) lookupSales(ctx context.Context, points []Point) map[string]float64 {
	out := make(map[string]float64, len(points))
	if b.lookup == nil {
		return out
	}

	tasks := make([]async.Task[float64], len(points))
	for i, p := range points {
		span := p.Span
		tasks[i] = async.Task[float64]{
			Name: p.Label,
			Execute: func(ctx context.Context) (float64, error) {
				return b.lookup.SumBusinessSales(ctx, &span.From, &span.To)
			},
		}
	}

	results := async.Execute(ctx, async.NewPool(b.workers), tasks)
	for label, result := range results {
		if result.Err != nil {
			b.logger.Warn("Business sales lookup failed",
				slog.String("bucket", label),
				slog.Any("error", result.Err))
			b.metrics.TrendLookup(metrics.OutcomeError)
			continue
		}
		b.metrics.TrendLookup(metrics.OutcomeOK)
		out[label] = result.Data
	}
	return out
}

// Chart is the aligned series consumed by the dashboard chart.
type Chart struct {
	Labels     []string  `json:"labels"`
	Spend      []float64 `json:"spend"`
	Sales      []float64 `json:"sales"`
	ACOS       []float64 `json:"acos"`
	TotalSales []float64 `json:"total_sales"`
	TCOS       []float64 `json:"tcos"`
}

// NewChart flattens points into aligned sequences rounded to 2 decimals.
func NewChart(points []Point) Chart {
	c := Chart{
		Labels:     make([]string, 0, len(points)),
		Spend:      make([]float64, 0, len(points)),
		Sales:      make([]float64, 0, len(points)),
		ACOS:       make([]float64, 0, len(points)),
		TotalSales: make([]float64, 0, len(points)),
		TCOS:       make([]float64, 0, len(points)),
	}
	for _, p := range points {
		c.Labels = append(c.Labels, p.Label)
		c.Spend = append(c.Spend, kpi.Round2(p.Spend))
		c.Sales = append(c.Sales, kpi.Round2(p.Sales))
		c.ACOS = append(c.ACOS, kpi.Round2(p.ACOS))
		c.TotalSales = append(c.TotalSales, kpi.Round2(p.BusinessSales))
		c.TCOS = append(c.TCOS, kpi.Round2(p.TCOS))
	}
	return c
}

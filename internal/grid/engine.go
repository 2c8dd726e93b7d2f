// Package grid implements the server-side processing contract of the report
// grid: filter, aggregate, search, count, sort, window and format.
package grid

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"adsight/internal/reports"
	"adsight/internal/sources"
)

// Window is the grid response.
type Window struct {
	Draw            int     `json:"draw"`
	RecordsTotal    int     `json:"recordsTotal"`
	RecordsFiltered int     `json:"recordsFiltered"`
	Data            [][]any `json:"data"`
	Error           string  `json:"error,omitempty"`
	ErrorID         string  `json:"error_id,omitempty"`
}

// Engine answers grid requests over an already fetched dataset.
type Engine struct {
	formatter *Formatter
	logger    *slog.Logger
}

// NewEngine creates an engine. A nil formatter uses the default currency.
func NewEngine(formatter *Formatter, logger *slog.Logger) *Engine {
	if formatter == nil {
		formatter = NewFormatter("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{formatter: formatter, logger: logger}
}

// Prepare applies the domain filters and aggregates for the report type.
func Prepare(ds sources.Dataset, rt reports.ReportType, filters reports.Filters) []reports.Row {
	schema := reports.SchemaFor(rt)
	var filtered sources.Dataset
	switch schema.Source {
	case reports.SourceBusiness:
		filtered.Business = filters.ApplyBusiness(ds.Business)
	default:
		filtered.Ads = filters.ApplyAds(ds.Ads, schema.Type)
	}
	return reports.Aggregate(filtered, schema.Type)
}

// Query runs the full pipeline. Steps run in a fixed order: filter,
// aggregate, search, count, sort, window, format. Any panic along the way
// yields an empty window carrying a diagnostic.
func (e *Engine) Query(ds sources.Dataset, req Request) (w Window) {
	defer func() {
		if r := recover(); r != nil {
			w = e.Failed(req.Draw, fmt.Errorf("grid query panicked: %v", r))
		}
	}()

	schema := reports.SchemaFor(req.ReportType)

	rows := Prepare(ds, schema.Type, req.Filters)
	total := len(rows)

	rows = Search(rows, schema, req.Search)
	filtered := len(rows)

	Sort(rows, schema, req.OrderColumn, req.Descending())
	page := Paginate(rows, req.Start, req.Length)

	data := make([][]any, len(page))
	for i, row := range page {
		data[i] = e.formatter.Row(row, schema)
	}

	return Window{
		Draw:            req.Draw,
		RecordsTotal:    total,
		RecordsFiltered: filtered,
		Data:            data,
	}
}

// Failed builds the empty window returned when the data could not be
// produced. The error is logged under a correlation id echoed to the client.
func (e *Engine) Failed(draw int, err error) Window {
	id := uuid.NewString()
	e.logger.Error("Grid query failed", slog.String("error_id", id), slog.Any("error", err))
	return Window{
		Draw:    draw,
		Data:    [][]any{},
		Error:   "Unable to load report data",
		ErrorID: id,
	}
}

// Search keeps rows where any searchable text column contains term,
// case-insensitively. An empty term keeps everything.
func Search(rows []reports.Row, schema reports.Schema, term string) []reports.Row {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return rows
	}
	fields := schema.SearchableFields()
	return lo.Filter(rows, func(row reports.Row, _ int) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(row.Text(f)), term) {
				return true
			}
		}
		return false
	})
}

// Sort orders rows in place by the column at index. Unmapped indexes leave
// the order untouched. The sort is stable.
func Sort(rows []reports.Row, schema reports.Schema, index int, descending bool) {
	col, ok := schema.SortColumn(index)
	if !ok {
		return
	}

	less := func(a, b reports.Row) bool {
		if col.Kind.IsText() {
			return a.Text(col.Field) < b.Text(col.Field)
		}
		return a.Number(col.Field) < b.Number(col.Field)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// Paginate returns rows[start:start+length], clamped to the slice. A
// negative length returns everything from start.
func Paginate[T any](rows []T, start, length int) []T {
	if start < 0 {
		start = 0
	}
	if start >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if length >= 0 && length < end-start {
		end = start + length
	}
	return rows[start:end]
}

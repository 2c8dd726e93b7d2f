package grid

import (
	"net/url"
	"strconv"
	"strings"

	"adsight/internal/reports"
	"adsight/internal/timeframe"
)

// Sort directions.
const (
	DirAsc  = "asc"
	DirDesc = "desc"
)

// DefaultPageSize is the page length when the client sends none.
const DefaultPageSize = 25

// Request is one server-side processing call from the grid widget.
type Request struct {
	Draw        int
	Start       int
	Length      int // negative means all rows
	Search      string
	OrderColumn int // negative means unsorted
	OrderDir    string
	ReportType  reports.ReportType
	Filters     reports.Filters
}

// Descending reports whether the request sorts high to low.
func (r Request) Descending() bool {
	return strings.EqualFold(r.OrderDir, DirDesc)
}

// ParseRequest reads the widget's query parameters. The returned error only
// reports malformed date filters, which are dropped from the request; the
// request itself is always usable.
func ParseRequest(values url.Values, defaultLength int) (Request, error) {
	if defaultLength == 0 {
		defaultLength = DefaultPageSize
	}

	req := Request{
		Draw:        intParam(values, "draw", 1),
		Start:       intParam(values, "start", 0),
		Length:      intParam(values, "length", defaultLength),
		Search:      strings.TrimSpace(values.Get("search[value]")),
		OrderColumn: intParam(values, "order[0][column]", -1),
		OrderDir:    DirAsc,
		ReportType:  reports.ParseReportType(values.Get("report_type")),
	}
	if strings.EqualFold(values.Get("order[0][dir]"), DirDesc) {
		req.OrderDir = DirDesc
	}
	if req.Start < 0 {
		req.Start = 0
	}

	filters, err := ParseFilters(values)
	req.Filters = filters
	return req, err
}

// ParseFilters reads the domain filters shared by grids, dashboards and
// exports.
func ParseFilters(values url.Values) (reports.Filters, error) {
	dateRange, err := timeframe.ParseDateRange(values.Get("start_date"), values.Get("end_date"))
	return reports.Filters{
		Range:       dateRange,
		Campaigns:   MultiParam(values, "campaigns"),
		Keywords:    MultiParam(values, "keywords"),
		SKUs:        MultiParam(values, "skus"),
		ParentASINs: MultiParam(values, "parent_asins"),
	}, err
}

// MultiParam collects a repeated parameter sent either as name[] or name.
func MultiParam(values url.Values, name string) []string {
	var out []string
	out = append(out, values[name+"[]"]...)
	out = append(out, values[name]...)
	return reports.CleanValues(out)
}

func intParam(values url.Values, name string, def int) int {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

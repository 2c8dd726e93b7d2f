package http

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/karloscodes/cartridge"

	"adsight/internal/config"
	"adsight/internal/grid"
	"adsight/internal/pkg/metrics"
	"adsight/internal/reports"
	"adsight/internal/sources"
	"adsight/internal/timeframe"
)

// appConfig returns the adsight config carried by the request context.
func appConfig(ctx *cartridge.Context) *config.Config {
	if cfg, ok := ctx.Config.(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.GetConfig()
}

// queryValues parses the raw query string so repeated and bracketed keys
// (campaigns[]=a&campaigns[]=b) survive.
func queryValues(ctx *cartridge.Context) url.Values {
	values, err := url.ParseQuery(string(ctx.Ctx.Request().URI().QueryString()))
	if err != nil {
		ctx.Logger.Warn("Malformed query string", slog.Any("error", err))
	}
	return values
}

// requestContext returns the context bound to the request lifetime.
func requestContext(ctx *cartridge.Context) context.Context {
	if c := ctx.Ctx.UserContext(); c != nil {
		return c
	}
	return context.Background()
}

func repository(ctx *cartridge.Context) *sources.Repository {
	return sources.NewRepository(ctx.DB(), ctx.Logger)
}

func collector() *metrics.Collector {
	return metrics.Default()
}

// parseFilters reads the domain filters and logs malformed dates, which are
// dropped.
func parseFilters(ctx *cartridge.Context, values url.Values) reports.Filters {
	filters, err := grid.ParseFilters(values)
	logMalformedFilter(ctx, err)
	return filters
}

func logMalformedFilter(ctx *cartridge.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, timeframe.ErrMalformedDate) {
		ctx.Logger.Warn("Ignoring malformed date filter", slog.Any("error", err))
		return
	}
	ctx.Logger.Warn("Ignoring malformed filter", slog.Any("error", err))
}

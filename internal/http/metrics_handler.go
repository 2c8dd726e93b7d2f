package http

import (
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/karloscodes/cartridge"
)

// MetricsAction exposes the Prometheus collectors.
func MetricsAction(ctx *cartridge.Context) error {
	return adaptor.HTTPHandler(collector().Handler())(ctx.Ctx)
}

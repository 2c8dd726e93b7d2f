package internal

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/karloscodes/cartridge"
	cartridgemiddleware "github.com/karloscodes/cartridge/middleware"

	"adsight/internal/config"
	"adsight/internal/http"
	"adsight/internal/http/middleware"
)

// MountAppRoutes mounts all application routes using cartridge's route API
func MountAppRoutes(srv *cartridge.Server) {
	cfg := config.GetConfig()

	// Helper to conditionally apply rate limiting (only in production)
	// In development/test, rate limiting would interfere with testing
	conditionalRateLimiter := func(limiter fiber.Handler) fiber.Handler {
		return func(c *fiber.Ctx) error {
			if cfg.IsProduction() {
				return limiter(c)
			}
			return c.Next()
		}
	}

	// Exports read and serialize the whole filtered dataset (20 requests per minute per IP)
	exportRateLimiter := conditionalRateLimiter(cartridgemiddleware.RateLimiter(
		cartridgemiddleware.WithMax(20),
		cartridgemiddleware.WithDuration(time.Minute),
	))

	exportConfig := &cartridge.RouteConfig{
		CustomMiddleware: []fiber.Handler{exportRateLimiter},
	}

	// Probes and scrapers call without browser headers
	probeConfig := &cartridge.RouteConfig{
		EnableSecFetchSite: cartridge.Bool(false),
	}

	// Health check endpoint
	srv.Get("/_health", http.HealthIndexAction, probeConfig)
	srv.Head("/_health", http.HealthIndexAction, probeConfig)

	if cfg.MetricsEnabled {
		metricsConfig := &cartridge.RouteConfig{
			EnableSecFetchSite: cartridge.Bool(false),
			CustomMiddleware:   []fiber.Handler{middleware.BearerToken(cfg.MetricsToken, slog.Default())},
		}
		srv.Get("/metrics", http.MetricsAction, metricsConfig)
	}

	// === DASHBOARD PAGES ===
	srv.Get("/api/dashboard", http.DashboardAction)
	srv.Get("/api/business", http.BusinessDashboardAction)

	// === GRID DATA (server-side processing) ===
	srv.Get("/api/data", http.AdsDataAction)
	srv.Get("/api/business-data", http.BusinessDataAction)

	// === EXPORTS ===
	srv.Get("/export/business/:format", http.BusinessExportAction, exportConfig)
	srv.Get("/export/:format", http.ExportAction, exportConfig)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/jayakulan/TrashRoute1/internal/pkg/metrics"
)

// SetupRoutes registers all REST and GraphQL routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // Balance speed vs compression ratio
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Legacy paths kept alive for old clients
	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{
			Path:        "/v1/pickup-requests",
			SunsetDate:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			Alternative: "/v1/requests",
		},
	}))

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1, 15s per-request timeout
	v1 := app.Group("/v1")
	v1.Get("/region", RegionHandler(deps))
	v1.Get("/categories", timeout.NewWithContext(ListCategoriesHandler(deps), 15*time.Second))
	v1.Get("/categories/:id", timeout.NewWithContext(GetCategoryHandler(deps), 15*time.Second))
	v1.Get("/companies/nearby", timeout.NewWithContext(NearbyCompaniesHandler(deps), 15*time.Second))
	v1.Get("/companies/:id", timeout.NewWithContext(GetCompanyHandler(deps), 15*time.Second))

	// Pickup requests
	v1.Get("/requests", timeout.NewWithContext(ListRequestsHandler(deps), 15*time.Second))
	v1.Get("/requests/:id", timeout.NewWithContext(GetRequestHandler(deps), 15*time.Second))
	v1.Post("/requests/:id/accept", timeout.NewWithContext(AcceptRequestHandler(deps), 15*time.Second))
	v1.Post("/requests/:id/start", timeout.NewWithContext(StartRequestHandler(deps), 15*time.Second))
	v1.Post("/requests/:id/complete", timeout.NewWithContext(CompleteRequestHandler(deps), 15*time.Second))
	v1.Post("/requests/:id/cancel", timeout.NewWithContext(CancelRequestHandler(deps), 15*time.Second))

	// Legacy alias for the request list
	v1.Get("/pickup-requests", timeout.NewWithContext(ListRequestsHandler(deps), 15*time.Second))

	// Draft intake flow
	v1.Post("/drafts", CreateDraftHandler(deps))
	v1.Get("/drafts/:id", GetDraftHandler(deps))
	v1.Put("/drafts/:id/items", SetDraftItemHandler(deps))
	v1.Delete("/drafts/:id/items/:categoryID", RemoveDraftItemHandler(deps))
	v1.Put("/drafts/:id/address", SetDraftAddressHandler(deps))
	v1.Post("/drafts/:id/location/device", DevicePositionHandler(deps))
	v1.Post("/drafts/:id/location/pin", PlacePinHandler(deps))
	v1.Post("/drafts/:id/location/confirm", ConfirmPinHandler(deps))
	v1.Post("/drafts/:id/location/reopen", ReopenPinHandler(deps))
	v1.Put("/drafts/:id/schedule", SetDraftScheduleHandler(deps))
	v1.Post("/drafts/:id/next", AdvanceDraftHandler(deps))
	v1.Post("/drafts/:id/back", BackDraftHandler(deps))
	v1.Post("/drafts/:id/submit", timeout.NewWithContext(SubmitDraftHandler(deps), 15*time.Second))
	v1.Delete("/drafts/:id", DiscardDraftHandler(deps))

	// Dashboards
	v1.Get("/dashboard/customer/:userID", timeout.NewWithContext(CustomerDashboardHandler(deps), 15*time.Second))
	v1.Get("/dashboard/company/:companyID", timeout.NewWithContext(CompanyDashboardHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)
}

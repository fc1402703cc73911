package bootstrap

import (
	"strings"

	"triage_server/adapter/in/http"
	"triage_server/config"
	"triage_server/infra/middleware"
	"triage_server/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	// Initialize logger
	logLevel := logger.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = logger.LevelDebug
	}
	if cfg.LogLevel != "" {
		logLevel = logger.ParseLevel(cfg.LogLevel)
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "triage-api",
	})

	deps, cleanup, err := NewDependencies(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		Prefork:               false,
		StrictRouting:         false,
		CaseSensitive:         false,

		// Buffer sizes
		ReadBufferSize:  16384, // 16KB
		WriteBufferSize: 16384, // 16KB

		// go-json is 2-3x faster than encoding/json
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		// Body limit (memory protection)
		BodyLimit: 10 * 1024 * 1024, // 10MB

		Concurrency: 256 * 1024,

		ServerHeader:             "",
		DisableDefaultDate:       true,
		DisableHeaderNormalizing: false,
		DisableKeepalive:         false,

		StreamRequestBody:            true,
		DisablePreParseMultipartForm: true,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())              // 1. Panic recovery
	app.Use(middleware.RequestID())            // 2. Request ID
	app.Use(middleware.SecurityHeaders())      // 3. Security headers
	app.Use(middleware.PreventPathTraversal()) // 4. Path traversal protection
	app.Use(middleware.RequestLogger())        // 5. Request logging
	app.Use(middleware.ValidateContentType())  // 6. Content type validation

	// Response compression (gzip/brotli)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// CORS - AllowCredentials:true requires explicit origins (not "*")
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	allowCredentials := true
	if allowOrigins == "" || allowOrigins == "*" {
		// In production, never allow "*" with credentials
		if cfg.IsProduction() {
			allowOrigins = "" // Block all if not configured properly
			allowCredentials = false
		} else {
			// Development: allow localhost only
			allowOrigins = "http://localhost:3000,http://localhost:5173"
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: allowCredentials,
		MaxAge:           86400, // 24 hours
	}))

	// Health check
	healthHandler := http.NewHealthHandlerWithDeps(deps.Completion, cfg.OpenAIAPIKey != "")
	healthHandler.Register(app)

	// Prometheus metrics on a side listener
	stopMetrics := StartMetricsServer(cfg.MetricsAddr)

	// API routes
	api := app.Group("/api/v1")

	triageHandler := http.NewTriageHandler(deps.TriageService, cfg.MaxBatchSize)
	triageHandler.Register(api)

	logger.Info("API server initialized successfully")

	fullCleanup := func() {
		stopMetrics()
		cleanup()
	}
	return app, fullCleanup, nil
}

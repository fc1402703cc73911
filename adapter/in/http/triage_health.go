package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// BreakerStatus reports the completion adapter's circuit state.
type BreakerStatus interface {
	GetCircuitBreakerState() string
	IsCircuitOpen() bool
}

type HealthHandler struct {
	completion     BreakerStatus
	credentialsSet bool
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func NewHealthHandlerWithDeps(completion BreakerStatus, credentialsSet bool) *HealthHandler {
	return &HealthHandler{
		completion:     completion,
		credentialsSet: credentialsSet,
	}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := make(map[string]string)
	allHealthy := true

	// Check OpenAI credentials
	if h.credentialsSet {
		checks["openai_credentials"] = "configured"
	} else {
		checks["openai_credentials"] = "missing"
		allHealthy = false
	}

	// Check completion circuit breaker
	if h.completion != nil {
		checks["completion_breaker"] = h.completion.GetCircuitBreakerState()
		if h.completion.IsCircuitOpen() {
			allHealthy = false
		}
	} else {
		checks["completion_breaker"] = "not configured"
	}

	status := "ready"
	statusCode := fiber.StatusOK
	if !allHealthy {
		status = "not ready"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

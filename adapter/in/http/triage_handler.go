package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"triage_server/core/domain"
	"triage_server/core/port/in"
	"triage_server/pkg/response"
)

// TriageHandler handles HTTP requests for email triage.
type TriageHandler struct {
	service      in.TriageService
	maxBatchSize int
}

// NewTriageHandler creates a new TriageHandler.
func NewTriageHandler(service in.TriageService, maxBatchSize int) *TriageHandler {
	if maxBatchSize <= 0 {
		maxBatchSize = 100
	}
	return &TriageHandler{
		service:      service,
		maxBatchSize: maxBatchSize,
	}
}

// Register registers triage routes.
func (h *TriageHandler) Register(router fiber.Router) {
	triage := router.Group("/triage")

	triage.Post("/process", h.Process)
	triage.Post("/batch", h.ProcessBatch)
}

// BatchRequest is the payload for batch processing.
type BatchRequest struct {
	Emails []domain.Email `json:"emails"`
}

// Process runs one email through the triage pipeline
// @Summary Process a single email
// @Tags Triage
// @Accept json
// @Produce json
// @Param request body domain.Email true "Email to process"
// @Success 200 {object} domain.ProcessingResult
// @Router /api/v1/triage/process [post]
func (h *TriageHandler) Process(c *fiber.Ctx) error {
	var email domain.Email
	if err := c.BodyParser(&email); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	// Pipeline failures are data, not transport errors. The result
	// carries them and the request still succeeds.
	result := h.service.Process(c.Context(), email)
	return response.OK(c, result)
}

// ProcessBatch runs a batch of emails strictly in order
// @Summary Process a batch of emails
// @Tags Triage
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Emails to process"
// @Success 200 {object} domain.ProcessingReport
// @Router /api/v1/triage/batch [post]
func (h *TriageHandler) ProcessBatch(c *fiber.Ctx) error {
	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if len(req.Emails) == 0 {
		return response.BadRequest(c, "batch contains no emails")
	}
	if len(req.Emails) > h.maxBatchSize {
		return response.BadRequest(c, fmt.Sprintf("batch exceeds the %d email limit", h.maxBatchSize))
	}

	report := h.service.ProcessBatch(c.Context(), req.Emails)
	return response.OKWithMeta(c, report, &response.Meta{
		Total:     report.Processed,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
	})
}

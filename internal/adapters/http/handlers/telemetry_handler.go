package handlers

import (
	"edugate/internal/adapters/http/middleware"
	"edugate/internal/core/services"
	"edugate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TelemetryHandler handles behaviour telemetry ingestion
type TelemetryHandler struct {
	telemetryService *services.TelemetryService
}

// NewTelemetryHandler creates a new telemetry handler
func NewTelemetryHandler(telemetryService *services.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetryService: telemetryService}
}

// Record handles a telemetry batch
// @Summary Record behaviour telemetry
// @Description Fire-and-forget interaction telemetry. Returns the heuristic behaviour score.
// @Tags Telemetry
// @Accept json
// @Produce json
// @Param body body services.TelemetryEvent true "Telemetry batch"
// @Success 202 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/telemetry [post]
func (h *TelemetryHandler) Record(c *fiber.Ctx) error {
	var event services.TelemetryEvent
	if err := c.BodyParser(&event); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	score := h.telemetryService.Record(c.Context(), middleware.CallerFrom(c), &event)

	return response.Accepted(c, "Telemetry accepted", fiber.Map{
		"behaviour_score": score,
	})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sushnag22/pdf-generator/internal/application/dto"
)

// Health godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  json
// @Success  200  {object}  dto.HealthResponse
// @Router   /health [get]
func Health(service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: service})
	}
}

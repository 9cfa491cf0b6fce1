package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sushnag22/pdf-generator/internal/application/document"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	Documents *document.UseCase
	Service   string
	Log       *logger.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(RequestID())
	app.Use(RequestLogger(deps.Log))

	app.Get("/health", Health(deps.Service))

	v1 := app.Group("/api/v1")

	pdf := v1.Group("/pdf")
	pdfHandler := NewPDFHandler(deps.Documents, deps.Log)
	pdf.Post("/generate-and-store", pdfHandler.GenerateAndStore)
	pdf.Get("/download/:fileName", pdfHandler.Download)
}

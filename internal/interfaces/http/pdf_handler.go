package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/sushnag22/pdf-generator/internal/application/document"
	"github.com/sushnag22/pdf-generator/internal/application/dto"
	"github.com/sushnag22/pdf-generator/internal/application/validation"
	"github.com/sushnag22/pdf-generator/internal/domain"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

// Response messages.
const (
	msgGenerated       = "PDF generated and stored successfully"
	msgInvalidBody     = "Invalid request body"
	msgHashFailure     = "Error generating hash for PDF data"
	msgGenerateFailure = "Error generating and storing PDF"
	msgNotFound        = "PDF file not found"
	msgDownloadFailure = "Error downloading PDF"
)

// PDFHandler serves invoice generation and download.
type PDFHandler struct {
	uc  *document.UseCase
	log *logger.Logger
}

// NewPDFHandler builds the handler.
func NewPDFHandler(uc *document.UseCase, log *logger.Logger) *PDFHandler {
	return &PDFHandler{uc: uc, log: log.Named("http.pdf")}
}

// GenerateAndStore godoc
// @Summary      Generate and store an invoice PDF
// @Description  Validates the invoice, derives a content-addressed file name and stores the PDF. Identical invoices map to the same file.
// @Tags         pdf
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateRequest  true  "Invoice"
// @Success      200   {object}  dto.APIResponse
// @Failure      400   {object}  dto.APIResponse
// @Failure      500   {object}  dto.APIResponse
// @Router       /api/v1/pdf/generate-and-store [post]
func (h *PDFHandler) GenerateAndStore(c *fiber.Ctx) error {
	var in dto.GenerateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(failure(fiber.StatusBadRequest, msgInvalidBody))
	}

	res, err := h.uc.GenerateAndStore(c.UserContext(), &in)
	if err != nil {
		if ve, ok := validation.AsError(err); ok {
			body := failure(fiber.StatusBadRequest, ve.Message)
			body.Errors = ve.Details
			return c.Status(fiber.StatusBadRequest).JSON(body)
		}
		h.log.Error().Err(err).Str("request_id", requestID(c)).Msg("PDF generation failed")
		msg := msgGenerateFailure
		if errors.Is(err, domain.ErrHashDerivation) {
			msg = msgHashFailure
		}
		return c.Status(fiber.StatusInternalServerError).JSON(internalError(msg))
	}

	return c.JSON(dto.APIResponse{
		Status:     dto.StatusSuccess,
		StatusCode: fiber.StatusOK,
		Message:    msgGenerated,
		FileName:   res.FileName,
	})
}

// Download godoc
// @Summary      Download a stored PDF
// @Tags         pdf
// @Produce      application/pdf
// @Param        fileName  path      string  true  "File name returned by generate-and-store"
// @Success      200       {file}    binary
// @Failure      404       {object}  dto.APIResponse
// @Failure      500       {object}  dto.APIResponse
// @Router       /api/v1/pdf/download/{fileName} [get]
func (h *PDFHandler) Download(c *fiber.Ctx) error {
	// Params aliases the request buffer, which fasthttp reuses after the handler returns.
	name := utils.CopyString(c.Params("fileName"))

	doc, err := h.uc.Download(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidFileName) {
			return c.Status(fiber.StatusNotFound).JSON(failure(fiber.StatusNotFound, msgNotFound))
		}
		h.log.Error().Err(err).Str("file", name).Str("request_id", requestID(c)).Msg("PDF download failed")
		return c.Status(fiber.StatusInternalServerError).JSON(internalError(msgDownloadFailure))
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileName))
	return c.Status(fiber.StatusOK).Send(doc.Data)
}

func failure(code int, msg string) dto.APIResponse {
	return dto.APIResponse{Status: dto.StatusFailure, StatusCode: code, Message: msg}
}

func internalError(msg string) dto.APIResponse {
	return dto.APIResponse{Status: dto.StatusError, StatusCode: fiber.StatusInternalServerError, Message: msg}
}

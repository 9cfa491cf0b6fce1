package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"

	"github.com/sushnag22/pdf-generator/internal/application/dto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewApp builds the fiber application with the JSON codec, timeouts and error handler
// shared by the server and the tests.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	return app
}

// ErrorHandler renders errors that escaped a handler (panics, unknown routes) as the
// JSON envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	status := dto.StatusFailure
	msg := err.Error()
	if code >= fiber.StatusInternalServerError {
		status = dto.StatusError
		msg = "Internal server error"
	}
	return c.Status(code).JSON(dto.APIResponse{Status: status, StatusCode: code, Message: msg})
}

// Package api defines the response envelope shared by every endpoint and the
// boundary translation of errors into it.
package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/h-wallet/h_wallet/internal/apierr"
)

// Envelope is the uniform response shape for success and failure alike.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Respond writes a success envelope with the given status.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{Success: true, Message: message, Data: data})
}

// genericMessage is returned for unexpected failures so internal details
// never reach the response body.
const genericMessage = "something went wrong, please try again later"

// ErrorHandler translates errors escaping a handler into the envelope.
// Typed business errors keep their kind's status and message; everything
// else is logged and surfaced as a 500 with a generic message.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var be *apierr.Error
		if errors.As(err, &be) {
			return c.Status(be.Status()).JSON(Envelope{Success: false, Message: be.Message})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(Envelope{Success: false, Message: fe.Message})
		}

		logger.Error("unexpected failure",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(Envelope{Success: false, Message: genericMessage})
	}
}

package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-chatapp-be/internal/constant"
	"ai-chatapp-be/internal/service"
	"ai-chatapp-be/pkg/llm"
)

// ErrorHandler maps errors escaping controllers to the standard envelope.
// Generation backend failures become 503 with the fixed user-facing messages.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, llm.ErrBackendUnreachable):
		code = fiber.StatusServiceUnavailable
		message = constant.OllamaConnectionErrorMessage
	case errors.Is(err, llm.ErrNoModelsInstalled):
		code = fiber.StatusServiceUnavailable
		message = constant.OllamaNoModelsMessage
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrAgentNotFound),
		errors.Is(err, service.ErrMessageNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, service.ErrBadCredentials):
		code = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAgentNameTaken):
		code = fiber.StatusBadRequest
	}

	return ctx.Status(code).JSON(ErrorResponse(code, message))
}

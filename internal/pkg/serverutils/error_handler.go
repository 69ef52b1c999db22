package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

func SuccessResponse(message string, data interface{}) *Response {
	return &Response{Message: message, Data: data}
}

func statusForKind(kind ErrorKind) int {
	switch kind {
	case KindInvalidInput:
		return fiber.StatusBadRequest
	case KindExtractionFailed:
		return fiber.StatusUnprocessableEntity
	case KindNotFound:
		return fiber.StatusNotFound
	case KindNoBackendAvailable:
		return fiber.StatusServiceUnavailable
	case KindUnexpectedBackendError:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware translates typed pipeline errors into HTTP responses.
// Errors without a known kind become 500s with a generic message so provider
// payloads never leak to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(statusForKind(appErr.Kind)).JSON(ErrorResponse{
				Message: appErr.Message,
				Kind:    string(appErr.Kind),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{Message: fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
		})
	}
}

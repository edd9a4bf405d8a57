package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"todolist-be/internal/pkg/apperror"
)

// ErrorHandlerMiddleware translates domain errors into HTTP responses and
// keeps a failing request from taking down its neighbours: panics are
// recovered and answered with a generic 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(500, "Something went wrong. Please try again later."))
			}
		}()

		err = ctx.Next()
		if err == nil {
			return nil
		}

		code, message := classify(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrEmptyText),
		errors.Is(err, apperror.ErrInvalidItemID),
		errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, apperror.ErrInvalidCredentials),
		errors.Is(err, apperror.ErrSessionInvalid):
		return fiber.StatusUnauthorized, "Invalid username or password"
	case errors.Is(err, apperror.ErrTaskNotFound):
		return fiber.StatusNotFound, "Task not found"
	case errors.Is(err, apperror.ErrUsernameTaken),
		errors.Is(err, apperror.ErrTelegramAlreadyLinked):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, apperror.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable, "Service temporarily unavailable. Please try again later."
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return fiberErr.Code, fiberErr.Message
		}
		return fiber.StatusInternalServerError, "Something went wrong. Please try again later."
	}
}

// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"pixfusion-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps application errors that escaped a controller
// into HTTP statuses. Controllers that need a richer payload (402 with
// required/available, 500 with refund state) respond directly and never
// reach this mapping.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var ve *apperror.ValidationError
		if errors.As(err, &ve) {
			return ctx.Status(fiber.StatusBadRequest).JSON(
				ErrorResponseWithDetails(fiber.StatusBadRequest, ve.Message, fiber.Map{"field": ve.Field}))
		}

		var nfe *apperror.NotFoundError
		if errors.As(err, &nfe) {
			return ctx.Status(fiber.StatusNotFound).JSON(
				ErrorResponse(fiber.StatusNotFound, nfe.Error()))
		}

		if errors.Is(err, apperror.ErrAllProvidersExhausted) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(
				ErrorResponse(fiber.StatusServiceUnavailable, "all providers are currently unavailable"))
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
		}

		// StorageError and anything unclassified
		return ctx.Status(fiber.StatusInternalServerError).JSON(
			ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}

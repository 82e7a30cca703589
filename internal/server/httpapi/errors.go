package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/seabattle/internal/common"
	"github.com/gofiber/fiber/v2"
)

// fail maps an error kind to its HTTP status and renders the standard error
// body. Unknown errors are treated as internal.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, common.ErrWrongPassword),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrNotAdmin):
		return fiber.StatusUnauthorized
	case errors.Is(err, common.ErrMaxGames):
		return fiber.StatusTooManyRequests
	case errors.Is(err, common.ErrBadRequest),
		errors.Is(err, common.ErrUserExists),
		errors.Is(err, common.ErrUserDeactivated),
		errors.Is(err, common.ErrIllegalBoardSize),
		errors.Is(err, common.ErrInvalidPlayers),
		errors.Is(err, common.ErrGameNotActive),
		errors.Is(err, common.ErrInvalidGame),
		errors.Is(err, common.ErrVerificationFailure):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

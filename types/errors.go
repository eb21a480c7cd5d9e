package types

import (
	"github.com/gofiber/fiber/v2"

	"container-tracking/apperrors"
)

// StatusForError maps a core failure to the HTTP status the shell presents.
func StatusForError(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindInvalidTransition:
		return fiber.StatusUnprocessableEntity
	case apperrors.KindAlreadyConsumed:
		return fiber.StatusConflict
	case apperrors.KindConcurrencyConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// writeDomainError traduce errores de dominio a respuestas HTTP con dto.ErrorResponse.
func writeDomainError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string, string) {
	var se *domain.StorageError
	switch {
	case errors.As(err, &se) && se.Constraint != "":
		return fiber.StatusUnprocessableEntity, "CONSTRAINT_VIOLATION", "dato rechazado por el almacén: " + se.Constraint
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError, "STORAGE", "error de almacenamiento"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusUnprocessableEntity, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "INVALID_INPUT", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", err.Error()
	}
	return fiber.StatusInternalServerError, "INTERNAL", err.Error()
}

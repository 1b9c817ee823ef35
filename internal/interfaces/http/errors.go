package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/domain"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeValidation     = "VALIDATION"
	CodeInvalidBody    = "INVALID_BODY"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeReconciliation = "RECONCILIATION"
	CodeInternal       = "INTERNAL"
)

// ErrorHandler traduce los errores de dominio a respuestas HTTP:
// validación → 400, no encontrado → 404, conflicto → 409, reconciliación → 500.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := errorResponse(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		}
		return c.Status(status).JSON(body)
	}
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		ve   *domain.ValidationError
		nf   *domain.NotFoundError
		ce   *domain.ConflictError
		re   *domain.ReconciliationError
		fErr *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: "datos inválidos", Violations: ve.Violations}
	case errors.As(err, &nf):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: nf.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.As(err, &ce):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: ce.Error()}
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: err.Error()}
	case errors.As(err, &re):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeReconciliation, Message: re.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: err.Error()}
	case errors.As(err, &fErr):
		return fErr.Code, dto.ErrorResponse{Code: fiberCode(fErr.Code), Message: fErr.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return CodeInvalidBody
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	if status >= fiber.StatusInternalServerError {
		return CodeInternal
	}
	return "HTTP_ERROR"
}

package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
)

// ErrorHandler traduce los errores devueltos por los handlers a dto.ErrorResponse.
// Es el único punto donde un error de dominio se convierte en código HTTP.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		ve *domain.ValidationError
		ce *domain.ConflictError
		up *domain.UpstreamError
		fe *fiber.Error
	)
	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: ve.Message, Field: ve.Field}
	case errors.As(err, &ce):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "CONFLICT", Message: ce.Message}
	case errors.As(err, &up):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM", Message: up.Message, StatusCode: up.StatusCode}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "Invalid input."}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Invalid or expired credentials."}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "You do not have permission to perform this action."}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "Not found."}
	case errors.Is(err, domain.ErrNotConfigured):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "STORAGE_NOT_CONFIGURED", Message: "File storage is not configured."}
	case errors.As(err, &fe):
		return fe.Code, dto.ErrorResponse{Code: statusCode(fe.Code), Message: fe.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "Internal server error."}
}

// statusCode convierte 404 en "NOT_FOUND", 413 en "REQUEST_ENTITY_TOO_LARGE", etc.
func statusCode(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return "HTTP_" + strconv.Itoa(code)
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}

// errInvalidBody cuerpo JSON que no se puede decodificar.
var errInvalidBody = fiber.NewError(fiber.StatusBadRequest, "Invalid request body.")

// parseBody decodifica el JSON de la petición en out.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return nil
}

// paramID lee :id como entero positivo; cualquier otro valor es un recurso inexistente.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

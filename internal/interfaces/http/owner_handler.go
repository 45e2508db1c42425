package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/owner"
)

// OwnerHandler solicitudes de verificación como propietario.
type OwnerHandler struct {
	uc *owner.ApplicationUseCase
}

// NewOwnerHandler construye el handler.
func NewOwnerHandler(uc *owner.ApplicationUseCase) *OwnerHandler {
	return &OwnerHandler{uc: uc}
}

// Apply godoc
// @Summary      Enviar solicitud de propietario
// @Description  Si el usuario ya tiene una solicitud pendiente se devuelve esa (200) sin validar ni escribir.
// @Tags         owner
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitApplicationRequest  true  "datos del negocio, contacto y pruebas"
// @Success      201   {object}  dto.ApplicationResponse
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/owner/apply [post]
func (h *OwnerHandler) Apply(c *fiber.Ctx) error {
	var in dto.SubmitApplicationRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, created, err := h.uc.Submit(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return err
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Historial de solicitudes propias
// @Tags         owner
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ApplicationStatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/owner/application-status [get]
func (h *OwnerHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

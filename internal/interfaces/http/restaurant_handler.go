package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/restaurant"
)

// RestaurantHandler consulta pública de restaurantes y autogestión del propietario.
type RestaurantHandler struct {
	uc *restaurant.RestaurantUseCase
}

// NewRestaurantHandler construye el handler.
func NewRestaurantHandler(uc *restaurant.RestaurantUseCase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

// List godoc
// @Summary      Listar restaurantes activos
// @Tags         restaurants
// @Produce      json
// @Param        search  query  string  false  "texto en nombre, dirección o ciudad"
// @Param        city    query  string  false  "filtro por ciudad"
// @Success      200  {array}  dto.RestaurantPublicResponse
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	var q dto.RestaurantListQuery
	if err := c.QueryParser(&q); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.ListPublic(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle público de un restaurante activo
// @Tags         restaurants
// @Produce      json
// @Param        id   path      int  true  "ID del restaurante"
// @Success      200  {object}  dto.RestaurantPublicResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/{id} [get]
func (h *RestaurantHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetPublic(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Mine godoc
// @Summary      Restaurante del propietario autenticado
// @Tags         restaurants
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RestaurantResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/me [get]
func (h *RestaurantHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.GetMine(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateMine godoc
// @Summary      Actualizar el restaurante propio
// @Tags         restaurants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateRestaurantRequest  true  "campos a modificar"
// @Success      200   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/restaurants/me [patch]
func (h *RestaurantHandler) UpdateMine(c *fiber.Ctx) error {
	var in dto.UpdateRestaurantRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateMine(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddPhoto godoc
// @Summary      Agregar foto al restaurante propio
// @Tags         restaurants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePhotoRequest  true  "image_url, caption, order"
// @Success      201   {object}  dto.RestaurantPhotoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/restaurants/me/photos [post]
func (h *RestaurantHandler) AddPhoto(c *fiber.Ctx) error {
	var in dto.CreatePhotoRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddPhoto(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeletePhoto godoc
// @Summary      Eliminar foto del restaurante propio
// @Tags         restaurants
// @Security     Bearer
// @Param        id   path  int  true  "ID de la foto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurants/me/photos/{id} [delete]
func (h *RestaurantHandler) DeletePhoto(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeletePhoto(c.UserContext(), GetPrincipal(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

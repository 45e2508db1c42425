package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/review"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
)

// reviewRecorder contrato de métricas de decisiones. Lo implementa *metrics.Registry.
type reviewRecorder interface {
	RecordReviewDecision(decision string, ok bool)
}

// AdminHandler revisión de solicitudes de propietario (ADMIN, SUPER_ADMIN).
type AdminHandler struct {
	uc      *review.ReviewUseCase
	pdf     *review.PDFUseCase
	metrics reviewRecorder
}

// NewAdminHandler construye el handler. metrics puede ser nil.
func NewAdminHandler(uc *review.ReviewUseCase, pdf *review.PDFUseCase, metrics reviewRecorder) *AdminHandler {
	return &AdminHandler{uc: uc, pdf: pdf, metrics: metrics}
}

// List godoc
// @Summary      Listar solicitudes (más recientes primero)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ApplicationListItem
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/owner-applications [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Detail godoc
// @Summary      Detalle de una solicitud
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID de la solicitud"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/owner-applications/{id} [get]
func (h *AdminHandler) Detail(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Detail(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Description  En una sola transacción: marca APPROVED, asciende al solicitante a OWNER y crea su restaurante.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true   "ID de la solicitud"
// @Param        body  body  dto.ReviewRequest  false  "review_notes"
// @Success      200   {object}  dto.ApproveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/owner-applications/{id}/approve [patch]
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.ReviewRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Approve(c.UserContext(), GetPrincipal(c), id, in)
	h.record("approve", err)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                true   "ID de la solicitud"
// @Param        body  body  dto.ReviewRequest  false  "review_notes"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/owner-applications/{id}/reject [patch]
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.ReviewRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Reject(c.UserContext(), GetPrincipal(c), id, in)
	h.record("reject", err)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Expediente PDF de una solicitud
// @Tags         admin
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la solicitud"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/owner-applications/{id}/pdf [get]
func (h *AdminHandler) PDF(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	pdfBytes, filename, err := h.pdf.DownloadApplicationPDF(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// record no cuenta peticiones rechazadas por permisos.
func (h *AdminHandler) record(decision string, err error) {
	if h.metrics == nil || errors.Is(err, domain.ErrForbidden) {
		return
	}
	h.metrics.RecordReviewDecision(decision, err == nil)
}

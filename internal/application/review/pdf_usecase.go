package review

import (
	"context"
	"fmt"

	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
)

// PDFUseCase genera el expediente PDF de una solicitud para archivo o auditoría.
type PDFUseCase struct {
	appRepo   repository.OwnerApplicationRepository
	generator ApplicationPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(appRepo repository.OwnerApplicationRepository, generator ApplicationPDFGenerator) *PDFUseCase {
	return &PDFUseCase{appRepo: appRepo, generator: generator}
}

// DownloadApplicationPDF carga la solicitud (en cualquier estado) y genera su PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrForbidden       si el llamador no puede revisar solicitudes.
//   - domain.ErrNotFound        si la solicitud no existe.
func (uc *PDFUseCase) DownloadApplicationPDF(ctx context.Context, p access.Principal, id int64) (pdfBytes []byte, filename string, err error) {
	if !access.Can(p.Role, access.ReviewApplications) {
		return nil, "", domain.ErrForbidden
	}
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener solicitud: %w", err)
	}
	if app == nil {
		return nil, "", domain.ErrNotFound
	}
	pdfBytes, err = uc.generator.Generate(app)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}
	return pdfBytes, fmt.Sprintf("solicitud-%d.pdf", app.ID), nil
}

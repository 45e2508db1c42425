package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurantes-api/internal/application/upload"
)

// uploadRecorder contrato de métricas de subidas. Lo implementa *metrics.Registry.
type uploadRecorder interface {
	RecordUpload(folder string, size int64, ok bool)
}

// UploadHandler recibe archivos multipart y los reenvía al almacenamiento de objetos.
type UploadHandler struct {
	uc      *upload.UploadUseCase
	metrics uploadRecorder
}

// NewUploadHandler construye el handler. metrics puede ser nil.
func NewUploadHandler(uc *upload.UploadUseCase, metrics uploadRecorder) *UploadHandler {
	return &UploadHandler{uc: uc, metrics: metrics}
}

// Upload godoc
// @Summary      Subir archivo (pdf, jpg, jpeg, png, gif, webp; máx. 20MB)
// @Tags         owner
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "archivo"
// @Success      201   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/owner/upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	var f *upload.File
	if fh, err := c.FormFile("file"); err == nil {
		f = &upload.File{
			Filename:    fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Open:        func() (io.ReadCloser, error) { return fh.Open() },
		}
	}

	out, err := h.uc.Upload(c.UserContext(), GetPrincipal(c), f)
	if h.metrics != nil && f != nil {
		if folder := upload.FolderFor(f.Filename); folder != "" {
			h.metrics.RecordUpload(folder, f.Size, err == nil)
		}
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
)

// MaxFileSize tamaño máximo aceptado: 20 MiB.
const MaxFileSize int64 = 20 * 1024 * 1024

var allowedExtensions = map[string]bool{
	"pdf": true, "jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true,
}

// File archivo recibido del cliente. Open solo se invoca si pasa las validaciones.
type File struct {
	Filename    string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// UploadUseCase proxy de subida de archivos al almacenamiento de objetos.
type UploadUseCase struct {
	store ObjectStore
	log   zerolog.Logger
	token func() string
}

// NewUploadUseCase construye el caso de uso.
func NewUploadUseCase(store ObjectStore, log zerolog.Logger) *UploadUseCase {
	return &UploadUseCase{
		store: store,
		log:   log,
		token: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
}

// Upload valida extensión y tamaño, arma la ruta "<ext>/<uuid>_<nombre>" y sube el archivo.
func (uc *UploadUseCase) Upload(ctx context.Context, p access.Principal, f *File) (*dto.UploadResponse, error) {
	if !access.Can(p.Role, access.UploadFiles) {
		return nil, domain.ErrForbidden
	}
	if f == nil || f.Filename == "" || f.Open == nil {
		return nil, domain.NewValidationError("file", "No file provided.")
	}

	name := baseName(f.Filename)
	folder := FolderFor(name)
	if folder == "" {
		return nil, domain.NewValidationError("file", "Allowed types: "+strings.Join(AllowedExtensions(), ", "))
	}
	if f.Size > MaxFileSize {
		return nil, domain.NewValidationError("file", "File too large (max 20MB).")
	}
	if !uc.store.Configured() {
		return nil, fmt.Errorf("%w: almacenamiento de objetos sin URL o service key", domain.ErrNotConfigured)
	}

	objectPath := folder + "/" + uc.token() + "_" + strings.ReplaceAll(name, " ", "_")
	contentType := f.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(name))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	body, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir archivo recibido: %w", err)
	}
	defer body.Close()

	url, err := uc.store.Put(ctx, objectPath, contentType, body, f.Size)
	if err != nil {
		ev := uc.log.Error().Err(err).Str("object_path", objectPath).Int64("user_id", p.UserID)
		var up *domain.UpstreamError
		if errors.As(err, &up) && up.StatusCode != 0 {
			ev = ev.Int("status_code", up.StatusCode)
		}
		ev.Msg("subida al almacenamiento fallida")
		return nil, err
	}
	uc.log.Info().Str("object_path", objectPath).Int64("user_id", p.UserID).Int64("size", f.Size).Msg("archivo subido")
	return &dto.UploadResponse{URL: url}, nil
}

// AllowedExtensions extensiones aceptadas en orden alfabético.
func AllowedExtensions() []string {
	out := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// FolderFor carpeta destino según la extensión (jpeg comparte "jpg"); vacío si no está permitida.
// Los puntos iniciales no cuentan como separador: ".pdf" no tiene extensión.
func FolderFor(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(strings.TrimLeft(filename, ".")), "."))
	if !allowedExtensions[ext] {
		return ""
	}
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}

// baseName descarta cualquier ruta enviada por el cliente (/ o \) y normaliza a NFC.
func baseName(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	return norm.NFC.String(filename)
}

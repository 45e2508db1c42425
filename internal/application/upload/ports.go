package upload

import (
	"context"
	"io"
)

// ObjectStore puerto hacia el almacenamiento de objetos (bucket público).
type ObjectStore interface {
	// Configured informa si hay URL base y credencial; sin ellas no se intenta ninguna llamada.
	Configured() bool
	// Put sube body en objectPath ("<carpeta>/<archivo>") y devuelve la URL pública.
	// Fallos de red y respuestas no-2xx se devuelven como *domain.UpstreamError.
	Put(ctx context.Context, objectPath, contentType string, body io.Reader, size int64) (string, error)
}

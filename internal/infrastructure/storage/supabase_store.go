package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Restaurantes-api/internal/application/upload"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
)

// Verificar en tiempo de compilación que SupabaseStore implementa ObjectStore.
var _ upload.ObjectStore = (*SupabaseStore)(nil)

// SupabaseStore adaptador de ObjectStore sobre la API REST de Supabase Storage.
// Usa net/http de la librería estándar; no requiere el SDK de Supabase.
// La URL devuelta asume que el bucket es público.
type SupabaseStore struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewSupabaseStore construye el adaptador. Con baseURL o serviceKey vacíos Configured() es false.
func NewSupabaseStore(baseURL, serviceKey, bucket string, timeout time.Duration) *SupabaseStore {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &SupabaseStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured informa si hay URL base y service key.
func (s *SupabaseStore) Configured() bool {
	return s.baseURL != "" && s.serviceKey != ""
}

// Put sube el objeto con un único POST, sin reintentos.
func (s *SupabaseStore) Put(ctx context.Context, objectPath, contentType string, body io.Reader, size int64) (string, error) {
	if !s.Configured() {
		return "", domain.ErrNotConfigured
	}
	escaped := escapePath(objectPath)
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, escaped)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, body)
	if err != nil {
		return "", fmt.Errorf("storage: crear HTTP request: %w", err)
	}
	if size > 0 {
		req.ContentLength = size
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{Message: "Error uploading to storage", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Message: "Upload to storage failed."}
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, escaped), nil
}

// escapePath escapa cada segmento de la ruta del objeto, conservando las "/".
func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

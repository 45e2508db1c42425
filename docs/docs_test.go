package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Restaurantes-api/docs"
)

func TestSwagger_RegistraTodasLasRutas(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	for path, method := range map[string]string{
		"/api/auth/login":                            "post",
		"/api/owner/apply":                           "post",
		"/api/owner/upload":                          "post",
		"/api/admin/owner-applications/{id}/approve": "patch",
		"/api/admin/owner-applications/{id}/pdf":     "get",
		"/api/restaurants/me/photos/{id}":            "delete",
		"/api/superadmin/users/{id}":                 "patch",
	} {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, path)
	}
}

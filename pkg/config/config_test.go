package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurantes-api/pkg/config"
)

func TestLoad_SinDatabaseURL_Falla(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, config.ErrMissingDatabaseURL)
}

func TestLoad_ValoresPorDefectoYListas(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/db")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, ,http://localhost:5173")
	t.Setenv("SUPABASE_URL", "https://ref.supabase.co/")
	t.Setenv("JWT_ACCESS_TTL", "3600")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, "https://ref.supabase.co", cfg.Storage.BaseURL, "se recorta la barra final")
	assert.Equal(t, "media", cfg.Storage.Bucket)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.False(t, cfg.Storage.Configured(), "sin SUPABASE_SERVICE_KEY no está configurado")
}

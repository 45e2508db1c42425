package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Restaurantes-api/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "restaurantes-api-test"
)

func TestGenerateAndParse_Access(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.TokenAccess, 42, "ADMIN", testIssuer, time.Hour)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok, pkgjwt.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestParse_RefreshNoSirveComoAccess(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.TokenRefresh, 7, "USER", testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok, pkgjwt.TokenAccess)
	assert.ErrorIs(t, err, pkgjwt.ErrWrongTokenType)

	claims, err := pkgjwt.Parse(testSecret, tok, pkgjwt.TokenRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.TokenAccess, 1, "USER", testIssuer, -time.Minute)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok, pkgjwt.TokenAccess)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, pkgjwt.TokenAccess, 1, "USER", testIssuer, time.Hour)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok, pkgjwt.TokenAccess)
	assert.Error(t, err)
}

func TestGenerate_Validaciones(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.TokenAccess, 1, "USER", testIssuer, time.Hour)
	assert.Error(t, err)

	_, err = pkgjwt.Generate(testSecret, "session", 1, "USER", testIssuer, time.Hour)
	assert.ErrorIs(t, err, pkgjwt.ErrWrongTokenType)
}

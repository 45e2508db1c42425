package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Restaurantes-api/internal/application/validation"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
)

func TestPassword(t *testing.T) {
	assert.NoError(t, validation.Password("password", "12345678"))
	assert.ErrorIs(t, validation.Password("password", "1234567"), domain.ErrInvalidInput)
	assert.ErrorIs(t, validation.Password("password", ""), domain.ErrInvalidInput)
	// ocho runas aunque sean más de ocho bytes
	assert.NoError(t, validation.Password("password", "ñañañaña"))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, validation.Email("email", "ana@example.com"))
	for _, bad := range []string{"", "ana", "ana@", "Ana <ana@example.com>", "ana@localhost"} {
		err := validation.Email("email", bad)
		var ve *domain.ValidationError
		if assert.ErrorAs(t, err, &ve, bad) {
			assert.Equal(t, "email", ve.Field)
		}
	}
	assert.Equal(t, "Ana@example.com", validation.NormalizeEmail("  Ana@EXAMPLE.com "))
}

func TestHTTPURL(t *testing.T) {
	assert.NoError(t, validation.HTTPURL("google_maps_link", ""))
	assert.NoError(t, validation.HTTPURL("google_maps_link", "https://maps.google.com/?q=1"))
	assert.Error(t, validation.HTTPURL("google_maps_link", "maps.google.com"))
	assert.Error(t, validation.HTTPURL("google_maps_link", "ftp://files.example.com/a"))
	assert.Error(t, validation.HTTPURL("google_maps_link", "https://"))
}

func TestRequired(t *testing.T) {
	assert.NoError(t, validation.Required("city", "Bogotá"))
	assert.Error(t, validation.Required("city", "   "))
}

func TestMaxLengths(t *testing.T) {
	err := validation.MaxLengths(
		validation.Field{Name: "name", Value: "corto", Max: 10},
		validation.Field{Name: "phone", Value: "123456789012345678901", Max: 20},
	)
	var ve *domain.ValidationError
	if assert.ErrorAs(t, err, &ve) {
		assert.Equal(t, "phone", ve.Field)
		assert.Equal(t, "Ensure this field has no more than 20 characters.", ve.Message)
	}
	assert.NoError(t, validation.MaxLength("caption", "Menú", 4))
}

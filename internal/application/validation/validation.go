// Package validation reglas de entrada compartidas por los casos de uso.
// Todas devuelven *domain.ValidationError con el nombre del campo JSON.
package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Restaurantes-api/internal/domain"
)

// MinPasswordLength longitud mínima de contraseña (en caracteres).
const MinPasswordLength = 8

// Required exige que value no quede vacío tras recortar espacios.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "This field is required.")
	}
	return nil
}

// Password exige presencia y longitud mínima.
func Password(field, value string) error {
	if value == "" {
		return domain.NewValidationError(field, "This field is required.")
	}
	if utf8.RuneCountInString(value) < MinPasswordLength {
		return domain.NewValidationError(field, "Ensure this field has at least 8 characters.")
	}
	return nil
}

// NormalizeEmail recorta espacios y pasa a minúsculas el dominio.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}

// Email exige una dirección simple (sin nombre visible) bien formada.
func Email(field, value string) error {
	if value == "" {
		return domain.NewValidationError(field, "This field is required.")
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@"):], ".") {
		return domain.NewValidationError(field, "Enter a valid email address.")
	}
	return nil
}

// HTTPURL acepta vacío; si hay valor debe ser una URL absoluta http(s) con host.
func HTTPURL(field, value string) error {
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.NewValidationError(field, "Enter a valid URL.")
	}
	return nil
}

// MaxLength limita value a max caracteres.
func MaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return domain.NewValidationError(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
	return nil
}

// Field campo a validar en lote con MaxLengths.
type Field struct {
	Name  string
	Value string
	Max   int
}

// MaxLengths aplica MaxLength a cada campo en orden y devuelve el primer fallo.
func MaxLengths(fields ...Field) error {
	for _, f := range fields {
		if err := MaxLength(f.Name, f.Value, f.Max); err != nil {
			return err
		}
	}
	return nil
}

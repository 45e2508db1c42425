package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ErrorResponse cuerpo de error HTTP. Field nombra el campo inválido cuando aplica;
// StatusCode lleva el código devuelto por el almacenamiento externo en errores 502.
type ErrorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// NullableString campo JSON parcial que distingue ausente, null y valor.
// Acepta string o número; el número se conserva con su texto original.
type NullableString struct {
	Set   bool   // el campo vino en el body
	Valid bool   // false cuando vino null
	Value string // texto recibido
}

// UnmarshalJSON implementa json.Unmarshaler.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		n.Valid, n.Value = false, ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n.Valid, n.Value = true, s
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("se esperaba string o número: %w", err)
	}
	n.Valid, n.Value = true, num.String()
	return nil
}

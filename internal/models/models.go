package models

import (
	"bytes"
	"strconv"
	"strings"
)

// Monto is a numeric field as the Bauhaus backend serves it: usually a JSON
// number, sometimes a string, occasionally null. Anything that does not
// parse coerces to zero so downstream sums never see NaN.
type Monto float64

func (m *Monto) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*m = 0
		return nil
	}
	if b[0] == '"' {
		s := strings.TrimSpace(string(b[1 : len(b)-1]))
		if s == "" {
			*m = 0
			return nil
		}
		// Tolerate the comma decimal separator some endpoints emit.
		s = strings.ReplaceAll(s, ",", ".")
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*m = 0
			return nil
		}
		*m = Monto(v)
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = Monto(v)
	return nil
}

func (m Monto) Float() float64 { return float64(m) }

// LoginRequest represents login request data
type LoginRequest struct {
	Usuario  string `json:"usuario" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents login response data
type LoginResponse struct {
	Usuario string `json:"usuario"`
	Rol     string `json:"rol"`
	Token   string `json:"token"`
}

// ErrorResponse represents error response data
type ErrorResponse struct {
	Message string `json:"message"`
}

// TokenValidationResponse represents token validation response
type TokenValidationResponse struct {
	Valid     bool   `json:"valid"`
	Usuario   string `json:"usuario,omitempty"`
	Rol       string `json:"rol,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Usuario is a backend-owned user record. Foreign keys reference the
// Empresa and Rol catalogs and are resolved to names for display.
type Usuario struct {
	ID        int    `json:"id"`
	Usuario   string `json:"usuario"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	EmpresaID int    `json:"empresa_id"`
	RolID     int    `json:"rol_id"`
	Activo    bool   `json:"activo"`
}

type Empresa struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Rol struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Permiso struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// UsuarioDetalle is a Usuario with its foreign keys resolved.
type UsuarioDetalle struct {
	Usuario
	EmpresaNombre string    `json:"empresa_nombre"`
	RolNombre     string    `json:"rol_nombre"`
	Permisos      []Permiso `json:"permisos,omitempty"`
}

// CreateUsuarioRequest represents create user request data
type CreateUsuarioRequest struct {
	Usuario   string `json:"usuario" binding:"required"`
	Nombre    string `json:"nombre" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	EmpresaID int    `json:"empresa_id" binding:"required"`
	RolID     int    `json:"rol_id" binding:"required"`
	Activo    bool   `json:"activo"`
}

// UpdateUsuarioRequest represents update user request data
type UpdateUsuarioRequest struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	EmpresaID int    `json:"empresa_id"`
	RolID     int    `json:"rol_id"`
	Activo    bool   `json:"activo"`
}

// PermisoRequest adds or removes a permission for a user.
type PermisoRequest struct {
	PermisoID int `json:"permiso_id" binding:"required"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

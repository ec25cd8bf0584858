package entity

import "time"

// Roles de usuario.
const (
	RolAdmin    = "ADMIN"
	RolVendedor = "VENDEDOR"
)

// Usuario del sistema. La identidad del actor se pasa explícitamente a cada
// operación de negocio; no hay contexto de seguridad global.
type Usuario struct {
	ID           string
	Username     string
	PasswordHash string
	Nombre       string
	Rol          string // ADMIN | VENDEDOR
	Activo       bool

	FechaCreacion time.Time
}

package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin       = "admin"
	RolAlmacenista = "almacenista"
	RolConsulta    = "consulta"
)

// Usuario del sistema. Las mutaciones de inventario exigen rol admin o almacenista.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Nombre       string
	Rol          string // admin, almacenista, consulta
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

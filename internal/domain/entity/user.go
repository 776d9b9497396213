package entity

import "time"

// Estados de usuario.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User es el propietario de un inventario: todos sus insumos, productos y ventas
// están aislados de los de otros usuarios.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	BusinessName string
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package entity

import "time"

// Roles de usuario del punto de venta.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
)

// User usuario del sistema (login de caja y administración).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | cajero
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

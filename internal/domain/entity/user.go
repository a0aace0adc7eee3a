package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleShopper = "shopper"
)

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleShopper
}

// User representa una cuenta del sistema. Solo se crea vía registro.
type User struct {
	ID           string
	Email        string // único, clave de login
	PasswordHash string // bcrypt hash, nunca plano
	Role         string // admin, shopper
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

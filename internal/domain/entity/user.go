package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca se serializa
	Role         string // Admin, Staff
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

package models

import (
	"time"
)

// Roles disponibles para los usuarios
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // El "-" evita que se serialice en JSON
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSummary es la vista pública de un usuario, sin el hash de contraseña.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Summary devuelve la vista pública del usuario.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}

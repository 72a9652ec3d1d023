package users

import "time"

// Role define el rol de la cuenta.
// @Enum user, admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User es la cuenta que solicita (o administra) adopciones.
// PasswordHash nunca sale por la API.
type User struct {
	ID string

	Email        string // único, normalizado a minúsculas
	PasswordHash string
	Name         string
	Role         Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

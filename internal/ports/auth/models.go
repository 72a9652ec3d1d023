package auth

// Role define los roles soportados.
// @Enum user, admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Claims representa la identidad extraída del token.
type Claims struct {
	UserID string
	Role   Role
}

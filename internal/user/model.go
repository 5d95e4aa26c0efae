package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendedor Role = "vendedor"
)

// Profile is the local usuarios row linked to an identity provider account.
type Profile struct {
	AuthUserID string
	Nombre     string
	Email      string
	Role       Role
	Activo     bool
	CreatedAt  time.Time
}

// Identity is the caller as seen by route handlers.
type Identity struct {
	AuthUserID string
	Email      string
	Nombre     string
	Role       Role
	Active     bool
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

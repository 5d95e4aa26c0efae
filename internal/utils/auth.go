package utils

const (
	UserIDKey     contextKey = "user_id"
	UserEmailKey  contextKey = "email"
	UserNameKey   contextKey = "name"
	UserRoleKey   contextKey = "role"
	UserActiveKey contextKey = "active"
)

const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

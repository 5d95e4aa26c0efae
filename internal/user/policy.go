package user

import "shogun-be/internal/utils"

// ResolveIdentity turns verified claims plus the optional local profile into
// the caller identity. Every fallback for unknown accounts lives here.
func ResolveIdentity(claims *CustomClaims, profile *Profile) Identity {
	id := Identity{
		AuthUserID: claims.Subject,
		Email:      claims.Email,
	}

	if profile == nil {
		// validly signed but never provisioned locally: active vendedor
		id.Role = RoleVendedor
		id.Active = true
		id.Nombre = utils.EmailLocalPart(claims.Email)
		return id
	}

	id.Role = profile.Role
	if id.Role != RoleAdmin {
		id.Role = RoleVendedor
	}
	id.Active = profile.Activo
	id.Nombre = profile.Nombre
	if id.Nombre == "" {
		id.Nombre = utils.EmailLocalPart(claims.Email)
	}
	if profile.Email != "" {
		id.Email = profile.Email
	}
	return id
}

package user

import "shogun-be/internal/apperr"

var (
	ErrProfileNotFound = apperr.NotFound("perfil no encontrado")
	ErrInvalidToken    = apperr.Unauthenticated("token inválido")
	ErrNoVerifierKey   = apperr.Internal("no JWT_SECRET or JWT_PUBLIC_KEY configured", nil)
)

package customization

import "shogun-be/internal/apperr"

var (
	ErrCustomizationNotFound = apperr.NotFound("Personalización no encontrada")
	ErrCodeExists            = apperr.Conflict("Ya existe una personalización con ese código")
)

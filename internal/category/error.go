package category

import "shogun-be/internal/apperr"

var (
	ErrCategoryNotFound = apperr.NotFound("Categoría no encontrada")
	ErrCategoryExists   = apperr.Conflict("Ya existe una categoría con ese nombre")
)

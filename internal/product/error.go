package product

import "shogun-be/internal/apperr"

var (
	ErrProductNotFound = apperr.NotFound("Producto no encontrado")
	ErrSKUExists       = apperr.Conflict("Ya existe un producto con ese SKU")
	ErrSKUEmpty        = apperr.Validation("SKU vacío")
)

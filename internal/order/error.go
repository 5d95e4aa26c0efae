package order

import "shogun-be/internal/apperr"

var (
	ErrOrderNotFound    = apperr.NotFound("Pedido no encontrado")
	ErrProductNotFound  = apperr.NotFound("Producto no encontrado")
	ErrInvalidLeadTime  = apperr.Validation("Formato de tiempo_estimado inválido")
	ErrEmptySearchQuery = apperr.Validation(`Parametro "q" requerido`)
	ErrInvalidDateRange = apperr.Validation("Formato de fecha inválido")
)

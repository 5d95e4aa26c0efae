package comment

import "shogun-be/internal/apperr"

var (
	ErrOrderNotFound   = apperr.NotFound("Pedido no encontrado")
	ErrCommentNotFound = apperr.NotFound("Comentario no encontrado")
)

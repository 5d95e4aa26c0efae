package attachment

import (
	"fmt"

	"shogun-be/internal/apperr"
)

var (
	ErrOrderNotFound      = apperr.NotFound("Pedido no encontrado")
	ErrAttachmentNotFound = apperr.NotFound("Adjunto no encontrado")
	ErrEmptyFile          = apperr.Validation("Archivo vacío")
	ErrFileRequired       = apperr.Validation("Campo requerido: archivo")
)

// FileTooLarge is the rejection for uploads over the configured limit.
func FileTooLarge(maxMB int64) error {
	return apperr.Validation(fmt.Sprintf("El archivo excede el tamaño máximo de %d MB", maxMB))
}

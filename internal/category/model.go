package category

import "time"

type Category struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateInput struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
}

type UpdateInput struct {
	Nombre      *string `json:"nombre" validate:"omitnil,min=1"`
	Descripcion *string `json:"descripcion"`
}

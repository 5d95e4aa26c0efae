package comment

import "time"

type Comment struct {
	ID          string    `json:"id"`
	PedidoID    string    `json:"pedido_id"`
	AutorEmail  string    `json:"autor_email"`
	AutorNombre string    `json:"autor_nombre"`
	Texto       string    `json:"texto"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateInput struct {
	Texto string `json:"texto" validate:"required,max=5000"`
}

// Author identifies who writes a comment.
type Author struct {
	Email  string
	Nombre string
}

package attachment

import "time"

type Attachment struct {
	ID              string    `json:"id"`
	PedidoID        string    `json:"pedido_id"`
	NombreOriginal  string    `json:"nombre_original"`
	StoragePath     string    `json:"storage_path"`
	TipoMime        string    `json:"tipo_mime"`
	TamanoBytes     int64     `json:"tamano_bytes"`
	SubidoPorEmail  string    `json:"subido_por_email"`
	SubidoPorNombre string    `json:"subido_por_nombre"`
	CreatedAt       time.Time `json:"created_at"`
}

// Upload is a received file, already read into memory.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Uploader struct {
	Email  string
	Nombre string
}

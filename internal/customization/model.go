package customization

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MetodoFijo     = "fijo"
	MetodoPuntadas = "puntadas"
)

// NoneCode is the order form value for "no customization".
const NoneCode = "ninguna"

type Customization struct {
	ID                  string          `json:"id"`
	Codigo              string          `json:"codigo"`
	Tipo                string          `json:"tipo"`
	Descripcion         string          `json:"descripcion"`
	MetodoCalculo       string          `json:"metodo_calculo"`
	Precio              decimal.Decimal `json:"precio"`
	PrecioPorMil        decimal.Decimal `json:"precio_por_mil"`
	TiempoAdicionalDias int             `json:"tiempo_adicional_dias"`
	Activo              bool            `json:"activo"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (c *Customization) IsRateBased() bool {
	return c.MetodoCalculo == MetodoPuntadas
}

// normalize enforces one pricing method per row.
func (c *Customization) normalize() {
	if c.MetodoCalculo == "" {
		c.MetodoCalculo = MetodoFijo
	}
	if c.IsRateBased() {
		c.Precio = decimal.Zero
	}
}

type CreateInput struct {
	Codigo              string           `json:"codigo" validate:"required"`
	Tipo                string           `json:"tipo" validate:"required"`
	Descripcion         string           `json:"descripcion"`
	MetodoCalculo       string           `json:"metodo_calculo" validate:"omitempty,oneof=fijo puntadas"`
	Precio              *decimal.Decimal `json:"precio"`
	PrecioPorMil        *decimal.Decimal `json:"precio_por_mil"`
	TiempoAdicionalDias int              `json:"tiempo_adicional_dias" validate:"gte=0"`
}

type UpdateInput struct {
	Tipo                *string          `json:"tipo" validate:"omitnil,min=1"`
	Descripcion         *string          `json:"descripcion"`
	MetodoCalculo       *string          `json:"metodo_calculo" validate:"omitnil,oneof=fijo puntadas"`
	Precio              *decimal.Decimal `json:"precio"`
	PrecioPorMil        *decimal.Decimal `json:"precio_por_mil"`
	TiempoAdicionalDias *int             `json:"tiempo_adicional_dias" validate:"omitnil,gte=0"`
}

func (in UpdateInput) apply(c *Customization) {
	if in.Tipo != nil {
		c.Tipo = *in.Tipo
	}
	if in.Descripcion != nil {
		c.Descripcion = *in.Descripcion
	}
	if in.MetodoCalculo != nil {
		c.MetodoCalculo = *in.MetodoCalculo
	}
	if in.Precio != nil {
		c.Precio = *in.Precio
	}
	if in.PrecioPorMil != nil {
		c.PrecioPorMil = *in.PrecioPorMil
	}
	if in.TiempoAdicionalDias != nil {
		c.TiempoAdicionalDias = *in.TiempoAdicionalDias
	}
}

package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                   string          `json:"id"`
	SKU                  string          `json:"sku"`
	Nombre               string          `json:"nombre"`
	Categoria            string          `json:"categoria"`
	PrecioBase           decimal.Decimal `json:"precio_base"`
	CostoMaterial        decimal.Decimal `json:"costo_material"`
	CostoManoObra        decimal.Decimal `json:"costo_mano_obra"`
	CostoTotal           decimal.Decimal `json:"costo_total"`
	MargenDinero         decimal.Decimal `json:"margen_dinero"`
	MargenPorcentaje     decimal.Decimal `json:"margen_porcentaje"`
	TiempoProduccionDias int             `json:"tiempo_produccion_dias"`
	Activo               bool            `json:"activo"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

var hundred = decimal.NewFromInt(100)

// Derive recomputes total cost and margins from price and cost fields.
func (p *Product) Derive() {
	p.CostoTotal = p.CostoMaterial.Add(p.CostoManoObra)
	p.MargenDinero = p.PrecioBase.Sub(p.CostoTotal)
	if p.PrecioBase.IsPositive() {
		p.MargenPorcentaje = p.MargenDinero.Div(p.PrecioBase).Mul(hundred).Round(2)
	} else {
		p.MargenPorcentaje = decimal.Zero
	}
}

type CreateInput struct {
	SKU                  string           `json:"sku" validate:"required"`
	Nombre               string           `json:"nombre" validate:"required"`
	Categoria            string           `json:"categoria" validate:"required"`
	PrecioBase           *decimal.Decimal `json:"precio_base"`
	CostoMaterial        *decimal.Decimal `json:"costo_material"`
	CostoManoObra        *decimal.Decimal `json:"costo_mano_obra"`
	TiempoProduccionDias int              `json:"tiempo_produccion_dias" validate:"gte=0"`
}

// UpdateInput is a patch; nil fields keep their stored value.
type UpdateInput struct {
	SKU                  *string          `json:"sku" validate:"omitnil,min=1"`
	Nombre               *string          `json:"nombre" validate:"omitnil,min=1"`
	Categoria            *string          `json:"categoria" validate:"omitnil,min=1"`
	PrecioBase           *decimal.Decimal `json:"precio_base"`
	CostoMaterial        *decimal.Decimal `json:"costo_material"`
	CostoManoObra        *decimal.Decimal `json:"costo_mano_obra"`
	TiempoProduccionDias *int             `json:"tiempo_produccion_dias" validate:"omitnil,gte=0"`
}

func (in UpdateInput) apply(p *Product) {
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Nombre != nil {
		p.Nombre = *in.Nombre
	}
	if in.Categoria != nil {
		p.Categoria = *in.Categoria
	}
	if in.PrecioBase != nil {
		p.PrecioBase = *in.PrecioBase
	}
	if in.CostoMaterial != nil {
		p.CostoMaterial = *in.CostoMaterial
	}
	if in.CostoManoObra != nil {
		p.CostoManoObra = *in.CostoManoObra
	}
	if in.TiempoProduccionDias != nil {
		p.TiempoProduccionDias = *in.TiempoProduccionDias
	}
}

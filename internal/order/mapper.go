package order

import (
	"time"

	"shogun-be/internal/utils"

	"github.com/shopspring/decimal"
)

// Response is the JSON shape of an order.
type Response struct {
	ID                    string          `json:"id"`
	Cliente               string          `json:"cliente"`
	Telefono              string          `json:"telefono"`
	Email                 string          `json:"email"`
	Direccion             string          `json:"direccion"`
	SKU                   string          `json:"sku"`
	Producto              string          `json:"producto"`
	Talla                 string          `json:"talla"`
	Color                 string          `json:"color"`
	PersonalizacionCodigo *string         `json:"personalizacion_codigo"`
	Personalizacion       string          `json:"personalizacion"`
	Puntadas              int             `json:"puntadas"`
	FechaPago             string          `json:"fecha_pago"`
	FechaCompromiso       *string         `json:"fecha_compromiso"`
	FechaEntregaReal      *string         `json:"fecha_entrega_real"`
	DiasProduccion        *int            `json:"dias_produccion"`
	DiasRetraso           *int            `json:"dias_retraso"`
	PrecioProducto        decimal.Decimal `json:"precio_producto"`
	PrecioPerson          decimal.Decimal `json:"precio_person"`
	PrecioEnvio           decimal.Decimal `json:"precio_envio"`
	PrecioTotal           decimal.Decimal `json:"precio_total"`
	CostoProducto         decimal.Decimal `json:"costo_producto"`
	CostoPerson           decimal.Decimal `json:"costo_person"`
	CostoManoObra         decimal.Decimal `json:"costo_mano_obra"`
	CostosAdicionales     decimal.Decimal `json:"costos_adicionales"`
	CostoTotal            decimal.Decimal `json:"costo_total"`
	Ganancia              decimal.Decimal `json:"ganancia"`
	Canal                 string          `json:"canal"`
	Banco                 string          `json:"banco"`
	EstatusProduccion     string          `json:"estatus_produccion"`
	EstatusPago           string          `json:"estatus_pago"`
	CreatedAt             time.Time       `json:"created_at"`
}

func ToResponse(o *Order) *Response {
	if o == nil {
		return nil
	}

	return &Response{
		ID:                    o.ID,
		Cliente:               o.ClienteNombre,
		Telefono:              o.ClienteTelefono,
		Email:                 o.ClienteEmail,
		Direccion:             o.DireccionEnvio,
		SKU:                   o.ProductoSKU,
		Producto:              o.ProductoNombre,
		Talla:                 o.Talla,
		Color:                 o.Color,
		PersonalizacionCodigo: o.PersonalizacionCodigo,
		Personalizacion:       o.PersonalizacionDetalles,
		Puntadas:              o.Puntadas,
		FechaPago:             utils.FormatDMY(o.FechaPago),
		FechaCompromiso:       utils.FormatDMYPtr(o.FechaCompromiso),
		FechaEntregaReal:      utils.FormatDMYPtr(o.FechaEntregaReal),
		DiasProduccion:        o.DiasProduccion,
		DiasRetraso:           o.DiasRetraso,
		PrecioProducto:        o.PrecioProducto,
		PrecioPerson:          o.PrecioPersonalizacion,
		PrecioEnvio:           o.PrecioEnvio,
		PrecioTotal:           o.PrecioTotal,
		CostoProducto:         o.CostoProducto,
		CostoPerson:           o.CostoPersonalizacion,
		CostoManoObra:         o.CostoManoObra,
		CostosAdicionales:     o.CostosAdicionales,
		CostoTotal:            o.CostoTotal,
		Ganancia:              o.Ganancia,
		Canal:                 string(o.Canal),
		Banco:                 string(o.MetodoPago),
		EstatusProduccion:     string(o.EstadoProduccion),
		EstatusPago:           string(o.EstadoPago),
		CreatedAt:             o.CreatedAt,
	}
}

func ToResponses(orders []*Order) []*Response {
	out := make([]*Response, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToResponse(o))
	}
	return out
}

package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"shogun-be/internal/utils"

	"github.com/shopspring/decimal"
)

type ProductionStatus string

const (
	StatusEnProduccion    ProductionStatus = "En Producción"
	StatusListoEnvio      ProductionStatus = "Listo para Envío"
	StatusEnCamino        ProductionStatus = "En Camino"
	StatusEntregado       ProductionStatus = "Entregado"
	StatusBloqueadoSinDir ProductionStatus = "Bloqueado - Sin Dirección"
	StatusCancelado       ProductionStatus = "Cancelado"
)

// IsTerminal reports whether no further production work is expected.
func (s ProductionStatus) IsTerminal() bool {
	return s == StatusEntregado || s == StatusCancelado
}

type PaymentStatus string

const (
	PagoRecibido    PaymentStatus = "Recibido"
	PagoPendiente   PaymentStatus = "Pendiente"
	PagoParcial     PaymentStatus = "Parcial"
	PagoReembolsado PaymentStatus = "Reembolsado"
)

type PaymentMethod string

const (
	BancoPopular       PaymentMethod = "Popular"
	BancoBanreservas   PaymentMethod = "Banreservas"
	BancoBHD           PaymentMethod = "BHD"
	BancoEfectivo      PaymentMethod = "Efectivo"
	BancoTransferencia PaymentMethod = "Transferencia"
)

type Channel string

const (
	CanalWhatsApp  Channel = "WhatsApp"
	CanalInstagram Channel = "Instagram"
	CanalFacebook  Channel = "Facebook"
	CanalReferido  Channel = "Referido"
	CanalTienda    Channel = "Tienda"
)

var (
	productionStatuses = []ProductionStatus{
		StatusEnProduccion, StatusListoEnvio, StatusEnCamino, StatusEntregado, StatusBloqueadoSinDir, StatusCancelado,
	}
	paymentStatuses = []PaymentStatus{PagoRecibido, PagoPendiente, PagoParcial, PagoReembolsado}
	paymentMethods  = []PaymentMethod{BancoPopular, BancoBanreservas, BancoBHD, BancoEfectivo, BancoTransferencia}
	channels        = []Channel{CanalWhatsApp, CanalInstagram, CanalFacebook, CanalReferido, CanalTienda}
)

// Breakdown holds the stored price and cost components of an order.
type Breakdown struct {
	PrecioProducto        decimal.Decimal
	PrecioPersonalizacion decimal.Decimal
	PrecioEnvio           decimal.Decimal
	CostoProducto         decimal.Decimal
	CostoPersonalizacion  decimal.Decimal
	CostoManoObra         decimal.Decimal
	CostosAdicionales     decimal.Decimal
}

type Totals struct {
	PrecioTotal decimal.Decimal
	CostoTotal  decimal.Decimal
	Ganancia    decimal.Decimal
}

// Rounded returns b at the two-decimal scale the pedidos columns store.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		PrecioProducto:        b.PrecioProducto.Round(2),
		PrecioPersonalizacion: b.PrecioPersonalizacion.Round(2),
		PrecioEnvio:           b.PrecioEnvio.Round(2),
		CostoProducto:         b.CostoProducto.Round(2),
		CostoPersonalizacion:  b.CostoPersonalizacion.Round(2),
		CostoManoObra:         b.CostoManoObra.Round(2),
		CostosAdicionales:     b.CostosAdicionales.Round(2),
	}
}

// Totals mirrors the generated columns on pedidos.
func (b Breakdown) Totals() Totals {
	precio := b.PrecioProducto.Add(b.PrecioPersonalizacion).Add(b.PrecioEnvio)
	costo := b.CostoProducto.Add(b.CostoPersonalizacion).Add(b.CostoManoObra).Add(b.CostosAdicionales)
	return Totals{
		PrecioTotal: precio,
		CostoTotal:  costo,
		Ganancia:    precio.Sub(costo),
	}
}

type Order struct {
	ID string

	ClienteNombre   string
	ClienteTelefono string
	ClienteEmail    string
	DireccionEnvio  string

	ProductoID     string
	ProductoSKU    string
	ProductoNombre string
	Talla          string
	Color          string

	PersonalizacionCodigo   *string
	PersonalizacionDetalles string
	Puntadas                int

	FechaPago        time.Time
	FechaCompromiso  *time.Time
	FechaEntregaReal *time.Time

	Breakdown
	Totals

	Canal            Channel
	MetodoPago       PaymentMethod
	EstadoProduccion ProductionStatus
	EstadoPago       PaymentStatus

	CreatedAt time.Time

	// derived on read
	DiasProduccion *int
	DiasRetraso    *int
}

// DeriveDays fills DiasProduccion and DiasRetraso as of today. Days late are
// unknown without a committed date and never negative.
func (o *Order) DeriveDays(today time.Time) {
	end := today
	if o.FechaEntregaReal != nil {
		end = *o.FechaEntregaReal
	}

	if !o.FechaPago.IsZero() {
		d := utils.DaysBetween(o.FechaPago, end)
		o.DiasProduccion = &d
	}

	o.DiasRetraso = nil
	if o.FechaCompromiso != nil {
		late := utils.DaysBetween(*o.FechaCompromiso, end)
		if late < 0 {
			late = 0
		}
		o.DiasRetraso = &late
	}
}

// LeadTime accepts "7 days", "10 dias", "5" or a bare JSON number.
type LeadTime string

func (l *LeadTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = LeadTime(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("tiempo_estimado: %w", err)
	}
	*l = LeadTime(n.String())
	return nil
}

type CreateInput struct {
	ProductoSKU    string `json:"producto_sku" validate:"required"`
	ProductoNombre string `json:"producto_nombre"`
	Talla          string `json:"talla" validate:"max=10"`
	Color          string `json:"color"`

	NombreCliente string `json:"nombre_cliente" validate:"required"`
	Telefono      string `json:"telefono" validate:"required"`
	Email         string `json:"email"`
	Direccion     string `json:"direccion"`

	PersonalizacionTipo     string           `json:"personalizacion_tipo"`
	PersonalizacionDetalles string           `json:"personalizacion_detalles"`
	Puntadas                int              `json:"puntadas" validate:"gte=0"`
	PrecioPorMil            *decimal.Decimal `json:"precio_por_mil"`

	PrecioVenta       *decimal.Decimal `json:"precio_venta"`
	CostoEnvio        *decimal.Decimal `json:"costo_envio"`
	CostosAdicionales *decimal.Decimal `json:"costos_adicionales"`
	TiempoEstimado    LeadTime         `json:"tiempo_estimado"`

	Canal       string `json:"canal" validate:"required,oneof=WhatsApp Instagram Facebook Referido Tienda"`
	Banco       string `json:"banco" validate:"required,oneof=Popular Banreservas BHD Efectivo Transferencia"`
	EstatusPago string `json:"estatus_pago" validate:"required,oneof=Recibido Pendiente Parcial Reembolsado"`
}

// PricingDefaults are the configured fallbacks used by Quote.
type PricingDefaults struct {
	Shipping decimal.Decimal
	LeadDays int
}

type CreateResult struct {
	ID              string
	FechaCompromiso time.Time
	PrecioTotal     decimal.Decimal
	Ganancia        decimal.Decimal
}

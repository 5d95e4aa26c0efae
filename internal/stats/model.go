package stats

import "github.com/shopspring/decimal"

const (
	ReasonNoAddress = "Sin dirección de envío"
	ReasonReview    = "Revisión pendiente"
)

// PendingOrder is an order that needs attention.
type PendingOrder struct {
	ID                string          `json:"id"`
	Cliente           string          `json:"cliente"`
	Producto          string          `json:"producto"`
	PrecioTotal       decimal.Decimal `json:"precio_total"`
	EstatusProduccion string          `json:"estatus_produccion"`
	DiasRetraso       *int            `json:"dias_retraso"`
	FechaCompromiso   *string         `json:"fecha_compromiso"`
	Direccion         string          `json:"direccion"`
	MotivoPendiente   string          `json:"motivo_pendiente"`
}

type Summary struct {
	TotalPedidos      int             `json:"total_pedidos"`
	VentasTotales     decimal.Decimal `json:"ventas_totales"`
	GananciaNeta      decimal.Decimal `json:"ganancia_neta"`
	MargenPromedio    decimal.Decimal `json:"margen_promedio"`
	PedidosPendientes int             `json:"pedidos_pendientes"`
	PedidosEntregados int             `json:"pedidos_entregados"`
}

type ChannelSales struct {
	Canal  string          `json:"canal"`
	Total  int             `json:"total"`
	Ventas decimal.Decimal `json:"ventas"`
}

type StatusSales struct {
	Estado string          `json:"estado"`
	Total  int             `json:"total"`
	Ventas decimal.Decimal `json:"ventas"`
}

type CustomerTier string

const (
	TierNuevo      CustomerTier = "Nuevo"
	TierRecurrente CustomerTier = "Recurrente"
	TierFrecuente  CustomerTier = "Frecuente"
)

func tierFor(orders int) CustomerTier {
	switch {
	case orders >= 5:
		return TierFrecuente
	case orders >= 2:
		return TierRecurrente
	default:
		return TierNuevo
	}
}

type Customer struct {
	Nombre       string          `json:"nombre"`
	Telefono     string          `json:"telefono"`
	Email        string          `json:"email"`
	Pedidos      int             `json:"pedidos"`
	TotalGastado decimal.Decimal `json:"total_gastado"`
	UltimoPedido string          `json:"ultimo_pedido"`
	Tipo         CustomerTier    `json:"tipo"`
}

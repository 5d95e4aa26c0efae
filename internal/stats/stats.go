package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"shogun-be/internal/order"
	"shogun-be/internal/utils"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NeedsAttention reports whether o is blocked on a missing address or is late
// and still open. Days must already be derived.
func NeedsAttention(o *order.Order) bool {
	if o.EstadoProduccion == order.StatusBloqueadoSinDir {
		return true
	}
	return !o.EstadoProduccion.IsTerminal() && o.DiasRetraso != nil && *o.DiasRetraso > 0
}

func pendingReason(o *order.Order) string {
	switch {
	case o.EstadoProduccion == order.StatusBloqueadoSinDir:
		return ReasonNoAddress
	case o.DiasRetraso != nil && *o.DiasRetraso > 0:
		return fmt.Sprintf("%d días de retraso", *o.DiasRetraso)
	default:
		return ReasonReview
	}
}

// Pending lists orders needing attention, most late first. Orders with
// unknown lateness sort last; ties go to the earliest committed date.
func Pending(orders []*order.Order) []PendingOrder {
	picked := make([]*order.Order, 0)
	for _, o := range orders {
		if NeedsAttention(o) {
			picked = append(picked, o)
		}
	}

	sort.SliceStable(picked, func(i, j int) bool {
		a, b := picked[i], picked[j]
		if (a.DiasRetraso == nil) != (b.DiasRetraso == nil) {
			return a.DiasRetraso != nil
		}
		if a.DiasRetraso != nil && *a.DiasRetraso != *b.DiasRetraso {
			return *a.DiasRetraso > *b.DiasRetraso
		}
		return earlier(a.FechaCompromiso, b.FechaCompromiso)
	})

	out := make([]PendingOrder, 0, len(picked))
	for _, o := range picked {
		out = append(out, PendingOrder{
			ID:                o.ID,
			Cliente:           o.ClienteNombre,
			Producto:          o.ProductoNombre,
			PrecioTotal:       o.PrecioTotal,
			EstatusProduccion: string(o.EstadoProduccion),
			DiasRetraso:       o.DiasRetraso,
			FechaCompromiso:   utils.FormatDMYPtr(o.FechaCompromiso),
			Direccion:         o.DireccionEnvio,
			MotivoPendiente:   pendingReason(o),
		})
	}
	return out
}

// earlier orders nil dates last.
func earlier(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a != nil && b == nil
	}
	return a.Before(*b)
}

// Summarize totals the given orders. Money and margin are rounded to cents.
func Summarize(orders []*order.Order) Summary {
	s := Summary{
		VentasTotales:  decimal.Zero,
		GananciaNeta:   decimal.Zero,
		MargenPromedio: decimal.Zero,
	}

	marginSum := decimal.Zero
	priced := 0
	for _, o := range orders {
		s.TotalPedidos++
		s.VentasTotales = s.VentasTotales.Add(o.PrecioTotal)
		s.GananciaNeta = s.GananciaNeta.Add(o.Ganancia)

		if o.PrecioTotal.IsPositive() {
			marginSum = marginSum.Add(o.Ganancia.Div(o.PrecioTotal).Mul(hundred))
			priced++
		}

		if !o.EstadoProduccion.IsTerminal() {
			s.PedidosPendientes++
		}
		if o.EstadoProduccion == order.StatusEntregado {
			s.PedidosEntregados++
		}
	}

	if priced > 0 {
		s.MargenPromedio = marginSum.Div(decimal.NewFromInt(int64(priced)))
	}

	s.VentasTotales = s.VentasTotales.Round(2)
	s.GananciaNeta = s.GananciaNeta.Round(2)
	s.MargenPromedio = s.MargenPromedio.Round(2)
	return s
}

// ByChannel groups sales per channel, highest sales first.
func ByChannel(orders []*order.Order) []ChannelSales {
	idx := map[string]int{}
	out := []ChannelSales{}
	for _, o := range orders {
		key := string(o.Canal)
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, ChannelSales{Canal: key, Ventas: decimal.Zero})
		}
		out[i].Total++
		out[i].Ventas = out[i].Ventas.Add(o.PrecioTotal)
	}

	for i := range out {
		out[i].Ventas = out[i].Ventas.Round(2)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Ventas.Cmp(out[j].Ventas); c != 0 {
			return c > 0
		}
		return out[i].Canal < out[j].Canal
	})
	return out
}

// ByStatus groups orders per production status, largest group first.
func ByStatus(orders []*order.Order) []StatusSales {
	idx := map[string]int{}
	out := []StatusSales{}
	for _, o := range orders {
		key := string(o.EstadoProduccion)
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, StatusSales{Estado: key, Ventas: decimal.Zero})
		}
		out[i].Total++
		out[i].Ventas = out[i].Ventas.Add(o.PrecioTotal)
	}

	for i := range out {
		out[i].Ventas = out[i].Ventas.Round(2)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Estado < out[j].Estado
	})
	return out
}

// Customers rolls orders up per phone number. Name and email come from the
// most recent order that has them.
func Customers(orders []*order.Order) []Customer {
	type acc struct {
		c         Customer
		lastPago  time.Time
		lastSeen  time.Time
		emailSeen time.Time
	}

	byPhone := map[string]*acc{}
	keys := []string{}
	for _, o := range orders {
		phone := strings.TrimSpace(o.ClienteTelefono)
		if phone == "" {
			continue
		}
		a, ok := byPhone[phone]
		if !ok {
			a = &acc{c: Customer{Telefono: phone, TotalGastado: decimal.Zero}}
			byPhone[phone] = a
			keys = append(keys, phone)
		}

		a.c.Pedidos++
		a.c.TotalGastado = a.c.TotalGastado.Add(o.PrecioTotal)

		if a.c.Nombre == "" || o.CreatedAt.After(a.lastSeen) {
			a.c.Nombre = o.ClienteNombre
			a.lastSeen = o.CreatedAt
		}
		if o.ClienteEmail != "" && (a.c.Email == "" || o.CreatedAt.After(a.emailSeen)) {
			a.c.Email = o.ClienteEmail
			a.emailSeen = o.CreatedAt
		}
		if o.FechaPago.After(a.lastPago) {
			a.lastPago = o.FechaPago
		}
	}

	out := make([]Customer, 0, len(keys))
	for _, k := range keys {
		a := byPhone[k]
		a.c.Tipo = tierFor(a.c.Pedidos)
		a.c.TotalGastado = a.c.TotalGastado.Round(2)
		if !a.lastPago.IsZero() {
			a.c.UltimoPedido = utils.FormatDMY(a.lastPago)
		}
		out = append(out, a.c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].TotalGastado.Cmp(out[j].TotalGastado); c != 0 {
			return c > 0
		}
		return out[i].Nombre < out[j].Nombre
	})
	return out
}

package order

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"shogun-be/internal/customization"
	"shogun-be/internal/product"
	"shogun-be/internal/utils"

	"github.com/shopspring/decimal"
)

var (
	customizationCostRatio = decimal.NewFromFloat(0.5)
	thousand               = decimal.NewFromInt(1000)
)

// maxLeadDays bounds caller-supplied lead times to ten years.
const maxLeadDays = 3650

// ParseLeadDays reads the leading integer of values like "7 days" or "10 dias".
func ParseLeadDays(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, ErrInvalidLeadTime
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n > maxLeadDays {
		return 0, ErrInvalidLeadTime
	}
	return n, nil
}

func positive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}

// Quote prices an order for p. c may be nil when no customization applies.
// today is truncated to a calendar date and becomes the payment date.
func Quote(in CreateInput, p *product.Product, c *customization.Customization, defaults PricingDefaults, today time.Time) (*Order, error) {
	var b Breakdown

	if c != nil && !c.IsRateBased() {
		b.PrecioPersonalizacion = c.Precio
		b.CostoPersonalizacion = c.Precio.Mul(customizationCostRatio)
	}

	rate := decimal.Zero
	if positive(in.PrecioPorMil) {
		rate = *in.PrecioPorMil
	} else if c != nil {
		rate = c.PrecioPorMil
	}
	if in.Puntadas > 0 && rate.IsPositive() {
		b.CostoManoObra = decimal.NewFromInt(int64(in.Puntadas)).Div(thousand).Mul(rate)
	}

	b.PrecioProducto = p.PrecioBase
	if positive(in.PrecioVenta) {
		b.PrecioProducto = *in.PrecioVenta
	}

	b.PrecioEnvio = defaults.Shipping
	if in.CostoEnvio != nil {
		b.PrecioEnvio = *in.CostoEnvio
	}

	b.CostoProducto = p.CostoMaterial
	if b.CostoProducto.IsZero() {
		b.CostoProducto = p.CostoTotal
	}

	if in.CostosAdicionales != nil {
		b.CostosAdicionales = *in.CostosAdicionales
	}

	b = b.Rounded()

	leadDays, err := leadDaysFor(in.TiempoEstimado, p, c, defaults.LeadDays)
	if err != nil {
		return nil, err
	}

	fechaPago := utils.TruncateDate(today)
	compromiso := fechaPago.AddDate(0, 0, leadDays)

	nombre := strings.TrimSpace(in.ProductoNombre)
	if nombre == "" {
		nombre = p.Nombre
	}

	o := &Order{
		ClienteNombre:           strings.TrimSpace(in.NombreCliente),
		ClienteTelefono:         strings.TrimSpace(in.Telefono),
		ClienteEmail:            strings.TrimSpace(in.Email),
		DireccionEnvio:          strings.TrimSpace(in.Direccion),
		ProductoID:              p.ID,
		ProductoSKU:             p.SKU,
		ProductoNombre:          nombre,
		Talla:                   in.Talla,
		Color:                   in.Color,
		PersonalizacionDetalles: in.PersonalizacionDetalles,
		Puntadas:                in.Puntadas,
		FechaPago:               fechaPago,
		FechaCompromiso:         &compromiso,
		Breakdown:               b,
		Totals:                  b.Totals(),
		Canal:                   Channel(in.Canal),
		MetodoPago:              PaymentMethod(in.Banco),
		EstadoProduccion:        StatusEnProduccion,
		EstadoPago:              PaymentStatus(in.EstatusPago),
	}
	if c != nil {
		o.PersonalizacionCodigo = utils.StrPtr(c.Codigo)
	}
	if o.DireccionEnvio == "" {
		o.EstadoProduccion = StatusBloqueadoSinDir
	}
	return o, nil
}

func leadDaysFor(requested LeadTime, p *product.Product, c *customization.Customization, fallback int) (int, error) {
	if strings.TrimSpace(string(requested)) != "" {
		return ParseLeadDays(string(requested))
	}
	days := p.TiempoProduccionDias
	if c != nil {
		days += c.TiempoAdicionalDias
	}
	if days <= 0 {
		days = fallback
	}
	return days, nil
}

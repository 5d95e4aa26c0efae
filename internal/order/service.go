package order

import (
	"context"
	"strings"
	"time"

	"shogun-be/internal/apperr"
	"shogun-be/internal/customization"
	"shogun-be/internal/logger"
	"shogun-be/internal/product"
	"shogun-be/internal/utils"

	"go.uber.org/zap"
)

type ProductLookup interface {
	GetBySKU(ctx context.Context, sku string) (*product.Product, error)
}

type CustomizationLookup interface {
	GetByCode(ctx context.Context, codigo string) (*customization.Customization, error)
}

type Service interface {
	CreateOrder(ctx context.Context, in CreateInput) (*CreateResult, error)
	List(ctx context.Context) ([]*Order, error)
	ListByPaymentDate(ctx context.Context, desde, hasta string) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Exists(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, q string) ([]*Order, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (UpdatePlan, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Today() time.Time
}

type service struct {
	repo           Repository
	products       ProductLookup
	customizations CustomizationLookup
	defaults       PricingDefaults
	now            func() time.Time
}

func NewService(repo Repository, products ProductLookup, customizations CustomizationLookup, defaults PricingDefaults) Service {
	return &service{
		repo:           repo,
		products:       products,
		customizations: customizations,
		defaults:       defaults,
		now:            time.Now,
	}
}

func (s *service) Today() time.Time {
	return utils.TruncateDate(s.now())
}

func (s *service) CreateOrder(ctx context.Context, in CreateInput) (*CreateResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("sku", in.ProductoSKU),
	)

	in.ProductoSKU = strings.TrimSpace(in.ProductoSKU)
	in.NombreCliente = strings.TrimSpace(in.NombreCliente)
	in.Telefono = strings.TrimSpace(in.Telefono)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("precio_venta", in.PrecioVenta, false); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("costo_envio", in.CostoEnvio, false); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("costos_adicionales", in.CostosAdicionales, false); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("precio_por_mil", in.PrecioPorMil, false); err != nil {
		return nil, err
	}

	p, err := s.products.GetBySKU(ctx, in.ProductoSKU)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			log.Info("unknown product sku")
			return nil, ErrProductNotFound
		}
		log.Error("failed to resolve product", zap.Error(err))
		return nil, err
	}

	c, err := s.resolveCustomization(ctx, log, in.PersonalizacionTipo)
	if err != nil {
		return nil, err
	}

	o, err := Quote(in, p, c, s.defaults, s.now())
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	return &CreateResult{
		ID:              created.ID,
		FechaCompromiso: *created.FechaCompromiso,
		PrecioTotal:     created.PrecioTotal,
		Ganancia:        created.Ganancia,
	}, nil
}

// resolveCustomization returns nil for no customization. Unknown codes are
// priced as no customization and logged.
func (s *service) resolveCustomization(ctx context.Context, log *zap.Logger, code string) (*customization.Customization, error) {
	code = strings.TrimSpace(code)
	if code == "" || code == customization.NoneCode {
		return nil, nil
	}

	c, err := s.customizations.GetByCode(ctx, code)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			log.Warn("unknown customization code, pricing without customization", zap.String("codigo", code))
			return nil, nil
		}
		log.Error("failed to resolve customization", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *service) withDays(orders []*Order) []*Order {
	today := s.Today()
	for _, o := range orders {
		o.DeriveDays(today)
	}
	return orders
}

func (s *service) List(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withDays(orders), nil
}

// ListByPaymentDate accepts YYYY-MM-DD or DD/MM/YYYY bounds; empty means open.
func (s *service) ListByPaymentDate(ctx context.Context, desde, hasta string) ([]*Order, error) {
	from, err := parseBound(desde)
	if err != nil {
		return nil, err
	}
	to, err := parseBound(hasta)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.ListByPaymentDate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.withDays(orders), nil
}

func parseBound(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := utils.ParseFlexibleDate(s)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	return &t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	o.DeriveDays(s.Today())
	return o, nil
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *service) Search(ctx context.Context, q string) ([]*Order, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptySearchQuery
	}
	orders, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.withDays(orders), nil
}

// Update applies the recognized fields of a patch. The bool is false only
// when the order does not exist.
func (s *service) Update(ctx context.Context, id string, fields map[string]interface{}) (UpdatePlan, bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("order_id", id),
	)

	plan := PlanUpdate(fields)
	for _, o := range plan.Outcomes {
		if o.Kind == OutcomeSkippedInvalid {
			log.Info("field skipped", zap.String("field", o.Field), zap.String("reason", o.Reason))
		}
	}

	if !plan.HasChanges() {
		return plan, true, nil
	}

	found, err := s.repo.Update(ctx, id, plan.Assignments)
	if err != nil {
		return plan, false, err
	}
	return plan, found, nil
}

func (s *service) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

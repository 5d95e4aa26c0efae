package product

import (
	"context"
	"strings"

	"shogun-be/internal/logger"
	"shogun-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, includeInactive bool) ([]*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, in CreateInput) (*Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Product, error)
	SetActive(ctx context.Context, id string, activo bool) (bool, error)
	SKUExists(ctx context.Context, sku, excludeID string) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]*Product, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *service) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, ErrProductNotFound
	}
	return s.repo.GetBySKU(ctx, sku)
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrProductNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("sku", in.SKU),
	)

	in.SKU = strings.TrimSpace(in.SKU)
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Categoria = strings.TrimSpace(in.Categoria)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("precio_base", in.PrecioBase, true); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("costo_material", in.CostoMaterial, true); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("costo_mano_obra", in.CostoManoObra, true); err != nil {
		return nil, err
	}

	exists, err := s.repo.SKUExists(ctx, in.SKU, "")
	if err != nil {
		return nil, err
	}
	if exists {
		log.Warn("create rejected: sku in use")
		return nil, ErrSKUExists
	}

	p := &Product{
		SKU:                  in.SKU,
		Nombre:               in.Nombre,
		Categoria:            in.Categoria,
		PrecioBase:           *in.PrecioBase,
		CostoMaterial:        *in.CostoMaterial,
		CostoManoObra:        *in.CostoManoObra,
		TiempoProduccionDias: in.TiempoProduccionDias,
		Activo:               true,
	}
	p.Derive()

	return s.repo.Create(ctx, p)
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.String("product_id", id),
	)

	if err := utils.RequireText("sku", in.SKU); err != nil {
		return nil, err
	}
	if err := utils.RequireText("nombre", in.Nombre); err != nil {
		return nil, err
	}
	if err := utils.RequireText("categoria", in.Categoria); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("precio_base", in.PrecioBase, false); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("costo_material", in.CostoMaterial, false); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("costo_mano_obra", in.CostoManoObra, false); err != nil {
		return nil, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.SKU != nil {
		sku := *in.SKU
		if sku != current.SKU {
			exists, err := s.repo.SKUExists(ctx, sku, id)
			if err != nil {
				return nil, err
			}
			if exists {
				log.Warn("update rejected: sku in use", zap.String("sku", sku))
				return nil, ErrSKUExists
			}
		}
	}

	in.apply(current)
	current.Derive()

	return s.repo.Update(ctx, current)
}

func (s *service) SetActive(ctx context.Context, id string, activo bool) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	return s.repo.SetActive(ctx, id, activo)
}

func (s *service) SKUExists(ctx context.Context, sku, excludeID string) (bool, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return false, ErrSKUEmpty
	}
	if excludeID != "" {
		if _, err := uuid.Parse(excludeID); err != nil {
			excludeID = ""
		}
	}
	return s.repo.SKUExists(ctx, sku, excludeID)
}

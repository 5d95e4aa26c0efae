package customization

import (
	"context"
	"strings"

	"shogun-be/internal/apperr"
	"shogun-be/internal/logger"
	"shogun-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, includeInactive bool) ([]*Customization, error)
	GetByCode(ctx context.Context, codigo string) (*Customization, error)
	Create(ctx context.Context, in CreateInput) (*Customization, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Customization, error)
	SetActive(ctx context.Context, id string, activo bool) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]*Customization, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *service) GetByCode(ctx context.Context, codigo string) (*Customization, error) {
	return s.repo.GetByCode(ctx, strings.TrimSpace(codigo))
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Customization, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("codigo", in.Codigo),
	)

	in.Codigo = strings.TrimSpace(in.Codigo)
	in.Tipo = strings.TrimSpace(in.Tipo)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	rateBased := in.MetodoCalculo == MetodoPuntadas
	if err := utils.RequireMoney("precio", in.Precio, !rateBased); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("precio_por_mil", in.PrecioPorMil, false); err != nil {
		return nil, err
	}

	c := &Customization{
		Codigo:              in.Codigo,
		Tipo:                in.Tipo,
		Descripcion:         in.Descripcion,
		MetodoCalculo:       in.MetodoCalculo,
		TiempoAdicionalDias: in.TiempoAdicionalDias,
		Activo:              true,
	}
	if in.Precio != nil {
		c.Precio = *in.Precio
	}
	if in.PrecioPorMil != nil {
		c.PrecioPorMil = *in.PrecioPorMil
	}
	c.normalize()

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		log.Warn("create failed", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Customization, error) {
	if err := utils.RequireText("tipo", in.Tipo); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("precio", in.Precio, false); err != nil {
		return nil, err
	}
	if err := utils.RequireMoney("precio_por_mil", in.PrecioPorMil, false); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCustomizationNotFound
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasRateBased := current.IsRateBased()
	in.apply(current)
	current.normalize()

	// a rate-based row stores no price, so leaving it needs one
	if wasRateBased && !current.IsRateBased() && in.Precio == nil {
		return nil, apperr.Validation("Campo requerido: precio")
	}

	return s.repo.Update(ctx, current)
}

func (s *service) SetActive(ctx context.Context, id string, activo bool) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	return s.repo.SetActive(ctx, id, activo)
}

package category

import (
	"context"
	"strings"

	"shogun-be/internal/logger"
	"shogun-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, includeInactive bool, filter string) ([]*Category, error)
	Create(ctx context.Context, in CreateInput) (*Category, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Category, error)
	SetActive(ctx context.Context, id string, activo bool) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, includeInactive bool, filter string) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	categories, err := s.repo.List(ctx, includeInactive, strings.TrimSpace(filter))
	if err != nil {
		log.Error("failed to list categories", zap.Error(err))
		return nil, err
	}

	log.Debug("categories listed", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (*Category, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*Category, error) {
	if in.Nombre != nil {
		n := strings.TrimSpace(*in.Nombre)
		in.Nombre = &n
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrCategoryNotFound
	}
	return s.repo.Update(ctx, id, in)
}

func (s *service) SetActive(ctx context.Context, id string, activo bool) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	return s.repo.SetActive(ctx, id, activo)
}

package comment

import (
	"context"
	"strings"

	"shogun-be/internal/utils"

	"github.com/google/uuid"
)

type Service interface {
	List(ctx context.Context, pedidoID string) ([]*Comment, error)
	Create(ctx context.Context, pedidoID string, author Author, in CreateInput) (*Comment, error)
	Delete(ctx context.Context, pedidoID, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, pedidoID string) ([]*Comment, error) {
	return s.repo.ListByOrder(ctx, pedidoID)
}

func (s *service) Create(ctx context.Context, pedidoID string, author Author, in CreateInput) (*Comment, error) {
	in.Texto = strings.TrimSpace(in.Texto)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &Comment{
		PedidoID:    pedidoID,
		AutorEmail:  author.Email,
		AutorNombre: author.Nombre,
		Texto:       in.Texto,
	})
}

func (s *service) Delete(ctx context.Context, pedidoID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrCommentNotFound
	}
	ok, err := s.repo.Delete(ctx, pedidoID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCommentNotFound
	}
	return nil
}

package user

import (
	"context"
	"errors"

	"shogun-be/internal/logger"

	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(tokenStr string) (*CustomClaims, error)
}

type Service interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

type service struct {
	repo   Repository
	parser TokenParser
}

func NewService(repo Repository, parser TokenParser) Service {
	return &service{repo: repo, parser: parser}
}

// Authenticate verifies token and resolves the caller. Bad tokens return
// ErrInvalidToken; profile lookup failures other than "no row" are returned
// as is so the caller can fail closed.
func (s *service) Authenticate(ctx context.Context, token string) (*Identity, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Authenticate"),
	)

	claims, err := s.parser.Parse(token)
	if err != nil {
		log.Debug("token rejected", zap.Error(err))
		return nil, ErrInvalidToken
	}

	profile, err := s.repo.FindProfile(ctx, claims.Subject)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		log.Error("profile lookup failed", zap.String("sub", claims.Subject), zap.Error(err))
		return nil, err
	}

	id := ResolveIdentity(claims, profile)
	return &id, nil
}

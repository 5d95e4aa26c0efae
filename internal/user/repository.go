package user

import (
	"context"
	"database/sql"
	"errors"

	"shogun-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FindProfile(ctx context.Context, authUserID string) (*Profile, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindProfile(ctx context.Context, authUserID string) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "FindProfile"),
		zap.String("auth_user_id", authUserID),
	)

	query := `
		SELECT rol, activo, nombre, email, created_at
		FROM usuarios
		WHERE auth_user_id = $1
	`

	var (
		p      Profile
		nombre sql.NullString
		email  sql.NullString
		rol    string
	)
	err := r.db.QueryRowContext(ctx, query, authUserID).
		Scan(&rol, &p.Activo, &nombre, &email, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("no local profile")
			return nil, ErrProfileNotFound
		}
		log.Error("failed to scan profile", zap.Error(err))
		return nil, err
	}

	p.AuthUserID = authUserID
	p.Role = Role(rol)
	p.Nombre = nombre.String
	p.Email = email.String
	return &p, nil
}

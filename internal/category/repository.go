package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shogun-be/internal/db"
	"shogun-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, includeInactive bool, filter string) ([]*Category, error)
	Create(ctx context.Context, in CreateInput) (*Category, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Category, error)
	SetActive(ctx context.Context, id string, activo bool) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, includeInactive bool, filter string) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.Bool("include_inactive", includeInactive),
		zap.String("filter", filter),
	)

	query := `
		SELECT c.id, c.nombre, COALESCE(c.descripcion, ''), c.activo, c.created_at
		FROM categorias c
	`

	where := []string{}
	args := []interface{}{}

	if !includeInactive {
		where = append(where, "c.activo = true")
	}
	if filter != "" {
		where = append(where, fmt.Sprintf("c.nombre ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter+"%")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY c.nombre ASC"

	log.Debug("executing query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) Create(ctx context.Context, in CreateInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("nombre", in.Nombre),
	)

	query := `
		INSERT INTO categorias (nombre, descripcion)
		VALUES ($1, $2)
		RETURNING id, nombre, COALESCE(descripcion, ''), activo, created_at
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, in.Nombre, in.Descripcion).
		Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		log.Error("insert failed", zap.Error(err))
		return nil, fmt.Errorf("create category: %w", err)
	}

	log.Info("category created", zap.String("category_id", c.ID))
	return &c, nil
}

func (r *repository) Update(ctx context.Context, id string, in UpdateInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("category_id", id),
	)

	query := `
		UPDATE categorias SET
			nombre = COALESCE($2, nombre),
			descripcion = COALESCE($3, descripcion)
		WHERE id = $1
		RETURNING id, nombre, COALESCE(descripcion, ''), activo, created_at
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, id, in.Nombre, in.Descripcion).
		Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		if db.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		log.Error("update failed", zap.Error(err))
		return nil, fmt.Errorf("update category: %w", err)
	}

	return &c, nil
}

func (r *repository) SetActive(ctx context.Context, id string, activo bool) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE categorias SET activo = $1 WHERE id = $2`, activo, id)
	if err != nil {
		logger.FromCtx(ctx).Error("toggle failed",
			zap.String("layer", "repository"),
			zap.String("category_id", id),
			zap.Error(err),
		)
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

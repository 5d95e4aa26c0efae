package comment

import (
	"context"
	"database/sql"

	"shogun-be/internal/db"
	"shogun-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByOrder(ctx context.Context, pedidoID string) ([]*Comment, error)
	Create(ctx context.Context, c *Comment) (*Comment, error)
	Delete(ctx context.Context, pedidoID, id string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByOrder(ctx context.Context, pedidoID string) ([]*Comment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByOrder"),
		zap.String("order_id", pedidoID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pedido_id, autor_email, autor_nombre, texto, created_at
		FROM comentarios
		WHERE pedido_id = $1
		ORDER BY created_at ASC
	`, pedidoID)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	comments := []*Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PedidoID, &c.AutorEmail, &c.AutorNombre, &c.Texto, &c.CreatedAt); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}
	return comments, nil
}

func (r *repository) Create(ctx context.Context, c *Comment) (*Comment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_id", c.PedidoID),
	)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO comentarios (pedido_id, autor_email, autor_nombre, texto)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, c.PedidoID, c.AutorEmail, c.AutorNombre, c.Texto).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrOrderNotFound
		}
		log.Error("failed to insert comment", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (r *repository) Delete(ctx context.Context, pedidoID, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM comentarios WHERE id = $1 AND pedido_id = $2`, id, pedidoID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to delete comment",
			zap.String("layer", "repository"),
			zap.String("comment_id", id),
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

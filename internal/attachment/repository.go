package attachment

import (
	"context"
	"database/sql"
	"errors"

	"shogun-be/internal/db"
	"shogun-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByOrder(ctx context.Context, pedidoID string) ([]*Attachment, error)
	GetByID(ctx context.Context, pedidoID, id string) (*Attachment, error)
	Create(ctx context.Context, a *Attachment) (*Attachment, error)
	// Delete removes the row and returns its storage path.
	Delete(ctx context.Context, pedidoID, id string) (string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const attachmentColumns = `
	id, pedido_id, nombre_original, storage_path, tipo_mime, tamano_bytes,
	subido_por_email, subido_por_nombre, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttachment(row rowScanner) (*Attachment, error) {
	var a Attachment
	err := row.Scan(
		&a.ID, &a.PedidoID, &a.NombreOriginal, &a.StoragePath, &a.TipoMime, &a.TamanoBytes,
		&a.SubidoPorEmail, &a.SubidoPorNombre, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByOrder(ctx context.Context, pedidoID string) ([]*Attachment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByOrder"),
		zap.String("order_id", pedidoID),
	)

	rows, err := r.db.QueryContext(ctx,
		`SELECT`+attachmentColumns+` FROM adjuntos WHERE pedido_id = $1 ORDER BY created_at DESC`,
		pedidoID,
	)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := []*Attachment{}
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		list = append(list, a)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (r *repository) GetByID(ctx context.Context, pedidoID, id string) (*Attachment, error) {
	a, err := scanAttachment(r.db.QueryRowContext(ctx,
		`SELECT`+attachmentColumns+` FROM adjuntos WHERE id = $1 AND pedido_id = $2`,
		id, pedidoID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAttachmentNotFound
		}
		logger.FromCtx(ctx).Error("failed to get attachment",
			zap.String("layer", "repository"),
			zap.String("attachment_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, a *Attachment) (*Attachment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_id", a.PedidoID),
	)

	created, err := scanAttachment(r.db.QueryRowContext(ctx, `
		INSERT INTO adjuntos (
			pedido_id, nombre_original, storage_path, tipo_mime, tamano_bytes,
			subido_por_email, subido_por_nombre
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+attachmentColumns,
		a.PedidoID, a.NombreOriginal, a.StoragePath, a.TipoMime, a.TamanoBytes,
		a.SubidoPorEmail, a.SubidoPorNombre,
	))
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, ErrOrderNotFound
		}
		log.Error("failed to insert attachment", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *repository) Delete(ctx context.Context, pedidoID, id string) (string, error) {
	var storagePath string
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM adjuntos WHERE id = $1 AND pedido_id = $2 RETURNING storage_path`,
		id, pedidoID,
	).Scan(&storagePath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrAttachmentNotFound
		}
		logger.FromCtx(ctx).Error("failed to delete attachment",
			zap.String("layer", "repository"),
			zap.String("attachment_id", id),
			zap.Error(err),
		)
		return "", err
	}
	return storagePath, nil
}

package customization

import (
	"context"
	"database/sql"
	"errors"

	"shogun-be/internal/db"
	"shogun-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]*Customization, error)
	GetByCode(ctx context.Context, codigo string) (*Customization, error)
	GetByID(ctx context.Context, id string) (*Customization, error)
	Create(ctx context.Context, c *Customization) (*Customization, error)
	Update(ctx context.Context, c *Customization) (*Customization, error)
	SetActive(ctx context.Context, id string, activo bool) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const customizationColumns = `
	id, codigo, tipo, COALESCE(descripcion, ''), metodo_calculo, precio, precio_por_mil,
	tiempo_adicional_dias, activo, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomization(row rowScanner) (*Customization, error) {
	var c Customization
	err := row.Scan(
		&c.ID, &c.Codigo, &c.Tipo, &c.Descripcion, &c.MetodoCalculo, &c.Precio, &c.PrecioPorMil,
		&c.TiempoAdicionalDias, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, includeInactive bool) ([]*Customization, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := `SELECT` + customizationColumns + ` FROM personalizaciones`
	if !includeInactive {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY tipo, codigo`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := []*Customization{}
	for rows.Next() {
		c, err := scanCustomization(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByCode only sees active customizations.
func (r *repository) GetByCode(ctx context.Context, codigo string) (*Customization, error) {
	query := `SELECT` + customizationColumns + ` FROM personalizaciones WHERE codigo = $1 AND activo = true`

	c, err := scanCustomization(r.db.QueryRowContext(ctx, query, codigo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomizationNotFound
		}
		logger.FromCtx(ctx).Error("failed to get customization",
			zap.String("layer", "repository"),
			zap.String("codigo", codigo),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Customization, error) {
	query := `SELECT` + customizationColumns + ` FROM personalizaciones WHERE id = $1`

	c, err := scanCustomization(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomizationNotFound
		}
		logger.FromCtx(ctx).Error("failed to get customization",
			zap.String("layer", "repository"),
			zap.String("customization_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c *Customization) (*Customization, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("codigo", c.Codigo),
	)

	query := `
		INSERT INTO personalizaciones (
			codigo, tipo, descripcion, metodo_calculo, precio, precio_por_mil, tiempo_adicional_dias
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING` + customizationColumns

	created, err := scanCustomization(r.db.QueryRowContext(ctx, query,
		c.Codigo, c.Tipo, c.Descripcion, c.MetodoCalculo, c.Precio, c.PrecioPorMil, c.TiempoAdicionalDias,
	))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrCodeExists
		}
		log.Error("failed to insert customization", zap.Error(err))
		return nil, err
	}

	log.Info("customization created", zap.String("customization_id", created.ID))
	return created, nil
}

func (r *repository) Update(ctx context.Context, c *Customization) (*Customization, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("customization_id", c.ID),
	)

	query := `
		UPDATE personalizaciones SET
			tipo = $2, descripcion = $3, metodo_calculo = $4, precio = $5,
			precio_por_mil = $6, tiempo_adicional_dias = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING` + customizationColumns

	updated, err := scanCustomization(r.db.QueryRowContext(ctx, query,
		c.ID, c.Tipo, c.Descripcion, c.MetodoCalculo, c.Precio, c.PrecioPorMil, c.TiempoAdicionalDias,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomizationNotFound
		}
		log.Error("failed to update customization", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (r *repository) SetActive(ctx context.Context, id string, activo bool) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE personalizaciones SET activo = $1, updated_at = NOW() WHERE id = $2`, activo, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to toggle customization",
			zap.String("layer", "repository"),
			zap.String("customization_id", id),
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

package product

import (
	"context"
	"database/sql"
	"errors"

	"shogun-be/internal/db"
	"shogun-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, includeInactive bool) ([]*Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	SetActive(ctx context.Context, id string, activo bool) (bool, error)
	SKUExists(ctx context.Context, sku, excludeID string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, sku, nombre, categoria, precio_base, costo_material, costo_mano_obra,
	costo_total, margen_dinero, margen_porcentaje, tiempo_produccion_dias, activo,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Nombre, &p.Categoria, &p.PrecioBase, &p.CostoMaterial, &p.CostoManoObra,
		&p.CostoTotal, &p.MargenDinero, &p.MargenPorcentaje, &p.TiempoProduccionDias, &p.Activo,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, includeInactive bool) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.Bool("include_inactive", includeInactive),
	)

	query := `SELECT` + productColumns + ` FROM productos`
	if !includeInactive {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY nombre`

	log.Debug("executing query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return products, nil
}

// GetBySKU only sees active products.
func (r *repository) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetBySKU"),
		zap.String("sku", sku),
	)

	query := `SELECT` + productColumns + ` FROM productos WHERE sku = $1 AND activo = true`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, sku))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		log.Error("failed to get product", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.String("product_id", id),
	)

	query := `SELECT` + productColumns + ` FROM productos WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		log.Error("failed to get product", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("sku", p.SKU),
	)

	query := `
		INSERT INTO productos (
			sku, nombre, categoria, precio_base, costo_material, costo_mano_obra,
			costo_total, margen_dinero, margen_porcentaje, tiempo_produccion_dias
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING` + productColumns

	created, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.SKU, p.Nombre, p.Categoria, p.PrecioBase, p.CostoMaterial, p.CostoManoObra,
		p.CostoTotal, p.MargenDinero, p.MargenPorcentaje, p.TiempoProduccionDias,
	))
	if err != nil {
		if db.IsUniqueViolation(err) {
			log.Warn("duplicate sku")
			return nil, ErrSKUExists
		}
		log.Error("failed to insert product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", created.ID))
	return created, nil
}

func (r *repository) Update(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("product_id", p.ID),
	)

	query := `
		UPDATE productos SET
			sku = $2, nombre = $3, categoria = $4, precio_base = $5,
			costo_material = $6, costo_mano_obra = $7, costo_total = $8,
			margen_dinero = $9, margen_porcentaje = $10, tiempo_produccion_dias = $11,
			updated_at = NOW()
		WHERE id = $1
		RETURNING` + productColumns

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.ID, p.SKU, p.Nombre, p.Categoria, p.PrecioBase,
		p.CostoMaterial, p.CostoManoObra, p.CostoTotal,
		p.MargenDinero, p.MargenPorcentaje, p.TiempoProduccionDias,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		if db.IsUniqueViolation(err) {
			log.Warn("duplicate sku", zap.String("sku", p.SKU))
			return nil, ErrSKUExists
		}
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}

	return updated, nil
}

func (r *repository) SetActive(ctx context.Context, id string, activo bool) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SetActive"),
		zap.String("product_id", id),
		zap.Bool("activo", activo),
	)

	res, err := r.db.ExecContext(ctx,
		`UPDATE productos SET activo = $1, updated_at = NOW() WHERE id = $2`, activo, id)
	if err != nil {
		log.Error("failed to toggle product", zap.Error(err))
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SKUExists checks active and inactive rows, skipping excludeID when set.
func (r *repository) SKUExists(ctx context.Context, sku, excludeID string) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SKUExists"),
		zap.String("sku", sku),
	)

	query := `SELECT EXISTS(SELECT 1 FROM productos WHERE sku = $1)`
	args := []interface{}{sku}
	if excludeID != "" {
		query = `SELECT EXISTS(SELECT 1 FROM productos WHERE sku = $1 AND id <> $2)`
		args = append(args, excludeID)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		log.Error("failed to check sku", zap.Error(err))
		return false, err
	}
	return exists, nil
}

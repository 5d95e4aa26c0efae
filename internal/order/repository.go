package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shogun-be/internal/logger"
	"shogun-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	ListByPaymentDate(ctx context.Context, desde, hasta *time.Time) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Exists(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, q string) ([]*Order, error)
	Update(ctx context.Context, id string, assignments []Assignment) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	numero_pedido, cliente_nombre, cliente_telefono, COALESCE(cliente_email, ''),
	COALESCE(direccion_envio, ''), producto_id, producto_sku, producto_nombre,
	COALESCE(talla, ''), COALESCE(color, ''), personalizacion_codigo,
	COALESCE(personalizacion_detalles, ''), puntadas,
	fecha_pago, fecha_compromiso, fecha_entrega_real,
	precio_producto, precio_personalizacion, precio_envio,
	costo_producto, costo_personalizacion, costo_mano_obra, costos_adicionales,
	precio_total, costo_total, ganancia,
	canal, metodo_pago, estado_produccion, estado_pago, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o           Order
		codigo      sql.NullString
		compromiso  sql.NullTime
		entregaReal sql.NullTime
	)
	err := row.Scan(
		&o.ID, &o.ClienteNombre, &o.ClienteTelefono, &o.ClienteEmail,
		&o.DireccionEnvio, &o.ProductoID, &o.ProductoSKU, &o.ProductoNombre,
		&o.Talla, &o.Color, &codigo,
		&o.PersonalizacionDetalles, &o.Puntadas,
		&o.FechaPago, &compromiso, &entregaReal,
		&o.PrecioProducto, &o.PrecioPersonalizacion, &o.PrecioEnvio,
		&o.CostoProducto, &o.CostoPersonalizacion, &o.CostoManoObra, &o.CostosAdicionales,
		&o.PrecioTotal, &o.CostoTotal, &o.Ganancia,
		&o.Canal, &o.MetodoPago, &o.EstadoProduccion, &o.EstadoPago, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if codigo.Valid {
		o.PersonalizacionCodigo = &codigo.String
	}
	o.FechaPago = localDate(o.FechaPago)
	if compromiso.Valid {
		d := localDate(compromiso.Time)
		o.FechaCompromiso = &d
	}
	if entregaReal.Valid {
		d := localDate(entregaReal.Time)
		o.FechaEntregaReal = &d
	}
	return &o, nil
}

// localDate re-anchors a DATE column value, which drivers return at UTC
// midnight, to midnight in the server's zone.
func localDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dateArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(utils.DateLayoutISO)
}

func (r *repository) queryOrders(ctx context.Context, log *zap.Logger, query string, args ...interface{}) ([]*Order, error) {
	log.Debug("executing query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// Create draws the next order number and inserts the order in one
// transaction. Totals come back from the generated columns.
func (r *repository) Create(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("sku", o.ProductoSKU),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT nextval('pedidos_numero_seq')`).Scan(&seq); err != nil {
		log.Error("failed to allocate order number", zap.Error(err))
		return nil, err
	}
	o.ID = utils.FormatOrderNumber(seq)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO pedidos (
			numero_pedido, cliente_nombre, cliente_telefono, cliente_email, direccion_envio,
			producto_id, producto_sku, producto_nombre, talla, color,
			personalizacion_codigo, personalizacion_detalles, puntadas,
			fecha_pago, fecha_compromiso,
			precio_producto, precio_personalizacion, precio_envio,
			costo_producto, costo_personalizacion, costo_mano_obra, costos_adicionales,
			canal, metodo_pago, estado_produccion, estado_pago
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
		)
		RETURNING precio_total, costo_total, ganancia, created_at
	`,
		o.ID, o.ClienteNombre, o.ClienteTelefono, o.ClienteEmail, o.DireccionEnvio,
		o.ProductoID, o.ProductoSKU, o.ProductoNombre, o.Talla, o.Color,
		o.PersonalizacionCodigo, o.PersonalizacionDetalles, o.Puntadas,
		dateArg(&o.FechaPago), dateArg(o.FechaCompromiso),
		o.PrecioProducto, o.PrecioPersonalizacion, o.PrecioEnvio,
		o.CostoProducto, o.CostoPersonalizacion, o.CostoManoObra, o.CostosAdicionales,
		string(o.Canal), string(o.MetodoPago), string(o.EstadoProduccion), string(o.EstadoPago),
	).Scan(&o.PrecioTotal, &o.CostoTotal, &o.Ganancia, &o.CreatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.String("order_id", o.ID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return nil, err
	}
	committed = true

	log.Info("order created", zap.String("order_id", o.ID))
	return o, nil
}

func (r *repository) List(ctx context.Context) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	query := `SELECT` + orderColumns + ` FROM pedidos ORDER BY created_at DESC`
	return r.queryOrders(ctx, log, query)
}

// ListByPaymentDate filters on fecha_pago, both bounds inclusive and optional.
func (r *repository) ListByPaymentDate(ctx context.Context, desde, hasta *time.Time) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByPaymentDate"),
	)

	query := `SELECT` + orderColumns + ` FROM pedidos`

	where := []string{}
	args := []interface{}{}

	if desde != nil {
		args = append(args, dateArg(desde))
		where = append(where, fmt.Sprintf("fecha_pago >= $%d", len(args)))
	}
	if hasta != nil {
		args = append(args, dateArg(hasta))
		where = append(where, fmt.Sprintf("fecha_pago <= $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return r.queryOrders(ctx, log, query, args...)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetByID"),
		zap.String("order_id", id),
	)

	query := `SELECT` + orderColumns + ` FROM pedidos WHERE numero_pedido = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		log.Error("failed to get order", zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pedidos WHERE numero_pedido = $1)`, id,
	).Scan(&exists)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to check order",
			zap.String("layer", "repository"),
			zap.String("order_id", id),
			zap.Error(err),
		)
		return false, err
	}
	return exists, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repository) Search(ctx context.Context, q string) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Search"),
		zap.String("q", q),
	)

	query := `SELECT` + orderColumns + `
		FROM pedidos
		WHERE cliente_nombre ILIKE $1 OR numero_pedido ILIKE $1
		   OR producto_nombre ILIKE $1 OR cliente_telefono ILIKE $1
		ORDER BY created_at DESC`

	return r.queryOrders(ctx, log, query, "%"+likeEscaper.Replace(q)+"%")
}

// Update writes the given assignments in a single statement and reports
// whether the order existed.
func (r *repository) Update(ctx context.Context, id string, assignments []Assignment) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Update"),
		zap.String("order_id", id),
	)

	if len(assignments) == 0 {
		return true, nil
	}

	sets := make([]string, 0, len(assignments)+1)
	args := make([]interface{}, 0, len(assignments)+1)
	for _, a := range assignments {
		args = append(args, a.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", a.Column, len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE pedidos SET %s WHERE numero_pedido = $%d",
		strings.Join(sets, ", "), len(args),
	)

	log.Debug("executing update", zap.String("query", query))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update order", zap.Error(err))
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		log.Error("failed to read rows affected", zap.Error(err))
		return false, err
	}
	return n > 0, nil
}

func (r *repository) Delete(ctx context.Context, id string) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Delete"),
		zap.String("order_id", id),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM pedidos WHERE numero_pedido = $1`, id)
	if err != nil {
		log.Error("failed to delete order", zap.Error(err))
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		log.Error("failed to read rows affected", zap.Error(err))
		return false, err
	}

	if n > 0 {
		log.Info("order deleted")
	}
	return n > 0, nil
}

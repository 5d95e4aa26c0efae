package product

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{
	"id", "sku", "nombre", "categoria", "precio_base", "costo_material", "costo_mano_obra",
	"costo_total", "margen_dinero", "margen_porcentaje", "tiempo_produccion_dias", "activo",
	"created_at", "updated_at",
}

func productRow(id, sku string, activo bool) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, sku, "Camiseta", "Camisetas", "500.00", "150.00", "50.00",
		"200.00", "300.00", "60.00", 5, activo, now, now,
	}
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Active only", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM productos WHERE activo = true ORDER BY nombre`).
			WillReturnRows(sqlmock.NewRows(productCols).AddRow(productRow("id-1", "CAM-001", true)...))

		list, err := repo.List(ctx, false)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, "CAM-001", list[0].SKU)
		assert.Equal(t, "500", list[0].PrecioBase.String())
	})

	t.Run("Include inactive", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM productos ORDER BY nombre`).
			WillReturnRows(sqlmock.NewRows(productCols).
				AddRow(productRow("id-1", "CAM-001", true)...).
				AddRow(productRow("id-2", "CAM-002", false)...))

		list, err := repo.List(ctx, true)
		assert.NoError(t, err)
		assert.Len(t, list, 2)
		assert.False(t, list[1].Activo)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM productos WHERE activo = true`).
			WillReturnRows(sqlmock.NewRows(productCols))

		list, err := repo.List(ctx, false)
		assert.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBySKU(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM productos WHERE sku = \$1 AND activo = true`).
			WithArgs("CAM-001").
			WillReturnRows(sqlmock.NewRows(productCols).AddRow(productRow("id-1", "CAM-001", true)...))

		p, err := repo.GetBySKU(ctx, "CAM-001")
		assert.NoError(t, err)
		assert.Equal(t, "id-1", p.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM productos WHERE sku = \$1 AND activo = true`).
			WithArgs("NOPE").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.GetBySKU(ctx, "NOPE")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	p := &Product{
		SKU: "CAM-001", Nombre: "Camiseta", Categoria: "Camisetas",
		PrecioBase: decimal.NewFromInt(500), CostoMaterial: decimal.NewFromInt(150), CostoManoObra: decimal.NewFromInt(50),
		TiempoProduccionDias: 5,
	}
	p.Derive()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO productos`).
			WithArgs("CAM-001", "Camiseta", "Camisetas", p.PrecioBase, p.CostoMaterial, p.CostoManoObra,
				p.CostoTotal, p.MargenDinero, p.MargenPorcentaje, 5).
			WillReturnRows(sqlmock.NewRows(productCols).AddRow(productRow("id-1", "CAM-001", true)...))

		created, err := repo.Create(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, "id-1", created.ID)
	})

	t.Run("Duplicate SKU", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO productos`).
			WillReturnError(&pq.Error{Code: "23505"})

		created, err := repo.Create(ctx, p)
		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrSKUExists)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO productos`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, p)
		assert.EqualError(t, err, "db error")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	p := &Product{ID: "id-1", SKU: "CAM-009"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE productos SET`).
			WillReturnRows(sqlmock.NewRows(productCols).AddRow(productRow("id-1", "CAM-009", true)...))

		updated, err := repo.Update(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, "CAM-009", updated.SKU)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE productos SET`).WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(ctx, p)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Duplicate SKU", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE productos SET`).WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Update(ctx, p)
		assert.ErrorIs(t, err, ErrSKUExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SetActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE productos SET activo = \$1`).
		WithArgs(false, "id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.SetActive(ctx, "id-1", false)
	assert.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(`UPDATE productos SET activo = \$1`).
		WithArgs(true, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.SetActive(ctx, "ghost", true)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SKUExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM productos WHERE sku = \$1\)`).
		WithArgs("CAM-001").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	exists, err := repo.SKUExists(ctx, "CAM-001", "")
	assert.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM productos WHERE sku = \$1 AND id <> \$2\)`).
		WithArgs("CAM-001", "id-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	exists, err = repo.SKUExists(ctx, "CAM-001", "id-1")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

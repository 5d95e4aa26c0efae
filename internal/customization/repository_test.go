package customization

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customizationCols = []string{
	"id", "codigo", "tipo", "descripcion", "metodo_calculo", "precio", "precio_por_mil",
	"tiempo_adicional_dias", "activo", "created_at", "updated_at",
}

func customizationRow(codigo, metodo, precio, rate string) []driver.Value {
	now := time.Now()
	return []driver.Value{"c-1", codigo, "Bordado", "", metodo, precio, rate, 2, true, now, now}
}

func TestRepository_GetByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM personalizaciones WHERE codigo = \$1 AND activo = true`).
			WithArgs("BORD-A").
			WillReturnRows(sqlmock.NewRows(customizationCols).AddRow(customizationRow("BORD-A", "fijo", "80.00", "0")...))

		c, err := repo.GetByCode(ctx, "BORD-A")
		assert.NoError(t, err)
		assert.Equal(t, "80", c.Precio.String())
		assert.False(t, c.IsRateBased())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM personalizaciones WHERE codigo = \$1`).
			WithArgs("NOPE").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrCustomizationNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM personalizaciones WHERE activo = true ORDER BY tipo, codigo`).
		WillReturnRows(sqlmock.NewRows(customizationCols).
			AddRow(customizationRow("BORD-A", "fijo", "80", "0")...).
			AddRow(customizationRow("BORD-P", "puntadas", "0", "35")...))

	list, err := repo.List(context.Background(), false)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.True(t, list[1].IsRateBased())
	assert.Equal(t, "35", list[1].PrecioPorMil.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	c := &Customization{Codigo: "BORD-A", Tipo: "Bordado", MetodoCalculo: MetodoFijo, Precio: decimal.NewFromInt(80)}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO personalizaciones`).
			WithArgs("BORD-A", "Bordado", "", "fijo", c.Precio, c.PrecioPorMil, 0).
			WillReturnRows(sqlmock.NewRows(customizationCols).AddRow(customizationRow("BORD-A", "fijo", "80", "0")...))

		created, err := repo.Create(ctx, c)
		assert.NoError(t, err)
		assert.Equal(t, "c-1", created.ID)
	})

	t.Run("Duplicate code via pgx", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO personalizaciones`).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := repo.Create(ctx, c)
		assert.ErrorIs(t, err, ErrCodeExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FindProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	query := `SELECT rol, activo, nombre, email, created_at FROM usuarios WHERE auth_user_id = \$1`

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(query).
			WithArgs("sub-1").
			WillReturnRows(sqlmock.NewRows([]string{"rol", "activo", "nombre", "email", "created_at"}).
				AddRow("admin", true, "Ana", "ana@shop.com", now))

		p, err := repo.FindProfile(ctx, "sub-1")
		assert.NoError(t, err)
		assert.Equal(t, RoleAdmin, p.Role)
		assert.True(t, p.Activo)
		assert.Equal(t, "Ana", p.Nombre)
		assert.Equal(t, "sub-1", p.AuthUserID)
	})

	t.Run("Null name", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("sub-2").
			WillReturnRows(sqlmock.NewRows([]string{"rol", "activo", "nombre", "email", "created_at"}).
				AddRow("vendedor", false, nil, nil, time.Now()))

		p, err := repo.FindProfile(ctx, "sub-2")
		assert.NoError(t, err)
		assert.Equal(t, "", p.Nombre)
		assert.False(t, p.Activo)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindProfile(ctx, "ghost")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("sub-3").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.FindProfile(ctx, "sub-3")
		assert.EqualError(t, err, "connection reset")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

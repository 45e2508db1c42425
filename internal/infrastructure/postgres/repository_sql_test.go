package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestRestaurantRepo_DeletePhotoOwnedBy_FiltraPorPropietario(t *testing.T) {
	mock := newMock(t)
	repo := NewRestaurantRepository(mock)
	ctx := context.Background()

	const deleteSQL = `DELETE FROM restaurant_photos p\s+USING restaurants r\s+WHERE p\.id = \$1 AND p\.restaurant_id = r\.id AND r\.owner_id = \$2`
	mock.ExpectExec(deleteSQL).WithArgs(int64(5), int64(7)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(deleteSQL).WithArgs(int64(5), int64(8)).WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := repo.DeletePhotoOwnedBy(ctx, 5, 7)
	require.NoError(t, err)
	assert.False(t, deleted, "foto de otro propietario")

	deleted, err = repo.DeletePhotoOwnedBy(ctx, 5, 8)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestRestaurantRepo_ListActive_ComponeFiltros(t *testing.T) {
	mock := newMock(t)
	repo := NewRestaurantRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery(`FROM restaurants WHERE status = \$1 AND \(name ILIKE \$2 OR address ILIKE \$2 OR city ILIKE \$2\) AND city ILIKE \$3 ORDER BY name, id`).
		WithArgs(entity.RestaurantActive, "%fonda%", "%Bogotá%").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`FROM restaurants WHERE status = \$1 AND city ILIKE \$2 ORDER BY name, id`).
		WithArgs(entity.RestaurantActive, `%50\%%`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}))

	list, err := repo.ListActive(ctx, repository.RestaurantFilter{Search: "fonda", City: "Bogotá"})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	list, err = repo.ListActive(ctx, repository.RestaurantFilter{City: "50%"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRepos_ViolacionUnicaEsDuplicado(t *testing.T) {
	mock := newMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO owner_applications`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "owner_applications_one_pending_uniq"})
	mock.ExpectQuery(`INSERT INTO restaurants`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "restaurants_owner_id_key"})
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_lower_uniq"})

	err := NewOwnerApplicationRepository(mock).Create(ctx, &entity.OwnerApplication{UserID: 3, Status: entity.ApplicationPending})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = NewRestaurantRepository(mock).Create(ctx, &entity.Restaurant{OwnerID: 3, Status: entity.RestaurantActive})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	err = NewUserRepository(mock).Create(ctx, &entity.User{Email: "ana@example.com", Role: entity.RoleUser})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestOwnerApplicationRepo_GetForUpdate_BloqueaFila(t *testing.T) {
	mock := newMock(t)
	repo := NewOwnerApplicationRepository(mock)

	mock.ExpectQuery(`FROM owner_applications a WHERE a\.id = \$1 FOR UPDATE`).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	app, err := repo.GetForUpdate(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, app, "inexistente: (nil, nil)")
}

func TestUserRepo_UpdateProfile_NoTocaRolNiEstado(t *testing.T) {
	assert.NotContains(t, updateProfileSQL, "role")
	assert.NotContains(t, updateProfileSQL, "is_active")
	assert.NotContains(t, updateProfileSQL, "password_hash")

	mock := newMock(t)
	repo := NewUserRepository(mock)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET name = \$2, email = \$3, phone = \$4, updated_at = NOW\(\) WHERE id = \$1`).
		WithArgs(int64(3), "Ana", "ana@example.com", "300").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE users SET name`).
		WithArgs(int64(3), "Ana", "bob@example.com", "300").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectExec(`UPDATE users SET name`).
		WithArgs(int64(99), "Ana", "ana@example.com", "300").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.UpdateProfile(ctx, 3, "Ana", "ana@example.com", "300"))
	assert.ErrorIs(t, repo.UpdateProfile(ctx, 3, "Ana", "bob@example.com", "300"), domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, repo.UpdateProfile(ctx, 99, "Ana", "ana@example.com", "300"), domain.ErrUserNotFound)
}

func TestUserRepo_UpdateAccess_ConservaLoNoEnviado(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	inactive := false
	mock.ExpectExec(`SET role = COALESCE\(\$2, role\), is_active = COALESCE\(\$3, is_active\)`).
		WithArgs(int64(3), (*string)(nil), &inactive).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdateAccess(context.Background(), 3, nil, &inactive))
}

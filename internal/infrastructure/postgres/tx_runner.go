package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Restaurantes-api/internal/application/review"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
)

// Ensure TxRunner implements review.ReviewTxRunner.
var _ review.ReviewTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunReview inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Aprobar toca solicitud, usuario y restaurante: o se aplican los tres cambios o ninguno.
func (r *TxRunner) RunReview(ctx context.Context, fn func(
	appRepo repository.OwnerApplicationRepository,
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appRepo := NewOwnerApplicationRepository(tx)
	userRepo := NewUserRepository(tx)
	restaurantRepo := NewRestaurantRepository(tx)

	if err := fn(appRepo, userRepo, restaurantRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
)

// OwnerApplicationRepository puerto de persistencia para solicitudes de propietario.
type OwnerApplicationRepository interface {
	// Create persiste una solicitud PENDING. ErrDuplicate si el usuario ya tiene otra PENDING.
	Create(ctx context.Context, app *entity.OwnerApplication) error
	GetByID(ctx context.Context, id int64) (*entity.ApplicationWithUsers, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id int64) (*entity.OwnerApplication, error)
	FindPendingByUser(ctx context.Context, userID int64) (*entity.ApplicationWithUsers, error)
	// ListByUser y ListAll ordenan de la más reciente a la más antigua.
	ListByUser(ctx context.Context, userID int64) ([]*entity.ApplicationWithUsers, error)
	ListAll(ctx context.Context) ([]*entity.ApplicationWithUsers, error)
	// UpdateReview persiste status, notas, revisor y fecha de revisión.
	UpdateReview(ctx context.Context, app *entity.OwnerApplication) error
}

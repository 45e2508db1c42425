package repository

import (
	"context"

	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	// Create persiste el usuario y asigna su ID. ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// GetByEmail busca sin distinguir mayúsculas.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// UpdateProfile cambia solo nombre, email y teléfono; rol, estado y contraseña no se tocan.
	UpdateProfile(ctx context.Context, id int64, name, email, phone string) error
	// UpdateAccess cambia rol y/o estado; un puntero nil conserva el valor almacenado.
	UpdateAccess(ctx context.Context, id int64, role *string, isActive *bool) error
	UpdateRole(ctx context.Context, id int64, role string) error
	// List devuelve usuarios del más nuevo al más antiguo; search filtra por nombre o email (ILIKE).
	List(ctx context.Context, search string) ([]*entity.User, error)
}

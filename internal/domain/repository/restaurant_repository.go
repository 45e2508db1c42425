package repository

import (
	"context"

	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
)

// RestaurantFilter filtros del listado público; se combinan con AND.
type RestaurantFilter struct {
	Search string // subcadena en nombre, dirección o ciudad
	City   string // subcadena en ciudad
}

// RestaurantRepository puerto de persistencia para restaurantes y sus fotos.
// Los restaurantes se devuelven con Photos cargadas y ordenadas por (order, id).
type RestaurantRepository interface {
	// Create persiste el restaurante. ErrDuplicate si el propietario ya tiene uno.
	Create(ctx context.Context, r *entity.Restaurant) error
	GetByID(ctx context.Context, id int64) (*entity.Restaurant, error)
	GetByOwner(ctx context.Context, ownerID int64) (*entity.Restaurant, error)
	// ListActive devuelve solo restaurantes ACTIVE ordenados por nombre.
	ListActive(ctx context.Context, f RestaurantFilter) ([]*entity.Restaurant, error)
	Update(ctx context.Context, r *entity.Restaurant) error
	AddPhoto(ctx context.Context, p *entity.RestaurantPhoto) error
	// DeletePhotoOwnedBy borra la foto solo si su restaurante pertenece a ownerID. false si no se borró nada.
	DeletePhotoOwnedBy(ctx context.Context, photoID, ownerID int64) (bool, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
)

var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

const restaurantColumns = `id, owner_id, name, address, city, google_maps_link, latitude, longitude,
	operating_hours, phone, status, created_at`

// RestaurantRepo implementación del puerto RestaurantRepository sobre PostgreSQL (pool o tx).
// Latitude/Longitude usan el codec NUMERIC ↔ decimal registrado en NewPool.
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

// Create persiste el restaurante. owner_id es UNIQUE: un segundo restaurante devuelve ErrDuplicate.
func (r *RestaurantRepo) Create(ctx context.Context, rest *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (owner_id, name, address, city, google_maps_link, latitude, longitude,
			operating_hours, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		rest.OwnerID, rest.Name, rest.Address, rest.City, rest.GoogleMapsLink, rest.Latitude, rest.Longitude,
		rest.OperatingHours, rest.Phone, rest.Status, rest.CreatedAt,
	).Scan(&rest.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// GetByID obtiene un restaurante (cualquier estado) con sus fotos.
func (r *RestaurantRepo) GetByID(ctx context.Context, id int64) (*entity.Restaurant, error) {
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
}

// GetByOwner obtiene el restaurante del propietario con sus fotos.
func (r *RestaurantRepo) GetByOwner(ctx context.Context, ownerID int64) (*entity.Restaurant, error) {
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE owner_id = $1`, ownerID)
}

// ListActive lista restaurantes ACTIVE ordenados por nombre. Search busca en nombre, dirección
// y ciudad; City filtra por ciudad. Ambos por subcadena sin distinguir mayúsculas.
func (r *RestaurantRepo) ListActive(ctx context.Context, f repository.RestaurantFilter) ([]*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE status = $1`
	args := []any{entity.RestaurantActive}
	if f.Search != "" {
		args = append(args, likePattern(f.Search))
		n := len(args)
		query += fmt.Sprintf(` AND (name ILIKE $%d OR address ILIKE $%d OR city ILIKE $%d)`, n, n, n)
	}
	if f.City != "" {
		args = append(args, likePattern(f.City))
		query += fmt.Sprintf(` AND city ILIKE $%d`, len(args))
	}
	query += ` ORDER BY name, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()
	list := []*entity.Restaurant{}
	for rows.Next() {
		var rest entity.Restaurant
		if err := rows.Scan(restaurantDest(&rest)...); err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		list = append(list, &rest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	if err := r.attachPhotos(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Update actualiza los campos editables por el propietario.
func (r *RestaurantRepo) Update(ctx context.Context, rest *entity.Restaurant) error {
	query := `
		UPDATE restaurants SET name = $2, address = $3, city = $4, google_maps_link = $5,
			latitude = $6, longitude = $7, operating_hours = $8, phone = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rest.ID, rest.Name, rest.Address, rest.City, rest.GoogleMapsLink,
		rest.Latitude, rest.Longitude, rest.OperatingHours, rest.Phone,
	)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddPhoto persiste una foto y asigna su ID.
func (r *RestaurantRepo) AddPhoto(ctx context.Context, p *entity.RestaurantPhoto) error {
	query := `
		INSERT INTO restaurant_photos (restaurant_id, image_url, caption, "order")
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.q.QueryRow(ctx, query, p.RestaurantID, p.ImageURL, p.Caption, p.Order).Scan(&p.ID); err != nil {
		return fmt.Errorf("insert restaurant photo: %w", err)
	}
	return nil
}

// DeletePhotoOwnedBy borra la foto solo si su restaurante pertenece a ownerID.
func (r *RestaurantRepo) DeletePhotoOwnedBy(ctx context.Context, photoID, ownerID int64) (bool, error) {
	query := `
		DELETE FROM restaurant_photos p
		USING restaurants r
		WHERE p.id = $1 AND p.restaurant_id = r.id AND r.owner_id = $2`
	tag, err := r.q.Exec(ctx, query, photoID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete restaurant photo: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RestaurantRepo) getOne(ctx context.Context, query string, arg int64) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.q.QueryRow(ctx, query, arg).Scan(restaurantDest(&rest)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	if err := r.attachPhotos(ctx, []*entity.Restaurant{&rest}); err != nil {
		return nil, err
	}
	return &rest, nil
}

// attachPhotos carga las fotos de todos los restaurantes en una sola consulta, ordenadas por (order, id).
func (r *RestaurantRepo) attachPhotos(ctx context.Context, list []*entity.Restaurant) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(list))
	byID := make(map[int64]*entity.Restaurant, len(list))
	for _, rest := range list {
		rest.Photos = []entity.RestaurantPhoto{}
		ids = append(ids, rest.ID)
		byID[rest.ID] = rest
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, restaurant_id, image_url, caption, "order"
		FROM restaurant_photos WHERE restaurant_id = ANY($1)
		ORDER BY "order", id`, ids)
	if err != nil {
		return fmt.Errorf("list restaurant photos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.RestaurantPhoto
		if err := rows.Scan(&p.ID, &p.RestaurantID, &p.ImageURL, &p.Caption, &p.Order); err != nil {
			return fmt.Errorf("scan restaurant photo: %w", err)
		}
		if rest, ok := byID[p.RestaurantID]; ok {
			rest.Photos = append(rest.Photos, p)
		}
	}
	return rows.Err()
}

func restaurantDest(r *entity.Restaurant) []any {
	return []any{
		&r.ID, &r.OwnerID, &r.Name, &r.Address, &r.City, &r.GoogleMapsLink, &r.Latitude, &r.Longitude,
		&r.OperatingHours, &r.Phone, &r.Status, &r.CreatedAt,
	}
}

package restaurant

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/validation"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
)

const coordinatePlaces = 6

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// RestaurantUseCase listado público y autoservicio del propietario (datos y fotos).
type RestaurantUseCase struct {
	repo repository.RestaurantRepository
}

// NewRestaurantUseCase construye el caso de uso.
func NewRestaurantUseCase(repo repository.RestaurantRepository) *RestaurantUseCase {
	return &RestaurantUseCase{repo: repo}
}

// ListPublic devuelve restaurantes ACTIVE ordenados por nombre, filtrados por search y city.
func (uc *RestaurantUseCase) ListPublic(ctx context.Context, q dto.RestaurantListQuery) ([]dto.RestaurantPublicResponse, error) {
	list, err := uc.repo.ListActive(ctx, repository.RestaurantFilter{
		Search: strings.TrimSpace(q.Search),
		City:   strings.TrimSpace(q.City),
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.RestaurantPublicResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.NewRestaurantPublicResponse(r))
	}
	return out, nil
}

// GetPublic devuelve un restaurante ACTIVE; suspendidos e inexistentes son ErrNotFound.
func (uc *RestaurantUseCase) GetPublic(ctx context.Context, id int64) (*dto.RestaurantPublicResponse, error) {
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil || r.Status != entity.RestaurantActive {
		return nil, domain.ErrNotFound
	}
	out := dto.NewRestaurantPublicResponse(r)
	return &out, nil
}

// GetMine devuelve el restaurante del propietario autenticado.
func (uc *RestaurantUseCase) GetMine(ctx context.Context, p access.Principal) (*dto.RestaurantResponse, error) {
	r, err := uc.mine(ctx, p)
	if err != nil {
		return nil, err
	}
	out := dto.NewRestaurantResponse(r)
	return &out, nil
}

// UpdateMine aplica una actualización parcial. Propietario, estado y fecha de alta no son editables.
func (uc *RestaurantUseCase) UpdateMine(ctx context.Context, p access.Principal, in dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error) {
	r, err := uc.mine(ctx, p)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.Required("name", *in.Name); err != nil {
			return nil, err
		}
		r.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		if err := validation.Required("address", *in.Address); err != nil {
			return nil, err
		}
		r.Address = strings.TrimSpace(*in.Address)
	}
	if in.City != nil {
		if err := validation.Required("city", *in.City); err != nil {
			return nil, err
		}
		r.City = strings.TrimSpace(*in.City)
	}
	// Un enlace vacío conserva el anterior.
	if in.GoogleMapsLink != nil {
		if link := strings.TrimSpace(*in.GoogleMapsLink); link != "" {
			if err := validation.HTTPURL("google_maps_link", link); err != nil {
				return nil, err
			}
			r.GoogleMapsLink = link
		}
	}
	if in.OperatingHours != nil {
		r.OperatingHours = strings.TrimSpace(*in.OperatingHours)
	}
	if in.Phone != nil {
		r.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Latitude.Set {
		lat, err := parseCoordinate("latitude", in.Latitude, maxLatitude)
		if err != nil {
			return nil, err
		}
		r.Latitude = lat
	}
	if in.Longitude.Set {
		lng, err := parseCoordinate("longitude", in.Longitude, maxLongitude)
		if err != nil {
			return nil, err
		}
		r.Longitude = lng
	}

	if err := validation.MaxLengths(
		validation.Field{Name: "name", Value: r.Name, Max: 255},
		validation.Field{Name: "city", Value: r.City, Max: 100},
		validation.Field{Name: "google_maps_link", Value: r.GoogleMapsLink, Max: 500},
		validation.Field{Name: "operating_hours", Value: r.OperatingHours, Max: 255},
		validation.Field{Name: "phone", Value: r.Phone, Max: 20},
	); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	out := dto.NewRestaurantResponse(r)
	return &out, nil
}

// AddPhoto agrega una foto al restaurante del propietario.
func (uc *RestaurantUseCase) AddPhoto(ctx context.Context, p access.Principal, in dto.CreatePhotoRequest) (*dto.RestaurantPhotoResponse, error) {
	r, err := uc.mine(ctx, p)
	if err != nil {
		return nil, err
	}
	imageURL := strings.TrimSpace(in.ImageURL)
	if err := validation.Required("image_url", imageURL); err != nil {
		return nil, err
	}
	if err := validation.HTTPURL("image_url", imageURL); err != nil {
		return nil, err
	}
	caption := strings.TrimSpace(in.Caption)
	if err := validation.MaxLengths(
		validation.Field{Name: "image_url", Value: imageURL, Max: 500},
		validation.Field{Name: "caption", Value: caption, Max: 100},
	); err != nil {
		return nil, err
	}
	order := 0
	if in.Order != nil {
		if *in.Order < 0 {
			return nil, domain.NewValidationError("order", "Ensure this value is greater than or equal to 0.")
		}
		order = *in.Order
	}
	photo := &entity.RestaurantPhoto{
		RestaurantID: r.ID,
		ImageURL:     imageURL,
		Caption:      caption,
		Order:        order,
	}
	if err := uc.repo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}
	out := dto.NewRestaurantPhotoResponse(photo)
	return &out, nil
}

// DeletePhoto borra una foto del restaurante del propietario.
// Una foto ajena responde igual que una inexistente (ErrNotFound).
func (uc *RestaurantUseCase) DeletePhoto(ctx context.Context, p access.Principal, photoID int64) error {
	if !access.Can(p.Role, access.ManageOwnRestaurant) {
		return domain.ErrForbidden
	}
	deleted, err := uc.repo.DeletePhotoOwnedBy(ctx, photoID, p.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *RestaurantUseCase) mine(ctx context.Context, p access.Principal) (*entity.Restaurant, error) {
	if !access.Can(p.Role, access.ManageOwnRestaurant) {
		return nil, domain.ErrForbidden
	}
	r, err := uc.repo.GetByOwner(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// parseCoordinate interpreta latitud/longitud: null, "" o "null" (cualquier caja) la borran;
// cualquier otro valor debe ser decimal con a lo sumo 6 decimales dentro de ±limit.
func parseCoordinate(field string, in dto.NullableString, limit decimal.Decimal) (decimal.NullDecimal, error) {
	v := strings.TrimSpace(in.Value)
	if !in.Valid || v == "" || strings.EqualFold(v, "null") {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, domain.NewValidationError(field, "A valid number is required.")
	}
	if d.Exponent() < -coordinatePlaces {
		return decimal.NullDecimal{}, domain.NewValidationError(field,
			fmt.Sprintf("Ensure that there are no more than %d decimal places.", coordinatePlaces))
	}
	if d.Abs().GreaterThan(limit) {
		return decimal.NullDecimal{}, domain.NewValidationError(field,
			"Ensure this value is between -"+limit.String()+" and "+limit.String()+".")
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

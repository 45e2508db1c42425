package dto

import "time"

// RestaurantPhotoResponse foto de un restaurante.
type RestaurantPhotoResponse struct {
	ID         int64  `json:"id"`
	Restaurant int64  `json:"restaurant"`
	ImageURL   string `json:"image_url"`
	Caption    string `json:"caption"`
	Order      int    `json:"order"`
}

// RestaurantPublicResponse vista pública (sin propietario ni estado).
// Latitude/Longitude se serializan como string con 6 decimales o null.
type RestaurantPublicResponse struct {
	ID             int64                     `json:"id"`
	Name           string                    `json:"name"`
	Address        string                    `json:"address"`
	City           string                    `json:"city"`
	GoogleMapsLink string                    `json:"google_maps_link"`
	Latitude       *string                   `json:"latitude"`
	Longitude      *string                   `json:"longitude"`
	OperatingHours string                    `json:"operating_hours"`
	Phone          string                    `json:"phone"`
	Photos         []RestaurantPhotoResponse `json:"photos"`
}

// RestaurantResponse vista del propietario.
type RestaurantResponse struct {
	RestaurantPublicResponse
	Owner     int64     `json:"owner"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateRestaurantRequest PATCH /api/restaurants/me. Owner, status y created_at no son editables.
type UpdateRestaurantRequest struct {
	Name           *string        `json:"name"`
	Address        *string        `json:"address"`
	City           *string        `json:"city"`
	GoogleMapsLink *string        `json:"google_maps_link"`
	Latitude       NullableString `json:"latitude"`
	Longitude      NullableString `json:"longitude"`
	OperatingHours *string        `json:"operating_hours"`
	Phone          *string        `json:"phone"`
}

// CreatePhotoRequest POST /api/restaurants/me/photos.
type CreatePhotoRequest struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
	Order    *int   `json:"order"`
}

// RestaurantListQuery filtros del listado público.
type RestaurantListQuery struct {
	Search string `query:"search"`
	City   string `query:"city"`
}

// UploadResponse URL pública del archivo subido.
type UploadResponse struct {
	URL string `json:"url"`
}

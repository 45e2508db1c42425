package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un restaurante. Solo los ACTIVE son visibles públicamente.
const (
	RestaurantActive    = "ACTIVE"
	RestaurantSuspended = "SUSPENDED"
)

// Restaurant se crea únicamente al aprobar una solicitud; uno por propietario.
type Restaurant struct {
	ID             int64
	OwnerID        int64
	Name           string
	Address        string
	City           string
	GoogleMapsLink string
	Latitude       decimal.NullDecimal // NUMERIC(9,6)
	Longitude      decimal.NullDecimal // NUMERIC(9,6)
	OperatingHours string
	Phone          string
	Status         string
	CreatedAt      time.Time
	Photos         []RestaurantPhoto
}

// RestaurantPhoto foto de carrusel (Storefront, Dining, Kitchen, Menu, Other). Orden: (Order, ID).
type RestaurantPhoto struct {
	ID           int64
	RestaurantID int64
	ImageURL     string
	Caption      string
	Order        int
}

// NewRestaurantFromApplication construye el restaurante que se provisiona al aprobar app.
func NewRestaurantFromApplication(app *OwnerApplication, now time.Time) *Restaurant {
	return &Restaurant{
		OwnerID:        app.UserID,
		Name:           app.RestaurantName,
		Address:        app.BusinessAddress,
		City:           app.City,
		GoogleMapsLink: app.GoogleMapsLink,
		OperatingHours: app.OperatingHours,
		Phone:          app.ContactPhone,
		Status:         RestaurantActive,
		CreatedAt:      now,
	}
}

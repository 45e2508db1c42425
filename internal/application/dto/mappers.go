package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
)

// NewUserResponse convierte la entidad a su salida pública.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// NewApplicationResponse detalle completo con datos del solicitante y del revisor.
func NewApplicationResponse(a *entity.ApplicationWithUsers) ApplicationResponse {
	return ApplicationResponse{
		ID:                  a.ID,
		User:                a.UserID,
		UserEmail:           a.UserEmail,
		UserName:            a.UserName,
		RestaurantName:      a.RestaurantName,
		BusinessAddress:     a.BusinessAddress,
		City:                a.City,
		GoogleMapsLink:      a.GoogleMapsLink,
		Landmark:            a.Landmark,
		ContactPersonName:   a.ContactPersonName,
		ContactPhone:        a.ContactPhone,
		AlternatePhone:      a.AlternatePhone,
		OperatingHours:      a.OperatingHours,
		ProofDocumentURL:    a.ProofDocumentURL,
		BusinessCardURL:     a.BusinessCardURL,
		OwnerPhotoURL:       a.OwnerPhotoURL,
		UtilityBillURL:      a.UtilityBillURL,
		StorefrontPhotoURL:  a.StorefrontPhotoURL,
		DiningPhotoURL:      a.DiningPhotoURL,
		DeclarationAccepted: a.DeclarationAccepted,
		Status:              a.Status,
		ReviewNotes:         a.ReviewNotes,
		ReviewedBy:          a.ReviewedBy,
		ReviewedByEmail:     a.ReviewedByEmail,
		ReviewedAt:          a.ReviewedAt,
		SubmittedAt:         a.SubmittedAt,
	}
}

// NewApplicationListItem fila compacta del listado de administración.
func NewApplicationListItem(a *entity.ApplicationWithUsers) ApplicationListItem {
	return ApplicationListItem{
		ID:              a.ID,
		User:            a.UserID,
		UserEmail:       a.UserEmail,
		UserName:        a.UserName,
		RestaurantName:  a.RestaurantName,
		City:            a.City,
		Status:          a.Status,
		SubmittedAt:     a.SubmittedAt,
		ReviewedAt:      a.ReviewedAt,
		ReviewedBy:      a.ReviewedBy,
		ReviewedByEmail: a.ReviewedByEmail,
	}
}

// NewRestaurantPublicResponse vista pública del restaurante con sus fotos.
func NewRestaurantPublicResponse(r *entity.Restaurant) RestaurantPublicResponse {
	photos := make([]RestaurantPhotoResponse, 0, len(r.Photos))
	for i := range r.Photos {
		photos = append(photos, NewRestaurantPhotoResponse(&r.Photos[i]))
	}
	return RestaurantPublicResponse{
		ID:             r.ID,
		Name:           r.Name,
		Address:        r.Address,
		City:           r.City,
		GoogleMapsLink: r.GoogleMapsLink,
		Latitude:       coordinate(r.Latitude),
		Longitude:      coordinate(r.Longitude),
		OperatingHours: r.OperatingHours,
		Phone:          r.Phone,
		Photos:         photos,
	}
}

// NewRestaurantResponse vista del propietario.
func NewRestaurantResponse(r *entity.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		RestaurantPublicResponse: NewRestaurantPublicResponse(r),
		Owner:                    r.OwnerID,
		Status:                   r.Status,
		CreatedAt:                r.CreatedAt,
	}
}

// NewRestaurantPhotoResponse convierte una foto.
func NewRestaurantPhotoResponse(p *entity.RestaurantPhoto) RestaurantPhotoResponse {
	return RestaurantPhotoResponse{
		ID:         p.ID,
		Restaurant: p.RestaurantID,
		ImageURL:   p.ImageURL,
		Caption:    p.Caption,
		Order:      p.Order,
	}
}

func coordinate(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(6)
	return &s
}

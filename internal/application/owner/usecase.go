package owner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/validation"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
)

// ApplicationUseCase envío y consulta de solicitudes de propietario por el propio solicitante.
type ApplicationUseCase struct {
	appRepo repository.OwnerApplicationRepository
}

// NewApplicationUseCase construye el caso de uso.
func NewApplicationUseCase(appRepo repository.OwnerApplicationRepository) *ApplicationUseCase {
	return &ApplicationUseCase{appRepo: appRepo}
}

// Submit crea una solicitud PENDING para el llamador.
// Si ya tiene una PENDING la devuelve sin validar ni escribir; created indica si se creó una nueva.
func (uc *ApplicationUseCase) Submit(ctx context.Context, p access.Principal, in dto.SubmitApplicationRequest) (resp *dto.ApplicationResponse, created bool, err error) {
	if !access.Can(p.Role, access.SubmitApplication) {
		return nil, false, domain.ErrForbidden
	}
	pending, err := uc.appRepo.FindPendingByUser(ctx, p.UserID)
	if err != nil {
		return nil, false, err
	}
	if pending != nil {
		out := dto.NewApplicationResponse(pending)
		return &out, false, nil
	}

	app := newApplication(p.UserID, in, time.Now().UTC())
	if err := validate(app); err != nil {
		return nil, false, err
	}

	if err := uc.appRepo.Create(ctx, app); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, false, err
		}
		// Otra petición concurrente del mismo usuario ganó la carrera.
		pending, err := uc.appRepo.FindPendingByUser(ctx, p.UserID)
		if err != nil {
			return nil, false, err
		}
		if pending == nil {
			return nil, false, fmt.Errorf("solicitud pendiente duplicada para usuario %d no encontrada", p.UserID)
		}
		out := dto.NewApplicationResponse(pending)
		return &out, false, nil
	}

	full, err := uc.appRepo.GetByID(ctx, app.ID)
	if err != nil {
		return nil, false, err
	}
	if full == nil {
		full = &entity.ApplicationWithUsers{OwnerApplication: *app}
	}
	out := dto.NewApplicationResponse(full)
	return &out, true, nil
}

// Status devuelve el historial del llamador (más reciente primero) y la última solicitud.
func (uc *ApplicationUseCase) Status(ctx context.Context, p access.Principal) (*dto.ApplicationStatusResponse, error) {
	if !access.Can(p.Role, access.SubmitApplication) {
		return nil, domain.ErrForbidden
	}
	apps, err := uc.appRepo.ListByUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	out := &dto.ApplicationStatusResponse{Applications: make([]dto.ApplicationResponse, 0, len(apps))}
	for _, a := range apps {
		out.Applications = append(out.Applications, dto.NewApplicationResponse(a))
	}
	if len(out.Applications) > 0 {
		latest := out.Applications[0]
		out.Latest = &latest
	}
	return out, nil
}

func newApplication(userID int64, in dto.SubmitApplicationRequest, now time.Time) *entity.OwnerApplication {
	return &entity.OwnerApplication{
		UserID:              userID,
		RestaurantName:      strings.TrimSpace(in.RestaurantName),
		BusinessAddress:     strings.TrimSpace(in.BusinessAddress),
		City:                strings.TrimSpace(in.City),
		GoogleMapsLink:      strings.TrimSpace(in.GoogleMapsLink),
		Landmark:            strings.TrimSpace(in.Landmark),
		ContactPersonName:   strings.TrimSpace(in.ContactPersonName),
		ContactPhone:        strings.TrimSpace(in.ContactPhone),
		AlternatePhone:      strings.TrimSpace(in.AlternatePhone),
		OperatingHours:      strings.TrimSpace(in.OperatingHours),
		ProofDocumentURL:    strings.TrimSpace(in.ProofDocumentURL),
		BusinessCardURL:     strings.TrimSpace(in.BusinessCardURL),
		OwnerPhotoURL:       strings.TrimSpace(in.OwnerPhotoURL),
		UtilityBillURL:      strings.TrimSpace(in.UtilityBillURL),
		StorefrontPhotoURL:  strings.TrimSpace(in.StorefrontPhotoURL),
		DiningPhotoURL:      strings.TrimSpace(in.DiningPhotoURL),
		DeclarationAccepted: in.DeclarationAccepted,
		Status:              entity.ApplicationPending,
		SubmittedAt:         now,
	}
}

// validate aplica las reglas en orden fijo; el primer fallo es el que se reporta.
func validate(app *entity.OwnerApplication) error {
	if !app.DeclarationAccepted {
		return domain.NewValidationError("declaration_accepted", "You must accept the declaration.")
	}
	if !app.HasAtLeastOneProof() {
		return domain.NewValidationError("proof_document_url",
			"Upload at least one proof: proof document, business card, owner photo or utility bill.")
	}
	if app.GoogleMapsLink == "" {
		return domain.NewValidationError("google_maps_link", "Google Maps link is required.")
	}

	required := []struct{ field, value string }{
		{"restaurant_name", app.RestaurantName},
		{"business_address", app.BusinessAddress},
		{"city", app.City},
		{"contact_person_name", app.ContactPersonName},
		{"contact_phone", app.ContactPhone},
	}
	for _, r := range required {
		if err := validation.Required(r.field, r.value); err != nil {
			return err
		}
	}

	urls := []struct{ field, value string }{
		{"google_maps_link", app.GoogleMapsLink},
		{"proof_document_url", app.ProofDocumentURL},
		{"business_card_url", app.BusinessCardURL},
		{"owner_photo_url", app.OwnerPhotoURL},
		{"utility_bill_url", app.UtilityBillURL},
		{"storefront_photo_url", app.StorefrontPhotoURL},
		{"dining_photo_url", app.DiningPhotoURL},
	}
	for _, u := range urls {
		if err := validation.HTTPURL(u.field, u.value); err != nil {
			return err
		}
	}

	return validation.MaxLengths(
		validation.Field{Name: "restaurant_name", Value: app.RestaurantName, Max: 255},
		validation.Field{Name: "city", Value: app.City, Max: 100},
		validation.Field{Name: "google_maps_link", Value: app.GoogleMapsLink, Max: 500},
		validation.Field{Name: "landmark", Value: app.Landmark, Max: 255},
		validation.Field{Name: "contact_person_name", Value: app.ContactPersonName, Max: 255},
		validation.Field{Name: "contact_phone", Value: app.ContactPhone, Max: 20},
		validation.Field{Name: "alternate_phone", Value: app.AlternatePhone, Max: 20},
		validation.Field{Name: "operating_hours", Value: app.OperatingHours, Max: 255},
		validation.Field{Name: "proof_document_url", Value: app.ProofDocumentURL, Max: 500},
		validation.Field{Name: "business_card_url", Value: app.BusinessCardURL, Max: 500},
		validation.Field{Name: "owner_photo_url", Value: app.OwnerPhotoURL, Max: 500},
		validation.Field{Name: "utility_bill_url", Value: app.UtilityBillURL, Max: 500},
		validation.Field{Name: "storefront_photo_url", Value: app.StorefrontPhotoURL, Max: 500},
		validation.Field{Name: "dining_photo_url", Value: app.DiningPhotoURL, Max: 500},
	)
}

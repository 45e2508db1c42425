package entity

import "time"

// Estados de una solicitud de propietario.
const (
	ApplicationPending  = "PENDING"
	ApplicationApproved = "APPROVED"
	ApplicationRejected = "REJECTED"
)

// OwnerApplication solicitud de verificación como propietario de restaurante.
// Registro de auditoría: nunca se borra y solo cambia de estado una vez (PENDING → APPROVED|REJECTED).
type OwnerApplication struct {
	ID     int64
	UserID int64

	// Datos del negocio
	RestaurantName  string
	BusinessAddress string
	City            string
	GoogleMapsLink  string
	Landmark        string

	// Contacto operativo
	ContactPersonName string
	ContactPhone      string
	AlternatePhone    string
	OperatingHours    string

	// Pruebas de asociación (al menos una)
	ProofDocumentURL string
	BusinessCardURL  string
	OwnerPhotoURL    string
	UtilityBillURL   string

	// Fotos del restaurante (opcionales)
	StorefrontPhotoURL string
	DiningPhotoURL     string

	DeclarationAccepted bool

	Status      string
	ReviewNotes string
	ReviewedBy  *int64
	ReviewedAt  *time.Time
	SubmittedAt time.Time
}

// HasAtLeastOneProof informa si alguna de las cuatro URLs de prueba está presente.
func (a *OwnerApplication) HasAtLeastOneProof() bool {
	return a.ProofDocumentURL != "" || a.BusinessCardURL != "" || a.OwnerPhotoURL != "" || a.UtilityBillURL != ""
}

// IsPending informa si la solicitud aún admite revisión.
func (a *OwnerApplication) IsPending() bool {
	return a.Status == ApplicationPending
}

// MarkReviewed aplica el resultado de la revisión. El llamador valida IsPending antes.
func (a *OwnerApplication) MarkReviewed(status, notes string, reviewerID int64, at time.Time) {
	a.Status = status
	a.ReviewNotes = notes
	a.ReviewedBy = &reviewerID
	a.ReviewedAt = &at
}

// ApplicationWithUsers solicitud junto con datos del solicitante y del revisor (para listados).
type ApplicationWithUsers struct {
	OwnerApplication
	UserEmail       string
	UserName        string
	ReviewedByEmail string
	ReviewedByName  string
}

package dto

import "time"

// SubmitApplicationRequest body de POST /api/owner/apply.
type SubmitApplicationRequest struct {
	RestaurantName  string `json:"restaurant_name"`
	BusinessAddress string `json:"business_address"`
	City            string `json:"city"`
	GoogleMapsLink  string `json:"google_maps_link"`
	Landmark        string `json:"landmark"`

	ContactPersonName string `json:"contact_person_name"`
	ContactPhone      string `json:"contact_phone"`
	AlternatePhone    string `json:"alternate_phone"`
	OperatingHours    string `json:"operating_hours"`

	ProofDocumentURL string `json:"proof_document_url"`
	BusinessCardURL  string `json:"business_card_url"`
	OwnerPhotoURL    string `json:"owner_photo_url"`
	UtilityBillURL   string `json:"utility_bill_url"`

	StorefrontPhotoURL string `json:"storefront_photo_url"`
	DiningPhotoURL     string `json:"dining_photo_url"`

	DeclarationAccepted bool `json:"declaration_accepted"`
}

// ApplicationResponse detalle completo de una solicitud.
type ApplicationResponse struct {
	ID        int64  `json:"id"`
	User      int64  `json:"user"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`

	RestaurantName  string `json:"restaurant_name"`
	BusinessAddress string `json:"business_address"`
	City            string `json:"city"`
	GoogleMapsLink  string `json:"google_maps_link"`
	Landmark        string `json:"landmark"`

	ContactPersonName string `json:"contact_person_name"`
	ContactPhone      string `json:"contact_phone"`
	AlternatePhone    string `json:"alternate_phone"`
	OperatingHours    string `json:"operating_hours"`

	ProofDocumentURL   string `json:"proof_document_url"`
	BusinessCardURL    string `json:"business_card_url"`
	OwnerPhotoURL      string `json:"owner_photo_url"`
	UtilityBillURL     string `json:"utility_bill_url"`
	StorefrontPhotoURL string `json:"storefront_photo_url"`
	DiningPhotoURL     string `json:"dining_photo_url"`

	DeclarationAccepted bool `json:"declaration_accepted"`

	Status          string     `json:"status"`
	ReviewNotes     string     `json:"review_notes"`
	ReviewedBy      *int64     `json:"reviewed_by"`
	ReviewedByEmail string     `json:"reviewed_by_email,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	SubmittedAt     time.Time  `json:"submitted_at"`
}

// ApplicationListItem fila del listado de administración.
type ApplicationListItem struct {
	ID              int64      `json:"id"`
	User            int64      `json:"user"`
	UserEmail       string     `json:"user_email"`
	UserName        string     `json:"user_name"`
	RestaurantName  string     `json:"restaurant_name"`
	City            string     `json:"city"`
	Status          string     `json:"status"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewedBy      *int64     `json:"reviewed_by"`
	ReviewedByEmail string     `json:"reviewed_by_email,omitempty"`
}

// ApplicationStatusResponse historial del solicitante más la última solicitud (null si no hay).
type ApplicationStatusResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Latest       *ApplicationResponse  `json:"latest"`
}

// ReviewRequest body de approve/reject.
type ReviewRequest struct {
	ReviewNotes string `json:"review_notes"`
}

// RestaurantRef referencia mínima al restaurante creado en la aprobación.
type RestaurantRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ApproveResponse resultado de aprobar una solicitud.
type ApproveResponse struct {
	Application ApplicationResponse `json:"application"`
	Restaurant  RestaurantRef       `json:"restaurant"`
}

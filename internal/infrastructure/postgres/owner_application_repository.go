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

var _ repository.OwnerApplicationRepository = (*OwnerApplicationRepo)(nil)

const applicationColumns = `a.id, a.user_id, a.restaurant_name, a.business_address, a.city, a.google_maps_link, a.landmark,
	a.contact_person_name, a.contact_phone, a.alternate_phone, a.operating_hours,
	a.proof_document_url, a.business_card_url, a.owner_photo_url, a.utility_bill_url,
	a.storefront_photo_url, a.dining_photo_url, a.declaration_accepted,
	a.status, a.review_notes, a.reviewed_by, a.reviewed_at, a.submitted_at`

// Solicitud con email/nombre del solicitante y del revisor (vacíos si no hay revisor).
const applicationWithUsersSelect = `
	SELECT ` + applicationColumns + `,
		u.email, u.name, COALESCE(rv.email, ''), COALESCE(rv.name, '')
	FROM owner_applications a
	JOIN users u ON u.id = a.user_id
	LEFT JOIN users rv ON rv.id = a.reviewed_by`

// OwnerApplicationRepo implementación del puerto OwnerApplicationRepository sobre PostgreSQL (pool o tx).
type OwnerApplicationRepo struct {
	q Querier
}

// NewOwnerApplicationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOwnerApplicationRepository(q Querier) *OwnerApplicationRepo {
	return &OwnerApplicationRepo{q: q}
}

// Create persiste una solicitud. El índice único parcial impide una segunda PENDING del mismo usuario.
func (r *OwnerApplicationRepo) Create(ctx context.Context, app *entity.OwnerApplication) error {
	query := `
		INSERT INTO owner_applications (
			user_id, restaurant_name, business_address, city, google_maps_link, landmark,
			contact_person_name, contact_phone, alternate_phone, operating_hours,
			proof_document_url, business_card_url, owner_photo_url, utility_bill_url,
			storefront_photo_url, dining_photo_url, declaration_accepted, status, review_notes, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		app.UserID, app.RestaurantName, app.BusinessAddress, app.City, app.GoogleMapsLink, app.Landmark,
		app.ContactPersonName, app.ContactPhone, app.AlternatePhone, app.OperatingHours,
		app.ProofDocumentURL, app.BusinessCardURL, app.OwnerPhotoURL, app.UtilityBillURL,
		app.StorefrontPhotoURL, app.DiningPhotoURL, app.DeclarationAccepted, app.Status, app.ReviewNotes, app.SubmittedAt,
	).Scan(&app.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert owner application: %w", err)
	}
	return nil
}

// GetByID obtiene la solicitud con datos de solicitante y revisor.
func (r *OwnerApplicationRepo) GetByID(ctx context.Context, id int64) (*entity.ApplicationWithUsers, error) {
	app, err := scanApplicationWithUsers(r.q.QueryRow(ctx, applicationWithUsersSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get owner application: %w", err)
	}
	return app, nil
}

// GetForUpdate bloquea la fila de la solicitud hasta el fin de la transacción.
// FOR UPDATE no admite el LEFT JOIN del revisor, por eso devuelve la entidad sola.
func (r *OwnerApplicationRepo) GetForUpdate(ctx context.Context, id int64) (*entity.OwnerApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM owner_applications a WHERE a.id = $1 FOR UPDATE`
	var a entity.OwnerApplication
	err := r.q.QueryRow(ctx, query, id).Scan(applicationDest(&a)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get owner application for update: %w", err)
	}
	return &a, nil
}

// FindPendingByUser devuelve la solicitud PENDING del usuario, si existe.
func (r *OwnerApplicationRepo) FindPendingByUser(ctx context.Context, userID int64) (*entity.ApplicationWithUsers, error) {
	query := applicationWithUsersSelect + ` WHERE a.user_id = $1 AND a.status = 'PENDING' LIMIT 1`
	app, err := scanApplicationWithUsers(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("find pending owner application: %w", err)
	}
	return app, nil
}

// ListByUser historial del usuario, más reciente primero.
func (r *OwnerApplicationRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.ApplicationWithUsers, error) {
	return r.list(ctx, applicationWithUsersSelect+` WHERE a.user_id = $1 ORDER BY a.submitted_at DESC, a.id DESC`, userID)
}

// ListAll todas las solicitudes, más reciente primero.
func (r *OwnerApplicationRepo) ListAll(ctx context.Context) ([]*entity.ApplicationWithUsers, error) {
	return r.list(ctx, applicationWithUsersSelect+` ORDER BY a.submitted_at DESC, a.id DESC`)
}

// UpdateReview persiste el resultado de la revisión.
func (r *OwnerApplicationRepo) UpdateReview(ctx context.Context, app *entity.OwnerApplication) error {
	query := `
		UPDATE owner_applications SET status = $2, review_notes = $3, reviewed_by = $4, reviewed_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, app.ID, app.Status, app.ReviewNotes, app.ReviewedBy, app.ReviewedAt)
	if err != nil {
		return fmt.Errorf("update owner application review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OwnerApplicationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ApplicationWithUsers, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list owner applications: %w", err)
	}
	defer rows.Close()
	list := []*entity.ApplicationWithUsers{}
	for rows.Next() {
		var a entity.ApplicationWithUsers
		if err := rows.Scan(applicationWithUsersDest(&a)...); err != nil {
			return nil, fmt.Errorf("scan owner application: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func applicationDest(a *entity.OwnerApplication) []any {
	return []any{
		&a.ID, &a.UserID, &a.RestaurantName, &a.BusinessAddress, &a.City, &a.GoogleMapsLink, &a.Landmark,
		&a.ContactPersonName, &a.ContactPhone, &a.AlternatePhone, &a.OperatingHours,
		&a.ProofDocumentURL, &a.BusinessCardURL, &a.OwnerPhotoURL, &a.UtilityBillURL,
		&a.StorefrontPhotoURL, &a.DiningPhotoURL, &a.DeclarationAccepted,
		&a.Status, &a.ReviewNotes, &a.ReviewedBy, &a.ReviewedAt, &a.SubmittedAt,
	}
}

func applicationWithUsersDest(a *entity.ApplicationWithUsers) []any {
	return append(applicationDest(&a.OwnerApplication),
		&a.UserEmail, &a.UserName, &a.ReviewedByEmail, &a.ReviewedByName)
}

func scanApplicationWithUsers(row pgx.Row) (*entity.ApplicationWithUsers, error) {
	var a entity.ApplicationWithUsers
	if err := row.Scan(applicationWithUsersDest(&a)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

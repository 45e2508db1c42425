package review_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/owner"
	"github.com/jhoicas/Restaurantes-api/internal/application/review"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
	"github.com/jhoicas/Restaurantes-api/internal/testutil/memory"
)

type fixture struct {
	store     *memory.Store
	owners    *owner.ApplicationUseCase
	review    *review.ReviewUseCase
	applicant access.Principal
	admin     access.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	applicant := &entity.User{Email: "ana@example.com", Name: "Ana", Role: entity.RoleUser, IsActive: true}
	admin := &entity.User{Email: "admin@example.com", Name: "Admin", Role: entity.RoleAdmin, IsActive: true}
	require.NoError(t, store.Create(ctx, applicant))
	require.NoError(t, store.Create(ctx, admin))
	return &fixture{
		store:     store,
		owners:    owner.NewApplicationUseCase(store.Applications()),
		review:    review.NewReviewUseCase(store.Applications(), store, zerolog.Nop()),
		applicant: access.Principal{UserID: applicant.ID, Role: applicant.Role},
		admin:     access.Principal{UserID: admin.ID, Role: admin.Role},
	}
}

func (f *fixture) submit(t *testing.T) int64 {
	t.Helper()
	out, created, err := f.owners.Submit(context.Background(), f.applicant, dto.SubmitApplicationRequest{
		RestaurantName:      "La Fonda",
		BusinessAddress:     "Calle 1 #2-3",
		City:                "Medellín",
		GoogleMapsLink:      "https://maps.google.com/?q=la+fonda",
		ContactPersonName:   "Ana",
		ContactPhone:        "3001234567",
		OperatingHours:      "9-21",
		ProofDocumentURL:    "https://cdn.example.com/pdf/doc.pdf",
		DeclarationAccepted: true,
	})
	require.NoError(t, err)
	require.True(t, created)
	return out.ID
}

func TestApprove_PromueveYCreaRestaurante(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.submit(t)

	out, err := f.review.Approve(ctx, f.admin, id, dto.ReviewRequest{ReviewNotes: "ok"})
	require.NoError(t, err)

	assert.Equal(t, entity.ApplicationApproved, out.Application.Status)
	assert.Equal(t, "ok", out.Application.ReviewNotes)
	require.NotNil(t, out.Application.ReviewedBy)
	assert.Equal(t, f.admin.UserID, *out.Application.ReviewedBy)
	assert.Equal(t, "admin@example.com", out.Application.ReviewedByEmail)
	assert.NotNil(t, out.Application.ReviewedAt)
	assert.Equal(t, "La Fonda", out.Restaurant.Name)

	user, _ := f.store.GetByID(ctx, f.applicant.UserID)
	assert.Equal(t, entity.RoleOwner, user.Role)

	r, _ := f.store.Restaurants().GetByOwner(ctx, f.applicant.UserID)
	require.NotNil(t, r)
	assert.Equal(t, out.Restaurant.ID, r.ID)
	assert.Equal(t, "Calle 1 #2-3", r.Address)
	assert.Equal(t, "Medellín", r.City)
	assert.Equal(t, "https://maps.google.com/?q=la+fonda", r.GoogleMapsLink)
	assert.Equal(t, "9-21", r.OperatingHours)
	assert.Equal(t, "3001234567", r.Phone)
	assert.Equal(t, entity.RestaurantActive, r.Status)
}

func TestApprove_YaRevisadaEsConflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.submit(t)

	_, err := f.review.Approve(ctx, f.admin, id, dto.ReviewRequest{})
	require.NoError(t, err)

	_, err = f.review.Approve(ctx, f.admin, id, dto.ReviewRequest{})
	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "application is already APPROVED", ce.Message)

	_, err = f.review.Reject(ctx, f.admin, id, dto.ReviewRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, _ := f.store.Restaurants().ListActive(ctx, repository.RestaurantFilter{})
	assert.Len(t, list, 1, "no se crea un segundo restaurante")
}

func TestReject_NoTocaUsuarioNiRestaurantes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.submit(t)

	out, err := f.review.Reject(ctx, f.admin, id, dto.ReviewRequest{ReviewNotes: "documento ilegible"})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationRejected, out.Status)
	assert.Equal(t, "documento ilegible", out.ReviewNotes)

	user, _ := f.store.GetByID(ctx, f.applicant.UserID)
	assert.Equal(t, entity.RoleUser, user.Role)
	r, _ := f.store.Restaurants().GetByOwner(ctx, f.applicant.UserID)
	assert.Nil(t, r)

	_, err = f.review.Approve(ctx, f.admin, id, dto.ReviewRequest{})
	var ce *domain.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "application is already REJECTED", ce.Message)
}

type failingRestaurants struct {
	repository.RestaurantRepository
}

func (failingRestaurants) Create(context.Context, *entity.Restaurant) error {
	return errors.New("insert restaurant: conexión perdida")
}

type txFunc func(ctx context.Context, fn func(repository.OwnerApplicationRepository, repository.UserRepository, repository.RestaurantRepository) error) error

func (f txFunc) RunReview(ctx context.Context, fn func(repository.OwnerApplicationRepository, repository.UserRepository, repository.RestaurantRepository) error) error {
	return f(ctx, fn)
}

func TestApprove_FalloRevierteTodo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.submit(t)

	tx := txFunc(func(ctx context.Context, fn func(repository.OwnerApplicationRepository, repository.UserRepository, repository.RestaurantRepository) error) error {
		return f.store.RunReview(ctx, func(a repository.OwnerApplicationRepository, u repository.UserRepository, r repository.RestaurantRepository) error {
			return fn(a, u, failingRestaurants{r})
		})
	})
	uc := review.NewReviewUseCase(f.store.Applications(), tx, zerolog.Nop())

	_, err := uc.Approve(ctx, f.admin, id, dto.ReviewRequest{})
	require.Error(t, err)

	app, _ := f.store.Applications().GetByID(ctx, id)
	assert.Equal(t, entity.ApplicationPending, app.Status)
	assert.Nil(t, app.ReviewedBy)
	user, _ := f.store.GetByID(ctx, f.applicant.UserID)
	assert.Equal(t, entity.RoleUser, user.Role)

	// La solicitud sigue revisable.
	_, err = f.review.Approve(ctx, f.admin, id, dto.ReviewRequest{})
	assert.NoError(t, err)
}

func TestApprove_PropietarioConRestauranteRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Restaurants().Create(ctx, &entity.Restaurant{
		OwnerID: f.applicant.UserID, Name: "Previo", Status: entity.RestaurantActive,
	}))
	id := f.submit(t)

	_, err := f.review.Approve(ctx, f.admin, id, dto.ReviewRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)

	app, _ := f.store.Applications().GetByID(ctx, id)
	assert.Equal(t, entity.ApplicationPending, app.Status)
	user, _ := f.store.GetByID(ctx, f.applicant.UserID)
	assert.Equal(t, entity.RoleUser, user.Role)
}

func TestApprove_ConcurrenteSoloUnaGana(t *testing.T) {
	f := newFixture(t)
	id := f.submit(t)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.review.Approve(context.Background(), f.admin, id, dto.ReviewRequest{})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestReview_RolesYNoEncontrada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.submit(t)

	for _, role := range []string{entity.RoleUser, entity.RoleOwner, entity.RoleAuditor} {
		p := access.Principal{UserID: f.admin.UserID, Role: role}
		_, err := f.review.List(ctx, p)
		assert.ErrorIs(t, err, domain.ErrForbidden, role)
		_, err = f.review.Approve(ctx, p, id, dto.ReviewRequest{})
		assert.ErrorIs(t, err, domain.ErrForbidden, role)
	}

	super := access.Principal{UserID: f.admin.UserID, Role: entity.RoleSuperAdmin}
	list, err := f.review.List(ctx, super)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ana@example.com", list[0].UserEmail)
	assert.Equal(t, "Ana", list[0].UserName)

	_, err = f.review.Detail(ctx, f.admin, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.review.Approve(ctx, f.admin, 9999, dto.ReviewRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type stubPDF struct{ got *entity.ApplicationWithUsers }

func (s *stubPDF) Generate(app *entity.ApplicationWithUsers) ([]byte, error) {
	s.got = app
	return []byte("%PDF-1.4"), nil
}

func TestDownloadApplicationPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.submit(t)
	gen := &stubPDF{}
	uc := review.NewPDFUseCase(f.store.Applications(), gen)

	data, name, err := uc.DownloadApplicationPDF(ctx, f.admin, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
	assert.Contains(t, name, ".pdf")
	assert.Equal(t, "ana@example.com", gen.got.UserEmail)

	_, _, err = uc.DownloadApplicationPDF(ctx, f.applicant, id)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, _, err = uc.DownloadApplicationPDF(ctx, f.admin, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

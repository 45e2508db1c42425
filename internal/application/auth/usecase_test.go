package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurantes-api/internal/application/auth"
	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/owner"
	"github.com/jhoicas/Restaurantes-api/internal/application/review"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
	"github.com/jhoicas/Restaurantes-api/internal/testutil/memory"
	pkgjwt "github.com/jhoicas/Restaurantes-api/pkg/jwt"
)

var testJWT = auth.JWTConfig{
	Secret:     "test-secret",
	AccessTTL:  24 * time.Hour,
	RefreshTTL: 7 * 24 * time.Hour,
	Issuer:     "test",
}

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return auth.NewAuthUseCase(store, testJWT), store
}

func register(t *testing.T, uc *auth.AuthUseCase, email string) *dto.UserResponse {
	t.Helper()
	u, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: email, Phone: "300", Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Field
}

func TestRegister_SiempreRolUser(t *testing.T) {
	uc, _ := newAuth(t)
	u := register(t, uc, "ana@example.com")

	assert.Equal(t, entity.RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotZero(t, u.ID)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	register(t, uc, "ana@example.com")

	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "Otra", Email: "ana@EXAMPLE.com", Password: "secret123"})
	assert.Equal(t, "email", fieldOf(t, err), "email duplicado")

	_, err = uc.Register(ctx, dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "short"})
	assert.Equal(t, "password", fieldOf(t, err))

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "bob@example.com", Password: "secret123"})
	assert.Equal(t, "name", fieldOf(t, err))

	_, err = uc.Register(ctx, dto.RegisterRequest{Name: "Bob", Password: "secret123"})
	assert.Equal(t, "email", fieldOf(t, err))
}

func TestLogin_EmiteParDeTokens(t *testing.T) {
	uc, _ := newAuth(t)
	u := register(t, uc, "ana@example.com")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, out.User.ID)

	claims, err := pkgjwt.Parse(testJWT.Secret, out.Access, pkgjwt.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	refresh, err := pkgjwt.Parse(testJWT.Secret, out.Refresh, pkgjwt.TokenRefresh)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), refresh.ExpiresAt.Time, time.Minute)
}

func TestLogin_CredencialesInvalidasOInactivo(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	u := register(t, uc, "ana@example.com")

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	inactive := false
	require.NoError(t, store.UpdateAccess(ctx, u.ID, nil, &inactive))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	register(t, uc, "ana@example.com")
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := uc.Refresh(ctx, dto.RefreshRequest{Refresh: out.Refresh})
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testJWT.Secret, refreshed.Access, pkgjwt.TokenAccess)
	assert.NoError(t, err)

	_, err = uc.Refresh(ctx, dto.RefreshRequest{Refresh: out.Access})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "un access no sirve como refresh")

	_, err = uc.Refresh(ctx, dto.RefreshRequest{Refresh: "basura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	user, _ := store.GetByEmail(ctx, "ana@example.com")
	inactive := false
	require.NoError(t, store.UpdateAccess(ctx, user.ID, nil, &inactive))
	_, err = uc.Refresh(ctx, dto.RefreshRequest{Refresh: out.Refresh})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_UsaRolVigente(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	u := register(t, uc, "ana@example.com")
	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, store.UpdateRole(ctx, u.ID, entity.RoleOwner))

	p, err := uc.Authenticate(ctx, out.Access)
	require.NoError(t, err)
	assert.Equal(t, access.Principal{UserID: u.ID, Role: entity.RoleOwner}, p)

	_, err = uc.Authenticate(ctx, out.Refresh)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateMe(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	ana := register(t, uc, "ana@example.com")
	register(t, uc, "bob@example.com")
	p := access.Principal{UserID: ana.ID, Role: entity.RoleUser}

	name, phone := "Ana María", "311"
	out, err := uc.UpdateMe(ctx, p, dto.UpdateProfileRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)
	assert.Equal(t, "311", out.Phone)
	assert.Equal(t, entity.RoleUser, out.Role)

	taken := "bob@example.com"
	_, err = uc.UpdateMe(ctx, p, dto.UpdateProfileRequest{Email: &taken})
	assert.Equal(t, "email", fieldOf(t, err))

	same := "ana@example.com"
	_, err = uc.UpdateMe(ctx, p, dto.UpdateProfileRequest{Email: &same})
	assert.NoError(t, err)

	me, err := uc.Me(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", me.Name)
}

// usersTrasLectura ejecuta afterGet una sola vez justo después de la primera lectura por ID,
// para intercalar otra operación entre la lectura y la escritura del caso de uso.
type usersTrasLectura struct {
	repository.UserRepository
	afterGet func()
}

func (r *usersTrasLectura) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := r.UserRepository.GetByID(ctx, id)
	if hook := r.afterGet; hook != nil {
		r.afterGet = nil
		hook()
	}
	return u, err
}

func TestUpdateMe_AprobacionIntercaladaConservaRolOwner(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	users := &usersTrasLectura{UserRepository: store}
	uc := auth.NewAuthUseCase(users, testJWT)

	ana := register(t, uc, "ana@example.com")
	admin := &entity.User{Email: "admin@example.com", Name: "Admin", Role: entity.RoleAdmin, IsActive: true}
	require.NoError(t, store.Create(ctx, admin))
	applicant := access.Principal{UserID: ana.ID, Role: entity.RoleUser}

	app, created, err := owner.NewApplicationUseCase(store.Applications()).Submit(ctx, applicant, dto.SubmitApplicationRequest{
		RestaurantName:      "La Fonda",
		BusinessAddress:     "Calle 1 #2-3",
		City:                "Medellín",
		GoogleMapsLink:      "https://maps.google.com/?q=la+fonda",
		ContactPersonName:   "Ana",
		ContactPhone:        "3001234567",
		ProofDocumentURL:    "https://cdn.example.com/pdf/doc.pdf",
		DeclarationAccepted: true,
	})
	require.NoError(t, err)
	require.True(t, created)

	reviews := review.NewReviewUseCase(store.Applications(), store, zerolog.Nop())
	users.afterGet = func() {
		_, err := reviews.Approve(ctx, access.Principal{UserID: admin.ID, Role: admin.Role}, app.ID, dto.ReviewRequest{})
		require.NoError(t, err)
	}

	name := "Ana María"
	out, err := uc.UpdateMe(ctx, applicant, dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", out.Name)
	assert.Equal(t, entity.RoleOwner, out.Role)

	stored, err := store.GetByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, stored.Role, "la edición de perfil no revierte la promoción")
	assert.Equal(t, "Ana María", stored.Name)
	rest, err := store.Restaurants().GetByOwner(ctx, ana.ID)
	require.NoError(t, err)
	assert.NotNil(t, rest)
}

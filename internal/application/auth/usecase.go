package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/validation"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
	"github.com/jhoicas/Restaurantes-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, refresh y perfil propio.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario con rol USER. El rol nunca viene del cliente.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := validation.NormalizeEmail(in.Email)
	if err := validation.Required("name", in.Name); err != nil {
		return nil, err
	}
	if err := validation.Email("email", email); err != nil {
		return nil, err
	}
	if err := validation.Password("password", in.Password); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, emailTaken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         entity.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validation.MaxLengths(
		validation.Field{Name: "name", Value: user.Name, Max: 255},
		validation.Field{Name: "email", Value: user.Email, Max: 254},
		validation.Field{Name: "phone", Value: user.Phone, Max: 20},
	); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, emailTaken()
		}
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Login verifica email/password y emite el par access + refresh.
// Credenciales incorrectas y cuenta inactiva responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validation.Required("email", in.Email); err != nil {
		return nil, err
	}
	if err := validation.Required("password", in.Password); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}

	accessTok, err := jwt.Generate(uc.jwtCfg.Secret, jwt.TokenAccess, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refreshTok, err := jwt.Generate(uc.jwtCfg.Secret, jwt.TokenRefresh, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Access:  accessTok,
		Refresh: refreshTok,
		User:    dto.NewUserResponse(user),
	}, nil
}

// Refresh canjea un refresh token vigente por un nuevo access token.
func (uc *AuthUseCase) Refresh(ctx context.Context, in dto.RefreshRequest) (*dto.RefreshResponse, error) {
	if err := validation.Required("refresh", in.Refresh); err != nil {
		return nil, err
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, in.Refresh, jwt.TokenRefresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	accessTok, err := jwt.Generate(uc.jwtCfg.Secret, jwt.TokenAccess, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Access: accessTok}, nil
}

// Authenticate valida un access token y recarga el usuario: el Principal lleva el rol vigente
// en base de datos, no el que se firmó en el token.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (access.Principal, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token, jwt.TokenAccess)
	if err != nil {
		return access.Principal{}, domain.ErrUnauthorized
	}
	user, err := uc.activeUser(ctx, claims.UserID)
	if err != nil {
		return access.Principal{}, err
	}
	return access.Principal{UserID: user.ID, Role: user.Role}, nil
}

// Me devuelve el perfil del llamador.
func (uc *AuthUseCase) Me(ctx context.Context, p access.Principal) (*dto.UserResponse, error) {
	user, err := uc.activeUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// UpdateMe actualiza nombre, email y teléfono del llamador. Rol y estado no se tocan:
// solo se escriben las columnas de perfil y la respuesta se relee tras guardar.
func (uc *AuthUseCase) UpdateMe(ctx context.Context, p access.Principal, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.activeUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	name, email, phone := user.Name, user.Email, user.Phone
	if in.Name != nil {
		if err := validation.Required("name", *in.Name); err != nil {
			return nil, err
		}
		name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		email = validation.NormalizeEmail(*in.Email)
		if err := validation.Email("email", email); err != nil {
			return nil, err
		}
		if !strings.EqualFold(email, user.Email) {
			other, err := uc.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != user.ID {
				return nil, emailTaken()
			}
		}
	}
	if err := validation.MaxLengths(
		validation.Field{Name: "name", Value: name, Max: 255},
		validation.Field{Name: "email", Value: email, Max: 254},
		validation.Field{Name: "phone", Value: phone, Max: 20},
	); err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateProfile(ctx, user.ID, name, email, phone); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, emailTaken()
		}
		return nil, err
	}
	return uc.Me(ctx, p)
}

func (uc *AuthUseCase) activeUser(ctx context.Context, id int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func emailTaken() error {
	return domain.NewValidationError("email", "user with this email already exists.")
}

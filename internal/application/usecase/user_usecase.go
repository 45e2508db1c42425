package usecase

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
)

// UserAdminUseCase gestión de usuarios reservada a SUPER_ADMIN.
// Nunca otorga SUPER_ADMIN y nunca borra usuarios (solo is_active).
type UserAdminUseCase struct {
	repo repository.UserRepository
}

// NewUserAdminUseCase construye el caso de uso con el puerto de persistencia.
func NewUserAdminUseCase(repo repository.UserRepository) *UserAdminUseCase {
	return &UserAdminUseCase{repo: repo}
}

// List devuelve usuarios del más nuevo al más antiguo, filtrando por nombre o email.
func (uc *UserAdminUseCase) List(ctx context.Context, p access.Principal, search string) ([]dto.UserResponse, error) {
	if !access.Can(p.Role, access.ManageUsers) {
		return nil, domain.ErrForbidden
	}
	users, err := uc.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// Create da de alta un usuario con rol asignable.
func (uc *UserAdminUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !access.Can(p.Role, access.ManageUsers) {
		return nil, domain.ErrForbidden
	}
	if err := validateNewUser(in); err != nil {
		return nil, err
	}
	if !entity.IsAssignableRole(in.Role) {
		return nil, domain.NewValidationError("role", "Invalid role for creation.")
	}
	return uc.create(ctx, in, in.Role)
}

// BootstrapSuperAdmin crea un SUPER_ADMIN desde la línea de comandos; no hay llamador autenticado.
func (uc *UserAdminUseCase) BootstrapSuperAdmin(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validateNewUser(in); err != nil {
		return nil, err
	}
	return uc.create(ctx, in, entity.RoleSuperAdmin)
}

func validateNewUser(in dto.CreateUserRequest) error {
	if err := validation.Required("name", in.Name); err != nil {
		return err
	}
	if err := validation.Email("email", validation.NormalizeEmail(in.Email)); err != nil {
		return err
	}
	return validation.Password("password", in.Password)
}

func (uc *UserAdminUseCase) create(ctx context.Context, in dto.CreateUserRequest, role string) (*dto.UserResponse, error) {
	email := validation.NormalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
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
		Role:         role,
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
	if err := uc.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, emailTaken()
		}
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Get obtiene un usuario por ID.
func (uc *UserAdminUseCase) Get(ctx context.Context, p access.Principal, id int64) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Update aplica una actualización parcial de nombre, email, teléfono, rol y estado.
// Perfil y acceso se escriben por separado y solo si vienen en la petición, para no
// revertir un rol cambiado entre la lectura y la escritura (p. ej. una aprobación).
func (uc *UserAdminUseCase) Update(ctx context.Context, p access.Principal, id int64, in dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, p, id)
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
		other, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, emailTaken()
		}
	}
	if in.Role != nil && !entity.IsAssignableRole(*in.Role) {
		return nil, domain.NewValidationError("role", "Invalid role.")
	}
	if err := validation.MaxLengths(
		validation.Field{Name: "name", Value: name, Max: 255},
		validation.Field{Name: "email", Value: email, Max: 254},
		validation.Field{Name: "phone", Value: phone, Max: 20},
	); err != nil {
		return nil, err
	}

	if in.Name != nil || in.Email != nil || in.Phone != nil {
		if err := uc.repo.UpdateProfile(ctx, user.ID, name, email, phone); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				return nil, emailTaken()
			}
			return nil, err
		}
	}
	if in.Role != nil || in.IsActive != nil {
		if err := uc.repo.UpdateAccess(ctx, user.ID, in.Role, in.IsActive); err != nil {
			return nil, err
		}
	}
	return uc.Get(ctx, p, id)
}

func (uc *UserAdminUseCase) load(ctx context.Context, p access.Principal, id int64) (*entity.User, error) {
	if !access.Can(p.Role, access.ManageUsers) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func emailTaken() error {
	return domain.NewValidationError("email", "user with this email already exists.")
}

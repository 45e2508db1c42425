package entity

import "time"

// Roles válidos para User.
const (
	RoleUser       = "USER"
	RoleOwner      = "OWNER"
	RoleAuditor    = "AUDITOR"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// AssignableRoles roles que un super-admin puede otorgar por API (nunca SUPER_ADMIN).
var AssignableRoles = []string{RoleUser, RoleOwner, RoleAuditor, RoleAdmin}

// IsValidRole informa si role es uno de los cinco roles del sistema.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleOwner, RoleAuditor, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAssignableRole informa si role puede asignarse desde la administración de usuarios.
func IsAssignableRole(role string) bool {
	for _, r := range AssignableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa una identidad del sistema. El email es el identificador de login.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Phone        string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

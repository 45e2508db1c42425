// Package access concentra la autorización por rol: cada endpoint declara la capacidad
// que necesita y Can decide con el rol del llamador, antes de ejecutar el handler.
package access

import "github.com/jhoicas/Restaurantes-api/internal/domain/entity"

// Capability acción protegida del sistema.
type Capability string

const (
	// Cualquier usuario autenticado.
	ViewOwnProfile    Capability = "view_own_profile"
	SubmitApplication Capability = "submit_application"
	UploadFiles       Capability = "upload_files"

	ReviewApplications  Capability = "review_applications"
	ManageOwnRestaurant Capability = "manage_own_restaurant"
	ManageUsers         Capability = "manage_users"
)

var authenticated = []string{
	entity.RoleUser, entity.RoleOwner, entity.RoleAuditor, entity.RoleAdmin, entity.RoleSuperAdmin,
}

var grants = map[Capability][]string{
	ViewOwnProfile:      authenticated,
	SubmitApplication:   authenticated,
	UploadFiles:         authenticated,
	ReviewApplications:  {entity.RoleAdmin, entity.RoleSuperAdmin},
	ManageOwnRestaurant: {entity.RoleOwner},
	ManageUsers:         {entity.RoleSuperAdmin},
}

// Can informa si role tiene la capacidad c. Capacidades desconocidas se deniegan.
func Can(role string, c Capability) bool {
	for _, r := range grants[c] {
		if r == role {
			return true
		}
	}
	return false
}

// Principal identidad autenticada de la petición en curso. Se pasa explícitamente a los casos de uso.
type Principal struct {
	UserID int64
	Role   string
}

// IsZero informa si no hay usuario autenticado.
func (p Principal) IsZero() bool {
	return p.UserID == 0
}

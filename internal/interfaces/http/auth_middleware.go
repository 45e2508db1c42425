package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
)

// LocalPrincipal clave de c.Locals donde AuthMiddleware deja el access.Principal.
const LocalPrincipal = "principal"

// principalLoader valida un access token y devuelve la identidad vigente.
// Lo implementa *auth.AuthUseCase.
type principalLoader interface {
	Authenticate(ctx context.Context, token string) (access.Principal, error)
}

// AuthMiddleware valida el Bearer Token y carga el Principal (rol leído de BD) en c.Locals.
func AuthMiddleware(loader principalLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return domain.ErrUnauthorized
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return domain.ErrUnauthorized
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return domain.ErrUnauthorized
		}
		p, err := loader.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return err
		}
		c.Locals(LocalPrincipal, p)
		return c.Next()
	}
}

// RequireCapability corta la petición con 403 si el rol del llamador no tiene la capacidad c.
// Debe usarse después de AuthMiddleware.
func RequireCapability(cap access.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p.IsZero() {
			return domain.ErrUnauthorized
		}
		if !access.Can(p.Role, cap) {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}

// GetPrincipal devuelve la identidad autenticada; cero si la ruta es pública.
func GetPrincipal(c *fiber.Ctx) access.Principal {
	p, _ := c.Locals(LocalPrincipal).(access.Principal)
	return p
}

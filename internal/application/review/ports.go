package review

import (
	"context"

	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
)

// ReviewTxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a esa tx.
// Si fn devuelve error no queda nada persistido (solicitud, rol ni restaurante).
type ReviewTxRunner interface {
	RunReview(ctx context.Context, fn func(
		appRepo repository.OwnerApplicationRepository,
		userRepo repository.UserRepository,
		restaurantRepo repository.RestaurantRepository,
	) error) error
}

// ApplicationPDFGenerator puerto para generar el expediente PDF de una solicitud.
type ApplicationPDFGenerator interface {
	Generate(app *entity.ApplicationWithUsers) ([]byte, error)
}

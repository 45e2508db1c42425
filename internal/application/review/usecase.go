package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
	"github.com/jhoicas/Restaurantes-api/internal/domain/entity"
	"github.com/jhoicas/Restaurantes-api/internal/domain/repository"
)

// ReviewUseCase revisión de solicitudes por ADMIN / SUPER_ADMIN.
// Approve y Reject son la única operación que cruza agregados: corren en una sola transacción.
type ReviewUseCase struct {
	appRepo repository.OwnerApplicationRepository
	tx      ReviewTxRunner
	log     zerolog.Logger
	now     func() time.Time
}

// NewReviewUseCase construye el caso de uso de revisión.
func NewReviewUseCase(appRepo repository.OwnerApplicationRepository, tx ReviewTxRunner, log zerolog.Logger) *ReviewUseCase {
	return &ReviewUseCase{
		appRepo: appRepo,
		tx:      tx,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// List devuelve todas las solicitudes, de la más reciente a la más antigua.
func (uc *ReviewUseCase) List(ctx context.Context, p access.Principal) ([]dto.ApplicationListItem, error) {
	if !access.Can(p.Role, access.ReviewApplications) {
		return nil, domain.ErrForbidden
	}
	apps, err := uc.appRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApplicationListItem, 0, len(apps))
	for _, a := range apps {
		out = append(out, dto.NewApplicationListItem(a))
	}
	return out, nil
}

// Detail devuelve la solicitud con datos del solicitante y del revisor.
func (uc *ReviewUseCase) Detail(ctx context.Context, p access.Principal, id int64) (*dto.ApplicationResponse, error) {
	app, err := uc.load(ctx, p, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewApplicationResponse(app)
	return &out, nil
}

// Approve aprueba una solicitud PENDING: marca la solicitud, promueve al solicitante a OWNER
// y crea su restaurante. Cualquier fallo deshace los tres cambios.
func (uc *ReviewUseCase) Approve(ctx context.Context, p access.Principal, id int64, in dto.ReviewRequest) (*dto.ApproveResponse, error) {
	if !access.Can(p.Role, access.ReviewApplications) {
		return nil, domain.ErrForbidden
	}
	var created *entity.Restaurant
	err := uc.tx.RunReview(ctx, func(
		appRepo repository.OwnerApplicationRepository,
		userRepo repository.UserRepository,
		restaurantRepo repository.RestaurantRepository,
	) error {
		app, err := lockPending(ctx, appRepo, id)
		if err != nil {
			return err
		}
		now := uc.now()
		app.MarkReviewed(entity.ApplicationApproved, strings.TrimSpace(in.ReviewNotes), p.UserID, now)
		if err := appRepo.UpdateReview(ctx, app); err != nil {
			return err
		}
		if err := userRepo.UpdateRole(ctx, app.UserID, entity.RoleOwner); err != nil {
			return err
		}

		existing, err := restaurantRepo.GetByOwner(ctx, app.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewConflictError("applicant already owns a restaurant")
		}
		r := entity.NewRestaurantFromApplication(app, now)
		if err := restaurantRepo.Create(ctx, r); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.NewConflictError("applicant already owns a restaurant")
			}
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("application_id", id).Int64("reviewer_id", p.UserID).Msg("aprobación no aplicada")
		return nil, err
	}
	uc.log.Info().
		Int64("application_id", id).
		Int64("reviewer_id", p.UserID).
		Int64("restaurant_id", created.ID).
		Msg("solicitud aprobada")

	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("solicitud %d no encontrada tras aprobar", id)
	}
	return &dto.ApproveResponse{
		Application: dto.NewApplicationResponse(app),
		Restaurant:  dto.RestaurantRef{ID: created.ID, Name: created.Name},
	}, nil
}

// Reject rechaza una solicitud PENDING. No toca usuario ni restaurantes.
func (uc *ReviewUseCase) Reject(ctx context.Context, p access.Principal, id int64, in dto.ReviewRequest) (*dto.ApplicationResponse, error) {
	if !access.Can(p.Role, access.ReviewApplications) {
		return nil, domain.ErrForbidden
	}
	err := uc.tx.RunReview(ctx, func(
		appRepo repository.OwnerApplicationRepository,
		_ repository.UserRepository,
		_ repository.RestaurantRepository,
	) error {
		app, err := lockPending(ctx, appRepo, id)
		if err != nil {
			return err
		}
		app.MarkReviewed(entity.ApplicationRejected, strings.TrimSpace(in.ReviewNotes), p.UserID, uc.now())
		return appRepo.UpdateReview(ctx, app)
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("application_id", id).Int64("reviewer_id", p.UserID).Msg("rechazo no aplicado")
		return nil, err
	}
	uc.log.Info().Int64("application_id", id).Int64("reviewer_id", p.UserID).Msg("solicitud rechazada")

	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("solicitud %d no encontrada tras rechazar", id)
	}
	out := dto.NewApplicationResponse(app)
	return &out, nil
}

func (uc *ReviewUseCase) load(ctx context.Context, p access.Principal, id int64) (*entity.ApplicationWithUsers, error) {
	if !access.Can(p.Role, access.ReviewApplications) {
		return nil, domain.ErrForbidden
	}
	app, err := uc.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

// lockPending bloquea la fila y exige estado PENDING.
func lockPending(ctx context.Context, appRepo repository.OwnerApplicationRepository, id int64) (*entity.OwnerApplication, error) {
	app, err := appRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if !app.IsPending() {
		return nil, domain.NewConflictError("application is already %s", app.Status)
	}
	return app, nil
}

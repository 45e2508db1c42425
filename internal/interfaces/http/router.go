package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Restaurantes-api/internal/application/auth"
	"github.com/jhoicas/Restaurantes-api/internal/application/owner"
	"github.com/jhoicas/Restaurantes-api/internal/application/restaurant"
	"github.com/jhoicas/Restaurantes-api/internal/application/review"
	"github.com/jhoicas/Restaurantes-api/internal/application/upload"
	"github.com/jhoicas/Restaurantes-api/internal/application/usecase"
	"github.com/jhoicas/Restaurantes-api/internal/domain/access"
	"github.com/jhoicas/Restaurantes-api/internal/infrastructure/metrics"
)

// bodyLimit deja margen sobre upload.MaxFileSize para el resto del multipart;
// el límite de negocio lo valida el caso de uso.
const bodyLimit = int(upload.MaxFileSize) + 5*1024*1024

// NewFiberConfig configuración de la app Fiber compartida por main y los tests.
func NewFiberConfig(appName string) fiber.Config {
	return fiber.Config{
		AppName:       appName,
		ErrorHandler:  ErrorHandler,
		StrictRouting: false,
		BodyLimit:     bodyLimit,
		ReadTimeout:   time.Second * 60,
		WriteTimeout:  time.Second * 60,
		IdleTimeout:   time.Second * 60,
	}
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	OwnerUC      *owner.ApplicationUseCase
	ReviewUC     *review.ReviewUseCase
	ReviewPDF    *review.PDFUseCase
	RestaurantUC *restaurant.RestaurantUseCase
	UserAdminUC  *usecase.UserAdminUseCase
	UploadUC     *upload.UploadUseCase

	Log     zerolog.Logger
	Metrics *metrics.Registry // nil desactiva /metrics

	ServiceName        string
	MediaURL           string
	AllowedHosts       []string
	CORSAllowedOrigins []string
}

// Router registra middlewares globales y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	var (
		observer  requestObserver
		reviewRec reviewRecorder
		uploadRec uploadRecorder
	)
	if deps.Metrics != nil {
		observer, reviewRec, uploadRec = deps.Metrics, deps.Metrics, deps.Metrics
	}

	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log, observer))
	app.Use(recover.New())
	if len(deps.CORSAllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(deps.CORSAllowedOrigins, ","),
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
			AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		}))
	}
	app.Use(AllowedHosts(deps.AllowedHosts))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName, "media_url": deps.MediaURL})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")
	authn := AuthMiddleware(deps.AuthUC)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Get("/me", authn, RequireCapability(access.ViewOwnProfile), authHandler.Me)
	authGroup.Patch("/me", authn, RequireCapability(access.ViewOwnProfile), authHandler.UpdateMe)

	// Solicitudes de propietario y subida de archivos
	ownerHandler := NewOwnerHandler(deps.OwnerUC)
	uploadHandler := NewUploadHandler(deps.UploadUC, uploadRec)
	ownerGroup := api.Group("/owner", authn)
	ownerGroup.Post("/apply", RequireCapability(access.SubmitApplication), ownerHandler.Apply)
	ownerGroup.Get("/application-status", RequireCapability(access.SubmitApplication), ownerHandler.Status)
	ownerGroup.Post("/upload", RequireCapability(access.UploadFiles), uploadHandler.Upload)

	// Revisión (ADMIN, SUPER_ADMIN)
	adminHandler := NewAdminHandler(deps.ReviewUC, deps.ReviewPDF, reviewRec)
	adminGroup := api.Group("/admin/owner-applications", authn, RequireCapability(access.ReviewApplications))
	adminGroup.Get("/", adminHandler.List)
	adminGroup.Get("/:id", adminHandler.Detail)
	adminGroup.Patch("/:id/approve", adminHandler.Approve)
	adminGroup.Patch("/:id/reject", adminHandler.Reject)
	adminGroup.Get("/:id/pdf", adminHandler.PDF)

	// Restaurantes: /me antes de /:id
	restaurantHandler := NewRestaurantHandler(deps.RestaurantUC)
	restaurants := api.Group("/restaurants")
	mine := RequireCapability(access.ManageOwnRestaurant)
	restaurants.Get("/me", authn, mine, restaurantHandler.Mine)
	restaurants.Patch("/me", authn, mine, restaurantHandler.UpdateMine)
	restaurants.Post("/me/photos", authn, mine, restaurantHandler.AddPhoto)
	restaurants.Delete("/me/photos/:id", authn, mine, restaurantHandler.DeletePhoto)
	restaurants.Get("/", restaurantHandler.List)
	restaurants.Get("/:id", restaurantHandler.Get)

	// Usuarios (SUPER_ADMIN)
	superHandler := NewSuperAdminHandler(deps.UserAdminUC)
	users := api.Group("/superadmin/users", authn, RequireCapability(access.ManageUsers))
	users.Get("/", superHandler.List)
	users.Post("/create", superHandler.Create)
	users.Get("/:id", superHandler.Get)
	users.Patch("/:id", superHandler.Update)
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurantes-api/docs"
	"github.com/jhoicas/Restaurantes-api/internal/application/auth"
	"github.com/jhoicas/Restaurantes-api/internal/application/owner"
	"github.com/jhoicas/Restaurantes-api/internal/application/restaurant"
	"github.com/jhoicas/Restaurantes-api/internal/application/review"
	"github.com/jhoicas/Restaurantes-api/internal/application/upload"
	"github.com/jhoicas/Restaurantes-api/internal/application/usecase"
	"github.com/jhoicas/Restaurantes-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Restaurantes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Restaurantes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Restaurantes-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Restaurantes-api/internal/interfaces/http"
	"github.com/jhoicas/Restaurantes-api/pkg/config"
	"github.com/jhoicas/Restaurantes-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.DatabaseURL, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	appRepo := postgres.NewOwnerApplicationRepository(pool)
	restaurantRepo := postgres.NewRestaurantRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
		Issuer:     cfg.JWT.Issuer,
	})
	ownerUC := owner.NewApplicationUseCase(appRepo)
	reviewUC := review.NewReviewUseCase(appRepo, txRunner, log.Component("review"))
	restaurantUC := restaurant.NewRestaurantUseCase(restaurantRepo)
	userAdminUC := usecase.NewUserAdminUseCase(userRepo)

	// PDF: expediente de la solicitud para auditoría
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	reviewPDFUC := review.NewPDFUseCase(appRepo, pdfGenerator)

	objectStore := storage.NewSupabaseStore(cfg.Storage.BaseURL, cfg.Storage.ServiceKey, cfg.Storage.Bucket, cfg.Storage.Timeout)
	if !cfg.Storage.Configured() {
		log.Warn().Msg("SUPABASE_URL o SUPABASE_SERVICE_KEY sin definir: /api/owner/upload responderá 500")
	}
	uploadUC := upload.NewUploadUseCase(objectStore, log.Component("upload"))

	app := fiber.New(httpRouter.NewFiberConfig(cfg.App.Name))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:             authUC,
		OwnerUC:            ownerUC,
		ReviewUC:           reviewUC,
		ReviewPDF:          reviewPDFUC,
		RestaurantUC:       restaurantUC,
		UserAdminUC:        userAdminUC,
		UploadUC:           uploadUC,
		Log:                log.Component("http"),
		Metrics:            metrics.NewRegistry(),
		ServiceName:        cfg.App.Name,
		MediaURL:           cfg.App.MediaURL,
		AllowedHosts:       cfg.HTTP.AllowedHosts,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

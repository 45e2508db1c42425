// createsuperadmin crea la cuenta SUPER_ADMIN inicial; la API nunca otorga ese rol.
//
// Uso: go run ./cmd/createsuperadmin -email root@example.com -name "Root" [-phone 300...]
// La contraseña se lee de SUPERADMIN_PASSWORD o, si no está definida, de la flag -password.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Restaurantes-api/internal/application/dto"
	"github.com/jhoicas/Restaurantes-api/internal/application/usecase"
	"github.com/jhoicas/Restaurantes-api/internal/domain"
	"github.com/jhoicas/Restaurantes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Restaurantes-api/pkg/config"
	"github.com/jhoicas/Restaurantes-api/pkg/logger"
)

func main() {
	var in dto.CreateUserRequest
	flag.StringVar(&in.Email, "email", "", "email del super-admin (obligatorio)")
	flag.StringVar(&in.Name, "name", "", "nombre (obligatorio)")
	flag.StringVar(&in.Phone, "phone", "", "teléfono")
	flag.StringVar(&in.Password, "password", "", "contraseña (preferir SUPERADMIN_PASSWORD)")
	flag.Parse()
	if pw := os.Getenv("SUPERADMIN_PASSWORD"); pw != "" {
		in.Password = pw
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "createsuperadmin"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.DatabaseURL, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := usecase.NewUserAdminUseCase(postgres.NewUserRepository(pool))
	user, err := uc.BootstrapSuperAdmin(ctx, in)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", ve.Field, ve.Message)
			pool.Close()
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("crear super-admin")
	}
	log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("super-admin creado")
}

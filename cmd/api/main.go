package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/FireSafety-api/internal/application/auth"
	"github.com/jhoicas/FireSafety-api/internal/application/equipment"
	"github.com/jhoicas/FireSafety-api/internal/application/usecase"
	"github.com/jhoicas/FireSafety-api/internal/infrastructure/cache"
	"github.com/jhoicas/FireSafety-api/internal/infrastructure/notify"
	"github.com/jhoicas/FireSafety-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/FireSafety-api/internal/interfaces/http"
	"github.com/jhoicas/FireSafety-api/pkg/config"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, postgres.MigrateUp, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	typeRepo := cache.NewEquipmentTypeCache(postgres.NewEquipmentTypeRepository(pool), cfg.Cache.EquipmentTypeTTL)
	instanceRepo := postgres.NewEquipmentInstanceRepository(pool)
	queryRepo := postgres.NewEquipmentInstanceQueryRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	ticketRepo := postgres.NewMaintenanceTicketRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones de asignación: webhook si está configurado, si no solo log.
	dispatcher := notify.NewDispatcher(cfg.Notify.WebhookURL, cfg.Notify.Timeout, log)

	equipmentCfg := equipment.Config{
		HorizonDays:   cfg.Compliance.HorizonDays,
		Timeout:       cfg.DB.QueryTimeout,
		NumberRetries: cfg.Compliance.AssignmentNumberRetries,
	}
	instanceUC := equipment.NewInstanceUseCase(txRunner, instanceRepo, typeRepo, equipmentCfg, log)
	assignmentUC := equipment.NewAssignmentUseCase(txRunner, clientRepo, dispatcher, equipmentCfg, log)
	queryUC := equipment.NewQueryUseCase(queryRepo, assignmentRepo, ticketRepo, equipmentCfg, log)
	typeUC := usecase.NewEquipmentTypeUseCase(typeRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FireSafety API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		EquipmentTypeUC: typeUC,
		ClientUC:        clientUC,
		InstanceUC:      instanceUC,
		QueryUC:         queryUC,
		AssignmentUC:    assignmentUC,
		JWTSecret:       cfg.JWT.Secret,
		RateLimitRPS:    cfg.HTTP.RateLimitRPS,
		RateLimitBurst:  cfg.HTTP.RateLimitBurst,
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
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/bluevelvet-api/docs"
	"github.com/jhoicas/bluevelvet-api/internal/application/auth"
	"github.com/jhoicas/bluevelvet-api/internal/application/ports"
	"github.com/jhoicas/bluevelvet-api/internal/application/usecase"
	"github.com/jhoicas/bluevelvet-api/internal/domain/repository"
	"github.com/jhoicas/bluevelvet-api/internal/infrastructure/export"
	"github.com/jhoicas/bluevelvet-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/bluevelvet-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bluevelvet-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bluevelvet-api/internal/interfaces/http"
	"github.com/jhoicas/bluevelvet-api/internal/interfaces/web"
	"github.com/jhoicas/bluevelvet-api/pkg/config"
	"github.com/jhoicas/bluevelvet-api/pkg/logger"
)

// @title                       Blue Velvet API
// @version                     1.0
// @description                 Registro/login de usuarios y catálogo jerárquico de categorías de la tienda Blue Velvet.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		categoryRepo repository.CategoryRepository
		userRepo     repository.UserRepository
		txRunner     ports.TxRunner
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		categoryRepo, userRepo, txRunner = store.Categories(), store.Users(), store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		categoryRepo = postgres.NewCategoryRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	authUC := auth.NewAuthUseCase(userRepo, txRunner, auth.AuthOptions{AllowAdminSignup: cfg.Auth.AllowAdminSignup})
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, txRunner)

	// Exportación: json/csv/xml + reporte PDF
	writers := append(export.Writers(), infrapdf.NewCategoryReport())
	exportUC := usecase.NewCategoryExportUseCase(categoryUC, writers...)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog()))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.FilePath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Blue Velvet API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.FilePath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	web.Register(app)
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:   authUC,
		Users:    usecase.NewUserUseCase(userRepo),
		Category: categoryUC,
		Export:   exportUC,
		JWT: httpRouter.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
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

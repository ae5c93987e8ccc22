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
	"github.com/jhoicas/inventario-activos/internal/application/auth"
	"github.com/jhoicas/inventario-activos/internal/application/inventario"
	"github.com/jhoicas/inventario-activos/internal/application/usecase"
	"github.com/jhoicas/inventario-activos/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/inventario-activos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-activos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-activos/internal/interfaces/http"
	"github.com/jhoicas/inventario-activos/pkg/config"
	"github.com/jhoicas/inventario-activos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productoRepo := postgres.NewProductoRepository(pool)
	movimientoRepo := postgres.NewMovimientoRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	marcaRepo := postgres.NewMarcaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de informes opcional: sin REDIS_ADDR la app funciona igual,
	// generando el informe en cada petición.
	var informeCache inventario.InformeCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisCache.Close()
		informeCache = redisCache
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: caché de informes deshabilitado")
	}

	ledger := inventario.NewLedger(txRunner, informeCache, log)
	inventarioSvc := inventario.NewService(
		ledger, txRunner, productoRepo, reporteRepo, informeCache,
		inventario.Config{
			StockMinimo: cfg.Inventario.StockMinimo,
			InformeTTL:  cfg.Inventario.InformeTTL,
		},
		log,
	)

	productoUC := usecase.NewProductoUseCase(productoRepo, categoriaRepo, marcaRepo, movimientoRepo, cfg.Inventario, log)
	categoriaUC := usecase.NewCategoriaUseCase(categoriaRepo, productoRepo)
	marcaUC := usecase.NewMarcaUseCase(marcaRepo, productoRepo)
	movimientoUC := usecase.NewMovimientoUseCase(movimientoRepo)
	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoInformeGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El spec se regenera
	// con swag init; sin el archivo el servidor arranca igual, solo sin UI.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Inventario de Activos API",
		}))
	} else {
		log.Warn().Str("ruta", swaggerSpec).Msg("spec de swagger no encontrado: UI deshabilitada")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductoUC:   productoUC,
		CategoriaUC:  categoriaUC,
		MarcaUC:      marcaUC,
		MovimientoUC: movimientoUC,
		Inventario:   inventarioSvc,
		PDF:          pdfGenerator,
		JWTSecret:    cfg.JWT.Secret,
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

// Seeder de datos de demostración: usuario admin, categorías, marcas y
// productos con movimientos iniciales. Idempotente a nivel de email y número
// de inventario: si ya existen, se omiten.
package main

import (
	"context"
	"errors"

	"github.com/jhoicas/inventario-activos/internal/application/auth"
	"github.com/jhoicas/inventario-activos/internal/application/dto"
	"github.com/jhoicas/inventario-activos/internal/application/inventario"
	"github.com/jhoicas/inventario-activos/internal/application/usecase"
	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-activos/pkg/config"
	"github.com/jhoicas/inventario-activos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

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
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productoUC := usecase.NewProductoUseCase(productoRepo, categoriaRepo, marcaRepo, movimientoRepo, cfg.Inventario, log)
	categoriaUC := usecase.NewCategoriaUseCase(categoriaRepo, productoRepo)
	marcaUC := usecase.NewMarcaUseCase(marcaRepo, productoRepo)
	ledger := inventario.NewLedger(txRunner, nil, log)

	// Usuario administrador inicial.
	admin, err := authUC.Register(dto.RegisterRequest{
		Email:    "admin@inventario.local",
		Password: "admin12345",
		Nombre:   "Administrador",
		Rol:      entity.RolAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailYaRegistrado):
		log.Info().Msg("usuario admin ya existe, se omite")
	case err != nil:
		log.Fatal().Err(err).Msg("crear usuario admin")
	default:
		log.Info().Str("email", admin.Email).Msg("usuario admin creado")
	}

	categorias := map[string]string{}
	for _, nombre := range []string{"Computadores", "Periféricos", "Redes", "Mobiliario"} {
		cat, err := categoriaUC.Create(dto.CreateCategoriaRequest{Nombre: nombre})
		if err != nil {
			log.Fatal().Err(err).Str("categoria", nombre).Msg("crear categoría")
		}
		categorias[nombre] = cat.ID
	}

	marcas := map[string]string{}
	for _, nombre := range []string{"Dell", "HP", "Logitech", "Cisco"} {
		marca, err := marcaUC.Create(dto.CreateMarcaRequest{Nombre: nombre})
		if err != nil {
			log.Fatal().Err(err).Str("marca", nombre).Msg("crear marca")
		}
		marcas[nombre] = marca.ID
	}

	productos := []struct {
		req      dto.CreateProductoRequest
		cantidad int
	}{
		{
			req: dto.CreateProductoRequest{
				Nombre:      "Portátil Latitude 5440",
				NumeroSerie: "DL-5440-0001",
				Modelo:      "Latitude 5440",
				Ubicacion:   "Bodega principal",
				CategoriaID: categorias["Computadores"],
				MarcaID:     marcas["Dell"],
			},
			cantidad: 12,
		},
		{
			req: dto.CreateProductoRequest{
				Nombre:      "Monitor 24'' E24328H",
				Modelo:      "E24328H",
				Ubicacion:   "Bodega principal",
				CategoriaID: categorias["Periféricos"],
				MarcaID:     marcas["Dell"],
			},
			cantidad: 30,
		},
		{
			req: dto.CreateProductoRequest{
				Nombre:      "Switch Catalyst 9200 24p",
				NumeroSerie: "CS-9200-0007",
				Modelo:      "C9200-24T",
				Ubicacion:   "Cuarto de comunicaciones",
				CategoriaID: categorias["Redes"],
				MarcaID:     marcas["Cisco"],
			},
			cantidad: 4,
		},
		{
			req: dto.CreateProductoRequest{
				Nombre:      "Mouse inalámbrico MX Master 3S",
				Modelo:      "MX Master 3S",
				Ubicacion:   "Almacén de periféricos",
				CategoriaID: categorias["Periféricos"],
				MarcaID:     marcas["Logitech"],
			},
			cantidad: 50,
		},
	}

	for _, p := range productos {
		creado, err := productoUC.Create(p.req)
		if err != nil {
			log.Fatal().Err(err).Str("producto", p.req.Nombre).Msg("crear producto")
		}
		// El stock inicial entra por el libro, no por asignación directa,
		// para que el historial arranque completo.
		if _, err := ledger.Registrar(ctx, creado.ID, entity.TipoEntrada, p.cantidad, "Carga inicial de inventario"); err != nil {
			log.Fatal().Err(err).Str("producto", p.req.Nombre).Msg("registrar entrada inicial")
		}
		log.Info().
			Str("producto", creado.Nombre).
			Str("numero_inventario", creado.NumeroInventario).
			Int("cantidad", p.cantidad).
			Msg("producto sembrado")
	}

	log.Info().Msg("seed completado")
}

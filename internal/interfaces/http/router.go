package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-activos/internal/application/auth"
	"github.com/jhoicas/inventario-activos/internal/application/inventario"
	"github.com/jhoicas/inventario-activos/internal/application/usecase"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductoUC   *usecase.ProductoUseCase
	CategoriaUC  *usecase.CategoriaUseCase
	MarcaUC      *usecase.MarcaUseCase
	MovimientoUC *usecase.MovimientoUseCase
	Inventario   *inventario.Service
	PDF          InformePDFGenerator
	JWTSecret    string
}

// Router registra las rutas de la API. Lectura para cualquier usuario
// autenticado; mutaciones solo para admin y almacenista; la vía administrativa
// de stock y el registro de usuarios, solo admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	escritura := RequireRol(entity.RolAdmin, entity.RolAlmacenista)
	soloAdmin := RequireRol(entity.RolAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), soloAdmin, authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos
	productoHandler := NewProductoHandler(deps.ProductoUC, deps.Inventario)
	protected.Get("/estados", productoHandler.Estados)
	productos := protected.Group("/productos")
	productos.Get("/estados", productoHandler.Estados) // antes de /:id
	productos.Get("/", productoHandler.List)
	productos.Post("/", escritura, productoHandler.Create)
	productos.Get("/:id", productoHandler.GetByID)
	productos.Put("/:id", escritura, productoHandler.Update)
	productos.Delete("/:id", escritura, productoHandler.Delete)
	productos.Post("/:id/restaurar", escritura, productoHandler.Restore)
	productos.Patch("/:id/estado", escritura, productoHandler.CambiarEstado)
	productos.Put("/:id/cantidad", soloAdmin, productoHandler.AsignarCantidad)
	productos.Get("/:id/movimientos", productoHandler.Historial)

	// Movimientos
	movimientoHandler := NewMovimientoHandler(deps.Inventario, deps.MovimientoUC)
	productos.Post("/:id/movimientos", escritura, movimientoHandler.Registrar)
	productos.Post("/:id/ajuste", escritura, movimientoHandler.Ajustar)
	movimientos := protected.Group("/movimientos")
	movimientos.Get("/", movimientoHandler.List)
	movimientos.Get("/:id", movimientoHandler.GetByID)
	movimientos.Post("/:id/revertir", escritura, movimientoHandler.Revertir)

	// Categorías
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	categorias := protected.Group("/categorias")
	categorias.Get("/", categoriaHandler.List)
	categorias.Post("/", escritura, categoriaHandler.Create)
	categorias.Get("/:id", categoriaHandler.GetByID)
	categorias.Put("/:id", escritura, categoriaHandler.Update)
	categorias.Delete("/:id", escritura, categoriaHandler.Delete)

	// Marcas
	marcaHandler := NewMarcaHandler(deps.MarcaUC)
	marcas := protected.Group("/marcas")
	marcas.Get("/", marcaHandler.List)
	marcas.Post("/", escritura, marcaHandler.Create)
	marcas.Get("/:id", marcaHandler.GetByID)
	marcas.Put("/:id", escritura, marcaHandler.Update)
	marcas.Delete("/:id", escritura, marcaHandler.Delete)

	// Reportes
	reporteHandler := NewReporteHandler(deps.Inventario, deps.PDF)
	reportes := protected.Group("/reportes")
	reportes.Get("/stock", reporteHandler.InformeStock)
	reportes.Get("/stock/pdf", reporteHandler.InformeStockPDF)
}

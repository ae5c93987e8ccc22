package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-activos/internal/application/dto"
	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
	"github.com/jhoicas/inventario-activos/pkg/config"
	"github.com/jhoicas/inventario-activos/pkg/logger"
	"github.com/jhoicas/inventario-activos/pkg/texto"
)

// ProductoUseCase casos de uso CRUD y de consulta para productos. Las mutaciones
// de stock no pasan por aquí: van por el servicio de inventario.
type ProductoUseCase struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	marcaRepo     repository.MarcaRepository
	movRepo       repository.MovimientoRepository
	stockMinimo   int
	log           *logger.Logger
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(
	repo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	marcaRepo repository.MarcaRepository,
	movRepo repository.MovimientoRepository,
	cfg config.InventarioConfig,
	log *logger.Logger,
) *ProductoUseCase {
	minimo := cfg.StockMinimo
	if minimo <= 0 {
		minimo = 5
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ProductoUseCase{
		repo:          repo,
		categoriaRepo: categoriaRepo,
		marcaRepo:     marcaRepo,
		movRepo:       movRepo,
		stockMinimo:   minimo,
		log:           log,
	}
}

// Create da de alta un producto. Si no viene número de inventario se genera uno
// con formato INV-<año>-NNNN sobre la secuencia total (incluidos eliminados);
// siempre se almacena en mayúsculas y es inmutable a partir de aquí.
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	est := estado.Disponible
	if in.Estado != "" {
		parsed, err := estado.Parse(in.Estado)
		if err != nil {
			return nil, err
		}
		est = parsed
	}
	if in.Cantidad < 0 {
		return nil, domain.ErrCantidadInvalida
	}

	numero := strings.ToUpper(strings.TrimSpace(in.NumeroInventario))
	if numero == "" {
		total, err := uc.repo.Total()
		if err != nil {
			return nil, err
		}
		numero = fmt.Sprintf("INV-%d-%04d", time.Now().Year(), total+1)
	}

	if err := uc.validarReferencias(in.CategoriaID, in.MarcaID); err != nil {
		return nil, err
	}

	now := time.Now()
	producto := &entity.Producto{
		ID:               uuid.New().String(),
		NumeroSerie:      strings.TrimSpace(in.NumeroSerie),
		NumeroInventario: numero,
		Nombre:           strings.TrimSpace(in.Nombre),
		Descripcion:      in.Descripcion,
		Cantidad:         in.Cantidad,
		Modelo:           in.Modelo,
		Ubicacion:        in.Ubicacion,
		Estado:           est,
		CategoriaID:      in.CategoriaID,
		MarcaID:          in.MarcaID,
		Metadata:         limpiarMetadata(in.Metadata),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("producto_id", producto.ID).
		Str("numero_inventario", producto.NumeroInventario).
		Str("estado", string(producto.Estado)).
		Int("cantidad", producto.Cantidad).
		Msg("producto creado")
	return uc.toResponse(producto), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(producto), nil
}

// Update actualiza los campos editables. Cantidad se maneja vía movimientos y
// numero_inventario es inmutable; un estado en baja bloquea cualquier edición y
// un cambio de estado por esta vía debe ser una transición legal.
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	if !producto.Estado.PermiteModificaciones() {
		return nil, fmt.Errorf("%w: %s", domain.ErrEstadoNoPermite, producto.Estado.Label())
	}

	if in.NumeroSerie != nil {
		producto.NumeroSerie = strings.TrimSpace(*in.NumeroSerie)
	}
	if in.Nombre != nil {
		producto.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Modelo != nil {
		producto.Modelo = *in.Modelo
	}
	if in.Ubicacion != nil {
		producto.Ubicacion = *in.Ubicacion
	}
	if in.CategoriaID != nil || in.MarcaID != nil {
		categoriaID := producto.CategoriaID
		marcaID := producto.MarcaID
		if in.CategoriaID != nil {
			categoriaID = *in.CategoriaID
		}
		if in.MarcaID != nil {
			marcaID = *in.MarcaID
		}
		if err := uc.validarReferencias(categoriaID, marcaID); err != nil {
			return nil, err
		}
		producto.CategoriaID = categoriaID
		producto.MarcaID = marcaID
	}
	if in.Metadata != nil {
		producto.Metadata = limpiarMetadata(in.Metadata)
	}
	if in.Estado != nil && *in.Estado != string(producto.Estado) {
		nuevo, err := estado.Parse(*in.Estado)
		if err != nil {
			return nil, err
		}
		if err := producto.CambiarEstado(nuevo); err != nil {
			return nil, err
		}
	}

	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("producto_id", producto.ID).
		Str("estado", string(producto.Estado)).
		Msg("producto actualizado")
	return uc.toResponse(producto), nil
}

// List devuelve productos filtrados y paginados. El término de búsqueda se
// normaliza (minúsculas, sin acentos) para igualar la normalización del lado SQL.
func (uc *ProductoUseCase) List(in dto.ProductoFiltroRequest) (*dto.ProductoListResponse, error) {
	in.DefaultPage()
	filtro := repository.ProductoFiltro{
		Busqueda:    texto.Normalizar(in.Busqueda),
		CategoriaID: in.CategoriaID,
		MarcaID:     in.MarcaID,
	}
	if in.Estado != "" {
		est, err := estado.Parse(in.Estado)
		if err != nil {
			return nil, err
		}
		filtro.Estado = est
	}

	productos, err := uc.repo.List(filtro, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountFiltro(filtro)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductoResponse, 0, len(productos))
	nombres := uc.nombresReferencias(productos)
	for _, p := range productos {
		items = append(items, *uc.toResponseConNombres(p, nombres))
	}
	return &dto.ProductoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Historial devuelve los movimientos no revertidos de un producto, más
// recientes primero.
func (uc *ProductoUseCase) Historial(productoID string, page dto.PageRequest) (*dto.MovimientoListResponse, error) {
	page.DefaultPage()
	producto, err := uc.repo.GetByIDConEliminados(productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByProducto(productoID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.CountFiltro(repository.MovimientoFiltro{ProductoID: productoID})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, toMovimientoResponse(m))
	}
	return &dto.MovimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Estados devuelve el catálogo de estados con sus transiciones, para que la UI
// no duplique la tabla de la máquina de estados.
func (uc *ProductoUseCase) Estados() []dto.EstadoResponse {
	valores := estado.Valores()
	out := make([]dto.EstadoResponse, 0, len(valores))
	for _, e := range valores {
		trans := e.TransicionesPermitidas()
		tokens := make([]string, 0, len(trans))
		for _, t := range trans {
			tokens = append(tokens, string(t))
		}
		out = append(out, dto.EstadoResponse{
			Valor:        string(e),
			Label:        e.Label(),
			Color:        e.Color(),
			Icono:        e.Icono(),
			Transiciones: tokens,
			Final:        e.EsFinal(),
		})
	}
	return out
}

// limpiarMetadata descarta las entradas vacías (nil o cadena en blanco).
// Un mapa que queda vacío se guarda como nil.
func limpiarMetadata(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	limpio := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		limpio[k] = v
	}
	if len(limpio) == 0 {
		return nil
	}
	return limpio
}

// validarReferencias comprueba que categoría y marca existan cuando vienen
// informadas. Vacío es válido: producto sin categoría/marca.
func (uc *ProductoUseCase) validarReferencias(categoriaID, marcaID string) error {
	if categoriaID != "" {
		cat, err := uc.categoriaRepo.GetByID(categoriaID)
		if err != nil {
			return err
		}
		if cat == nil {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoriaID)
		}
	}
	if marcaID != "" {
		marca, err := uc.marcaRepo.GetByID(marcaID)
		if err != nil {
			return err
		}
		if marca == nil {
			return fmt.Errorf("%w: marca %s", domain.ErrNotFound, marcaID)
		}
	}
	return nil
}

type nombresRef struct {
	categorias map[string]string
	marcas     map[string]string
}

// nombresReferencias resuelve en bloque los nombres de categoría y marca de un
// listado, una consulta por referencia distinta.
func (uc *ProductoUseCase) nombresReferencias(productos []*entity.Producto) nombresRef {
	ref := nombresRef{
		categorias: make(map[string]string),
		marcas:     make(map[string]string),
	}
	for _, p := range productos {
		if p.CategoriaID != "" {
			if _, ok := ref.categorias[p.CategoriaID]; !ok {
				if cat, err := uc.categoriaRepo.GetByID(p.CategoriaID); err == nil && cat != nil {
					ref.categorias[p.CategoriaID] = cat.Nombre
				}
			}
		}
		if p.MarcaID != "" {
			if _, ok := ref.marcas[p.MarcaID]; !ok {
				if marca, err := uc.marcaRepo.GetByID(p.MarcaID); err == nil && marca != nil {
					ref.marcas[p.MarcaID] = marca.Nombre
				}
			}
		}
	}
	return ref
}

func (uc *ProductoUseCase) toResponse(p *entity.Producto) *dto.ProductoResponse {
	return uc.toResponseConNombres(p, uc.nombresReferencias([]*entity.Producto{p}))
}

// toResponseConNombres arma la respuesta aplicando los nombres de respaldo
// cuando la referencia falta o fue eliminada.
func (uc *ProductoUseCase) toResponseConNombres(p *entity.Producto, ref nombresRef) *dto.ProductoResponse {
	categoria := entity.SinCategoria
	if nombre, ok := ref.categorias[p.CategoriaID]; ok && p.CategoriaID != "" {
		categoria = nombre
	}
	marca := entity.SinMarca
	if nombre, ok := ref.marcas[p.MarcaID]; ok && p.MarcaID != "" {
		marca = nombre
	}
	return &dto.ProductoResponse{
		ID:               p.ID,
		NumeroSerie:      p.NumeroSerie,
		NumeroInventario: p.NumeroInventario,
		Nombre:           p.Nombre,
		Descripcion:      p.Descripcion,
		Cantidad:         p.Cantidad,
		Modelo:           p.Modelo,
		Ubicacion:        p.Ubicacion,
		Estado:           string(p.Estado),
		EstadoLabel:      p.Estado.Label(),
		EstadoColor:      p.Estado.Color(),
		CategoriaID:      p.CategoriaID,
		Categoria:        categoria,
		MarcaID:          p.MarcaID,
		Marca:            marca,
		Metadata:         p.Metadata,
		BajoStock:        p.BajoStock(uc.stockMinimo),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		DeletedAt:        p.DeletedAt,
	}
}

package inventario

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
	"github.com/jhoicas/inventario-activos/pkg/logger"
)

// claveInformeStock clave única del informe en el caché.
const claveInformeStock = "informe_stock"

// Config parámetros de negocio del inventario.
type Config struct {
	StockMinimo int           // umbral de bajo stock para el informe
	InformeTTL  time.Duration // vigencia del informe cacheado
}

// Service compone la máquina de estados con el libro de movimientos: operaciones
// multi-paso (transición + ajuste opcional) en una sola unidad de trabajo, y el
// informe agregado de stock.
type Service struct {
	ledger       *Ledger
	tx           TxRunner
	productoRepo repository.ProductoRepository
	reporteRepo  repository.ReporteRepository
	cache        InformeCache
	cfg          Config
	log          *logger.Logger
}

// NewService construye el servicio de inventario.
func NewService(
	ledger *Ledger,
	tx TxRunner,
	productoRepo repository.ProductoRepository,
	reporteRepo repository.ReporteRepository,
	cache InformeCache,
	cfg Config,
	log *logger.Logger,
) *Service {
	if cfg.StockMinimo <= 0 {
		cfg.StockMinimo = 5
	}
	if cfg.InformeTTL <= 0 {
		cfg.InformeTTL = 10 * time.Minute
	}
	return &Service{
		ledger:       ledger,
		tx:           tx,
		productoRepo: productoRepo,
		reporteRepo:  reporteRepo,
		cache:        cache,
		cfg:          cfg,
		log:          log,
	}
}

// Ledger expone el libro de movimientos subyacente.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// AjustarStock registra un movimiento derivando el tipo del signo de delta:
// positivo entra, negativo sale. Delta cero no es un movimiento válido.
func (s *Service) AjustarStock(ctx context.Context, productoID string, delta int, motivo string) (*ResultadoMovimiento, error) {
	if delta == 0 {
		return nil, domain.ErrCantidadInvalida
	}
	tipo := entity.TipoEntrada
	cantidad := delta
	if delta < 0 {
		tipo = entity.TipoSalida
		cantidad = -delta
	}
	return s.ledger.Registrar(ctx, productoID, tipo, cantidad, motivo)
}

// CambiarEstado aplica una transición de estado y, si viene motivo, registra
// el ajuste acompañante en la misma transacción: ambos efectos se confirman o
// ninguno queda. Motivo con cantidad cero falla con ErrCantidadInvalida y
// revierte también la transición.
func (s *Service) CambiarEstado(ctx context.Context, productoID string, nuevo estado.Estado, motivo string, cantidad int) error {
	if !nuevo.EsValido() {
		return fmt.Errorf("%w: %q", domain.ErrEstadoInvalido, string(nuevo))
	}
	var anterior estado.Estado
	err := s.tx.Run(ctx, func(productoRepo repository.ProductoRepository, movRepo repository.MovimientoRepository) error {
		producto, err := productoRepo.GetForUpdate(productoID)
		if err != nil {
			return err
		}
		if producto == nil || producto.Eliminado() {
			return domain.ErrNotFound
		}
		anterior = producto.Estado
		if err := producto.CambiarEstado(nuevo); err != nil {
			return err
		}
		if err := productoRepo.UpdateEstado(productoID, nuevo); err != nil {
			return err
		}
		if motivo == "" {
			return nil
		}
		tipo := entity.TipoEntrada
		abs := cantidad
		if cantidad < 0 {
			tipo = entity.TipoSalida
			abs = -cantidad
		}
		motivoMov := fmt.Sprintf("Cambio de estado: %s → %s. %s", anterior.Label(), nuevo.Label(), motivo)
		_, _, err = registrarEnTx(productoRepo, movRepo, productoID, tipo, abs, motivoMov, time.Now())
		return err
	})
	if err != nil {
		return err
	}

	s.ledger.invalidarInforme(ctx)
	s.log.Info().
		Str("producto_id", productoID).
		Str("de", string(anterior)).
		Str("a", string(nuevo)).
		Msg("estado de producto cambiado")
	return nil
}

// AsignarCantidad es la vía administrativa de Producto.SetCantidad: escribe el
// stock sin dejar Movimiento. Quien necesite auditoría debe usar AjustarStock.
func (s *Service) AsignarCantidad(ctx context.Context, productoID string, nueva int, forzar bool) error {
	err := s.tx.Run(ctx, func(productoRepo repository.ProductoRepository, _ repository.MovimientoRepository) error {
		producto, err := productoRepo.GetForUpdate(productoID)
		if err != nil {
			return err
		}
		if producto == nil || producto.Eliminado() {
			return domain.ErrNotFound
		}
		if err := producto.SetCantidad(nueva, forzar); err != nil {
			return err
		}
		return productoRepo.UpdateCantidad(productoID, nueva)
	})
	if err != nil {
		return err
	}

	s.ledger.invalidarInforme(ctx)
	s.log.Warn().
		Str("producto_id", productoID).
		Int("cantidad", nueva).
		Bool("forzado", forzar).
		Msg("stock asignado sin movimiento (vía administrativa)")
	return nil
}

// EliminarProducto hace soft delete del producto. Se bloquea si está en estado
// final: un producto dado de baja se conserva como está para auditoría.
func (s *Service) EliminarProducto(ctx context.Context, productoID string) error {
	producto, err := s.productoRepo.GetByID(productoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	if producto.Estado.EsFinal() {
		return domain.ErrEstadoTerminal
	}
	if err := s.productoRepo.SoftDelete(productoID); err != nil {
		return err
	}
	s.ledger.invalidarInforme(ctx)
	s.log.Info().Str("producto_id", productoID).Msg("producto eliminado (soft delete)")
	return nil
}

// RestaurarProducto revierte el soft delete.
func (s *Service) RestaurarProducto(ctx context.Context, productoID string) error {
	producto, err := s.productoRepo.GetByIDConEliminados(productoID)
	if err != nil {
		return err
	}
	if producto == nil {
		return domain.ErrNotFound
	}
	if !producto.Eliminado() {
		return nil
	}
	if err := s.productoRepo.Restore(productoID); err != nil {
		return err
	}
	s.ledger.invalidarInforme(ctx)
	s.log.Info().Str("producto_id", productoID).Msg("producto restaurado")
	return nil
}

// InformeStock agregado de solo lectura del estado del inventario.
type InformeStock struct {
	TotalProductos     int                        `json:"total_productos"`
	StockTotal         int                        `json:"stock_total"`
	ProductosBajoStock int                        `json:"productos_bajo_stock"`
	StockMinimo        int                        `json:"stock_minimo"`
	PorEstado          []repository.EstadoResumen `json:"por_estado"`
	GeneradoEn         time.Time                  `json:"generado_en"`
}

// GenerarInformeStock devuelve el informe agregado, sirviéndolo del caché
// mientras el TTL siga vigente. Los fallos del caché no impiden generar el
// informe desde la base de datos.
func (s *Service) GenerarInformeStock(ctx context.Context) (*InformeStock, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, claveInformeStock)
		if err != nil {
			s.log.Warn().Err(err).Msg("leer informe de stock del caché")
		} else if raw != nil {
			var informe InformeStock
			if err := json.Unmarshal(raw, &informe); err == nil {
				return &informe, nil
			}
			// Contenido corrupto: se regenera y se sobreescribe.
		}
	}

	total, err := s.reporteRepo.TotalProductos()
	if err != nil {
		return nil, err
	}
	stock, err := s.reporteRepo.StockTotal()
	if err != nil {
		return nil, err
	}
	bajoStock, err := s.reporteRepo.ProductosBajoStock(s.cfg.StockMinimo)
	if err != nil {
		return nil, err
	}
	porEstado, err := s.reporteRepo.ResumenPorEstado()
	if err != nil {
		return nil, err
	}

	informe := &InformeStock{
		TotalProductos:     total,
		StockTotal:         stock,
		ProductosBajoStock: bajoStock,
		StockMinimo:        s.cfg.StockMinimo,
		PorEstado:          porEstado,
		GeneradoEn:         time.Now(),
	}

	if s.cache != nil {
		if raw, err := json.Marshal(informe); err == nil {
			if err := s.cache.Set(ctx, claveInformeStock, raw, s.cfg.InformeTTL); err != nil {
				s.log.Warn().Err(err).Msg("cachear informe de stock")
			}
		}
	}
	return informe, nil
}

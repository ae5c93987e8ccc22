package inventario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
	"github.com/jhoicas/inventario-activos/pkg/logger"
)

// Ledger es la única autoridad para cambiar la cantidad de un producto: todo
// ajuste queda emparejado con un Movimiento inmutable, dentro de una
// transacción con bloqueo de fila (SELECT FOR UPDATE) sobre el producto.
type Ledger struct {
	tx    TxRunner
	cache InformeCache
	log   *logger.Logger
}

// NewLedger construye el libro de movimientos.
func NewLedger(tx TxRunner, cache InformeCache, log *logger.Logger) *Ledger {
	return &Ledger{tx: tx, cache: cache, log: log}
}

// ResultadoMovimiento movimiento persistido junto con el stock resultante del
// producto tras el ajuste.
type ResultadoMovimiento struct {
	Movimiento     *entity.Movimiento
	CantidadActual int
}

// Registrar crea un movimiento y ajusta el stock del producto de forma atómica.
// Precondiciones: cantidad > 0; en salidas, stock suficiente. La validación de
// tipo ya ocurrió aguas arriba pero se re-verifica (defensa en profundidad).
func (l *Ledger) Registrar(ctx context.Context, productoID string, tipo entity.TipoMovimiento, cantidad int, motivo string) (*ResultadoMovimiento, error) {
	if tipo != entity.TipoEntrada && tipo != entity.TipoSalida {
		return nil, domain.ErrTipoInvalido
	}
	if cantidad <= 0 {
		return nil, domain.ErrCantidadInvalida
	}

	var res *ResultadoMovimiento
	err := l.tx.Run(ctx, func(productoRepo repository.ProductoRepository, movRepo repository.MovimientoRepository) error {
		mov, nueva, err := registrarEnTx(productoRepo, movRepo, productoID, tipo, cantidad, motivo, time.Now())
		if err != nil {
			return err
		}
		res = &ResultadoMovimiento{Movimiento: mov, CantidadActual: nueva}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.invalidarInforme(ctx)
	l.log.Info().
		Str("producto_id", productoID).
		Str("tipo", string(tipo)).
		Int("cantidad", cantidad).
		Int("stock", res.CantidadActual).
		Msg("movimiento registrado")
	return res, nil
}

// registrarEnTx ejecuta el alta del movimiento usando los repositorios de la
// transacción del caller. Lo reutiliza Service.CambiarEstado para que la
// transición y el ajuste compartan transacción.
func registrarEnTx(
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoRepository,
	productoID string,
	tipo entity.TipoMovimiento,
	cantidad int,
	motivo string,
	now time.Time,
) (*entity.Movimiento, int, error) {
	if cantidad <= 0 {
		return nil, 0, domain.ErrCantidadInvalida
	}
	// Bloquea la fila del producto para evitar lost updates entre movimientos concurrentes.
	producto, err := productoRepo.GetForUpdate(productoID)
	if err != nil {
		return nil, 0, err
	}
	if producto == nil {
		return nil, 0, domain.ErrNotFound
	}
	if tipo == entity.TipoSalida && producto.Cantidad < cantidad {
		return nil, 0, fmt.Errorf("%w: stock %d, solicitado %d", domain.ErrStockInsuficiente, producto.Cantidad, cantidad)
	}

	mov := &entity.Movimiento{
		ID:         uuid.New().String(),
		ProductoID: productoID,
		Tipo:       tipo,
		Cantidad:   cantidad,
		Motivo:     motivo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, 0, err
	}
	nueva := producto.Cantidad + tipo.Delta(cantidad)
	if err := productoRepo.UpdateCantidad(productoID, nueva); err != nil {
		return nil, 0, err
	}
	return mov, nueva, nil
}

// Revertir deshace un movimiento: ajuste inverso sobre el producto y soft
// delete del registro, en una sola transacción. Revertir una entrada que
// dejaría el stock negativo falla con ErrStockInsuficiente en lugar de
// recortar a cero.
func (l *Ledger) Revertir(ctx context.Context, movimientoID string) error {
	err := l.tx.Run(ctx, func(productoRepo repository.ProductoRepository, movRepo repository.MovimientoRepository) error {
		mov, err := movRepo.GetByID(movimientoID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		if mov.Revertido() {
			return domain.ErrMovimientoRevertido
		}
		// El producto puede estar soft-deleted: la reversión sigue siendo válida
		// como corrección de auditoría, así que se bloquea incluyendo eliminados.
		producto, err := productoRepo.GetForUpdate(mov.ProductoID)
		if err != nil {
			return err
		}
		if producto == nil {
			return domain.ErrNotFound
		}
		nueva := producto.Cantidad - mov.Tipo.Delta(mov.Cantidad)
		if nueva < 0 {
			return fmt.Errorf("%w: revertir la entrada dejaría el stock en %d", domain.ErrStockInsuficiente, nueva)
		}
		if err := movRepo.SoftDelete(mov.ID); err != nil {
			return err
		}
		return productoRepo.UpdateCantidad(mov.ProductoID, nueva)
	})
	if err != nil {
		return err
	}

	l.invalidarInforme(ctx)
	l.log.Info().Str("movimiento_id", movimientoID).Msg("movimiento revertido")
	return nil
}

// invalidarInforme borra el informe cacheado tras cualquier escritura. Un fallo
// del caché no invalida la operación ya confirmada: se degrada a warning.
func (l *Ledger) invalidarInforme(ctx context.Context) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Delete(ctx, claveInformeStock); err != nil {
		l.log.Warn().Err(err).Msg("invalidar informe de stock")
	}
}

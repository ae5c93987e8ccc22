package inventario

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-activos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de
// movimientos: la lectura del stock, su escritura y el registro del movimiento
// se confirman o descartan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productoRepo repository.ProductoRepository,
		movRepo repository.MovimientoRepository,
	) error) error
}

// InformeCache puerto de caché para el informe de stock. Get devuelve
// (nil, nil) en un miss; los errores de infraestructura no deben tumbar la
// generación del informe, el caller los degrada a log.
type InformeCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

package repository

import "github.com/jhoicas/inventario-activos/internal/domain/entity"

// MovimientoFiltro criterios para el historial de movimientos.
type MovimientoFiltro struct {
	ProductoID string
	Tipo       entity.TipoMovimiento // vacío = todos
}

// MovimientoRepository puerto de persistencia del libro de movimientos.
// Los movimientos son inmutables: solo se crean y se revierten (SoftDelete).
type MovimientoRepository interface {
	Create(movimiento *entity.Movimiento) error
	// GetByID devuelve el movimiento aunque esté revertido; el caller decide
	// qué hacer con DeletedAt.
	GetByID(id string) (*entity.Movimiento, error)
	// List devuelve movimientos no revertidos, más recientes primero.
	List(filtro MovimientoFiltro, limit, offset int) ([]*entity.Movimiento, error)
	CountFiltro(filtro MovimientoFiltro) (int, error)
	ListByProducto(productoID string, limit, offset int) ([]*entity.Movimiento, error)
	SoftDelete(id string) error
}

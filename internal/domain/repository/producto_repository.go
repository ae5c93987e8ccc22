package repository

import (
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
)

// ProductoFiltro criterios de listado de productos.
type ProductoFiltro struct {
	Estado      estado.Estado // vacío = todos
	Busqueda    string        // término ya normalizado (sin acentos, minúsculas)
	CategoriaID string
	MarcaID     string
}

// ProductoRepository define el puerto de persistencia para Producto (DIP).
// Los listados excluyen productos con soft delete salvo que se indique lo contrario.
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByIDConEliminados(id string) (*entity.Producto, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de la
	// transacción actual. Solo tiene sentido sobre un Querier transaccional.
	GetForUpdate(id string) (*entity.Producto, error)
	Update(producto *entity.Producto) error
	// UpdateCantidad escribe solo el stock. Reservado al libro de movimientos y
	// a la vía administrativa SetCantidad.
	UpdateCantidad(id string, cantidad int) error
	UpdateEstado(id string, e estado.Estado) error
	List(filtro ProductoFiltro, limit, offset int) ([]*entity.Producto, error)
	CountFiltro(filtro ProductoFiltro) (int, error)
	// Total cuenta todos los productos, incluidos los eliminados. Se usa para la
	// secuencia del número de inventario.
	Total() (int, error)
	ExisteConCategoria(categoriaID string) (bool, error)
	ExisteConMarca(marcaID string) (bool, error)
	SoftDelete(id string) error
	Restore(id string) error
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumnas = `id, numero_serie, numero_inventario, nombre, descripcion, cantidad, modelo, ubicacion, estado, categoria_id, marca_id, metadata, created_at, updated_at, deleted_at`

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	var numeroSerie, descripcion, modelo, ubicacion, categoriaID, marcaID *string
	var est string
	err := row.Scan(
		&p.ID, &numeroSerie, &p.NumeroInventario, &p.Nombre, &descripcion, &p.Cantidad,
		&modelo, &ubicacion, &est, &categoriaID, &marcaID, &p.Metadata,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Estado = estado.Estado(est)
	if numeroSerie != nil {
		p.NumeroSerie = *numeroSerie
	}
	if descripcion != nil {
		p.Descripcion = *descripcion
	}
	if modelo != nil {
		p.Modelo = *modelo
	}
	if ubicacion != nil {
		p.Ubicacion = *ubicacion
	}
	if categoriaID != nil {
		p.CategoriaID = *categoriaID
	}
	if marcaID != nil {
		p.MarcaID = *marcaID
	}
	return &p, nil
}

func nilSiVacio(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(p *entity.Producto) error {
	query := `
		INSERT INTO productos (id, numero_serie, numero_inventario, nombre, descripcion, cantidad, modelo, ubicacion, estado, categoria_id, marca_id, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, nilSiVacio(p.NumeroSerie), p.NumeroInventario, p.Nombre, nilSiVacio(p.Descripcion),
		p.Cantidad, nilSiVacio(p.Modelo), nilSiVacio(p.Ubicacion), string(p.Estado),
		nilSiVacio(p.CategoriaID), nilSiVacio(p.MarcaID), p.Metadata, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, excluyendo eliminados.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumnas + ` FROM productos WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetByIDConEliminados obtiene un producto aunque esté soft-deleted.
func (r *ProductoRepo) GetByIDConEliminados(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumnas + ` FROM productos WHERE id = $1`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto con eliminados: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Incluye eliminados: una reversión de movimiento sigue siendo válida sobre un
// producto soft-deleted.
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumnas + ` FROM productos WHERE id = $1 FOR UPDATE`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables. No toca cantidad (libro de
// movimientos) ni numero_inventario (inmutable una vez asignado).
func (r *ProductoRepo) Update(p *entity.Producto) error {
	query := `
		UPDATE productos
		SET numero_serie = $2, nombre = $3, descripcion = $4, modelo = $5, ubicacion = $6,
		    estado = $7, categoria_id = $8, marca_id = $9, metadata = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, nilSiVacio(p.NumeroSerie), p.Nombre, nilSiVacio(p.Descripcion), nilSiVacio(p.Modelo),
		nilSiVacio(p.Ubicacion), string(p.Estado), nilSiVacio(p.CategoriaID), nilSiVacio(p.MarcaID),
		p.Metadata, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateCantidad escribe solo el stock (lo usa el libro de movimientos).
func (r *ProductoRepo) UpdateCantidad(id string, cantidad int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET cantidad = $2, updated_at = now() WHERE id = $1`,
		id, cantidad,
	)
	if err != nil {
		return fmt.Errorf("update cantidad: %w", err)
	}
	return nil
}

// UpdateEstado escribe solo el estado.
func (r *ProductoRepo) UpdateEstado(id string, e estado.Estado) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET estado = $2, updated_at = now() WHERE id = $1`,
		id, string(e),
	)
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	return nil
}

// filtroWhere arma la cláusula WHERE del listado. La búsqueda compara sin
// acentos (extensión unaccent) contra nombre, descripción e identificadores.
func filtroWhere(f repository.ProductoFiltro) (string, []any) {
	where := " WHERE deleted_at IS NULL"
	var args []any
	pos := 1
	if f.Estado != "" {
		where += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, string(f.Estado))
		pos++
	}
	if f.CategoriaID != "" {
		where += fmt.Sprintf(" AND categoria_id = $%d", pos)
		args = append(args, f.CategoriaID)
		pos++
	}
	if f.MarcaID != "" {
		where += fmt.Sprintf(" AND marca_id = $%d", pos)
		args = append(args, f.MarcaID)
		pos++
	}
	if f.Busqueda != "" {
		where += fmt.Sprintf(
			" AND (unaccent(lower(nombre)) LIKE $%d OR unaccent(lower(coalesce(descripcion, ''))) LIKE $%d OR lower(numero_inventario) LIKE $%d OR lower(coalesce(numero_serie, '')) LIKE $%d)",
			pos, pos, pos, pos)
		args = append(args, "%"+f.Busqueda+"%")
		pos++
	}
	return where, args
}

// List lista productos con filtros y paginación, más recientes primero.
func (r *ProductoRepo) List(f repository.ProductoFiltro, limit, offset int) ([]*entity.Producto, error) {
	where, args := filtroWhere(f)
	query := `SELECT ` + productoColumnas + ` FROM productos` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// CountFiltro cuenta los productos que cumplen el filtro.
func (r *ProductoRepo) CountFiltro(f repository.ProductoFiltro) (int, error) {
	where, args := filtroWhere(f)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM productos`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count productos: %w", err)
	}
	return total, nil
}

// Total cuenta todos los productos, incluidos eliminados (secuencia del número
// de inventario).
func (r *ProductoRepo) Total() (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM productos`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total productos: %w", err)
	}
	return total, nil
}

// ExisteConCategoria indica si alguna fila activa referencia la categoría.
func (r *ProductoRepo) ExisteConCategoria(categoriaID string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM productos WHERE categoria_id = $1 AND deleted_at IS NULL)`,
		categoriaID,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("existe con categoria: %w", err)
	}
	return existe, nil
}

// ExisteConMarca indica si alguna fila activa referencia la marca.
func (r *ProductoRepo) ExisteConMarca(marcaID string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM productos WHERE marca_id = $1 AND deleted_at IS NULL)`,
		marcaID,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("existe con marca: %w", err)
	}
	return existe, nil
}

// SoftDelete marca el producto como eliminado.
func (r *ProductoRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("soft delete producto: %w", err)
	}
	return nil
}

// Restore limpia la marca de eliminación.
func (r *ProductoRepo) Restore(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET deleted_at = NULL, updated_at = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("restore producto: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

const movimientoColumnas = `id, producto_id, tipo, cantidad, motivo, created_at, updated_at, deleted_at`

// MovimientoRepo implementación de MovimientoRepository sobre PostgreSQL
// (usable con pool o tx).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

func scanMovimiento(row pgx.Row) (*entity.Movimiento, error) {
	var m entity.Movimiento
	var tipo string
	var motivo *string
	err := row.Scan(&m.ID, &m.ProductoID, &tipo, &m.Cantidad, &motivo, &m.CreatedAt, &m.UpdatedAt, &m.DeletedAt)
	if err != nil {
		return nil, err
	}
	m.Tipo = entity.TipoMovimiento(tipo)
	if motivo != nil {
		m.Motivo = *motivo
	}
	return &m, nil
}

// Create persiste un movimiento del libro.
func (r *MovimientoRepo) Create(m *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (id, producto_id, tipo, cantidad, motivo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductoID, string(m.Tipo), m.Cantidad, nilSiVacio(m.Motivo), m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, incluyendo revertidos.
func (r *MovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	query := `SELECT ` + movimientoColumnas + ` FROM movimientos WHERE id = $1`
	m, err := scanMovimiento(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return m, nil
}

func movimientoWhere(f repository.MovimientoFiltro) (string, []any) {
	where := " WHERE deleted_at IS NULL"
	var args []any
	pos := 1
	if f.ProductoID != "" {
		where += fmt.Sprintf(" AND producto_id = $%d", pos)
		args = append(args, f.ProductoID)
		pos++
	}
	if f.Tipo != "" {
		where += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, string(f.Tipo))
		pos++
	}
	return where, args
}

// List lista movimientos no revertidos con filtros, más recientes primero.
func (r *MovimientoRepo) List(f repository.MovimientoFiltro, limit, offset int) ([]*entity.Movimiento, error) {
	where, args := movimientoWhere(f)
	query := `SELECT ` + movimientoColumnas + ` FROM movimientos` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movimiento
	for rows.Next() {
		m, err := scanMovimiento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountFiltro cuenta los movimientos no revertidos que cumplen el filtro.
func (r *MovimientoRepo) CountFiltro(f repository.MovimientoFiltro) (int, error) {
	where, args := movimientoWhere(f)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM movimientos`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movimientos: %w", err)
	}
	return total, nil
}

// ListByProducto historial reciente de un producto.
func (r *MovimientoRepo) ListByProducto(productoID string, limit, offset int) ([]*entity.Movimiento, error) {
	return r.List(repository.MovimientoFiltro{ProductoID: productoID}, limit, offset)
}

// SoftDelete marca el movimiento como revertido.
func (r *MovimientoRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE movimientos SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("soft delete movimiento: %w", err)
	}
	return nil
}

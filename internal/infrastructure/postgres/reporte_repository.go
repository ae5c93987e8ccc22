package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-activos/internal/domain/estado"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas de agregación para el informe de stock. Solo lectura;
// los productos eliminados quedan fuera de todos los agregados.
type ReporteRepo struct {
	q Querier
}

// NewReporteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

// TotalProductos cuenta los productos activos.
func (r *ReporteRepo) TotalProductos() (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM productos WHERE deleted_at IS NULL`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total productos: %w", err)
	}
	return total, nil
}

// StockTotal suma las unidades en stock de todos los productos activos.
func (r *ReporteRepo) StockTotal() (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT coalesce(sum(cantidad), 0) FROM productos WHERE deleted_at IS NULL`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("stock total: %w", err)
	}
	return total, nil
}

// ProductosBajoStock cuenta los productos activos con stock bajo el mínimo.
func (r *ReporteRepo) ProductosBajoStock(minimo int) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM productos WHERE deleted_at IS NULL AND cantidad < $1`,
		minimo,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("productos bajo stock: %w", err)
	}
	return total, nil
}

// ResumenPorEstado agrega {conteo, stock} por estado.
func (r *ReporteRepo) ResumenPorEstado() ([]repository.EstadoResumen, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT estado, count(*), coalesce(sum(cantidad), 0)
		 FROM productos WHERE deleted_at IS NULL
		 GROUP BY estado ORDER BY estado`,
	)
	if err != nil {
		return nil, fmt.Errorf("resumen por estado: %w", err)
	}
	defer rows.Close()
	var list []repository.EstadoResumen
	for rows.Next() {
		var res repository.EstadoResumen
		var est string
		if err := rows.Scan(&est, &res.Total, &res.Stock); err != nil {
			return nil, fmt.Errorf("scan resumen: %w", err)
		}
		res.Estado = estado.Estado(est)
		list = append(list, res)
	}
	return list, rows.Err()
}

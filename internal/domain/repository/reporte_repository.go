package repository

import "github.com/jhoicas/inventario-activos/internal/domain/estado"

// EstadoResumen agregado {conteo, stock} de productos por estado.
type EstadoResumen struct {
	Estado estado.Estado `json:"estado"`
	Total  int           `json:"total"`
	Stock  int           `json:"stock"`
}

// ReporteRepository consultas de agregación de solo lectura para el informe de
// stock. Nunca se usa para decidir la aprobación de un movimiento: esas rutas
// leen la cantidad fresca bajo bloqueo de fila.
type ReporteRepository interface {
	TotalProductos() (int, error)
	StockTotal() (int, error)
	ProductosBajoStock(minimo int) (int, error)
	ResumenPorEstado() ([]EstadoResumen, error)
}

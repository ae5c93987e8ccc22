package entity

import (
	"time"

	"github.com/jhoicas/inventario-activos/internal/domain"
)

// TipoMovimiento dirección de un movimiento de stock. La cantidad del
// movimiento es siempre positiva; el signo lo aporta el tipo.
type TipoMovimiento string

const (
	TipoEntrada TipoMovimiento = "entrada"
	TipoSalida  TipoMovimiento = "salida"
)

// ParseTipo valida el token de tipo de movimiento.
func ParseTipo(s string) (TipoMovimiento, error) {
	switch TipoMovimiento(s) {
	case TipoEntrada:
		return TipoEntrada, nil
	case TipoSalida:
		return TipoSalida, nil
	}
	return "", domain.ErrTipoInvalido
}

// Label etiqueta legible del tipo.
func (t TipoMovimiento) Label() string {
	if t == TipoEntrada {
		return "Entrada de inventario"
	}
	return "Salida de inventario"
}

// Icono símbolo corto para la capa de presentación.
func (t TipoMovimiento) Icono() string {
	if t == TipoEntrada {
		return "↑"
	}
	return "↓"
}

// Delta efecto del movimiento sobre el stock: +cantidad para entrada,
// -cantidad para salida.
func (t TipoMovimiento) Delta(cantidad int) int {
	if t == TipoEntrada {
		return cantidad
	}
	return -cantidad
}

// Movimiento es una entrada del libro de movimientos: registro inmutable del
// cambio de stock de un producto. La única mutación permitida es la reversión
// (soft delete + ajuste inverso); sobrevive aunque el producto se elimine.
type Movimiento struct {
	ID         string
	ProductoID string
	Tipo       TipoMovimiento
	Cantidad   int // estrictamente positiva; la dirección la da Tipo
	Motivo     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // no nulo = movimiento revertido
}

// Revertido indica si el movimiento ya fue revertido.
func (m *Movimiento) Revertido() bool {
	return m.DeletedAt != nil
}

package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
)

// Producto representa un activo físico del inventario. Cantidad es el stock
// actual y solo se muta a través del libro de movimientos (o SetCantidad con
// forzar=true como vía administrativa, que no deja registro de auditoría).
type Producto struct {
	ID               string
	NumeroSerie      string // número de serie del fabricante, único si no es vacío
	NumeroInventario string // identificador interno, se genera si falta; inmutable y en mayúsculas
	Nombre           string
	Descripcion      string
	Cantidad         int // stock actual, nunca negativo
	Modelo           string
	Ubicacion        string
	Estado           estado.Estado
	CategoriaID      string // vacío = sin categoría
	MarcaID          string // vacío = sin marca
	Metadata         map[string]any
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// CambiarEstado aplica una transición de la máquina de estados sobre el
// agregado. No toca Cantidad; el caller decide si acompaña un ajuste de stock.
func (p *Producto) CambiarEstado(nuevo estado.Estado) error {
	if !p.Estado.PuedeTransicionarA(nuevo) {
		return fmt.Errorf("%w: de %s a %s", domain.ErrTransicionInvalida, p.Estado.Label(), nuevo.Label())
	}
	p.Estado = nuevo
	return nil
}

// SetCantidad asigna el stock directamente, saltándose el libro de movimientos.
// Vía administrativa: no crea Movimiento, por lo que el historial deja de
// reflejar este cambio. Sin forzar, el estado actual debe permitir movimientos.
func (p *Producto) SetCantidad(nueva int, forzar bool) error {
	if !forzar && !p.Estado.PermiteMovimientos() {
		return fmt.Errorf("%w: %s", domain.ErrEstadoNoPermite, p.Estado.Label())
	}
	if nueva < 0 {
		return domain.ErrCantidadInvalida
	}
	p.Cantidad = nueva
	return nil
}

// EstaDisponible considera solo el estado (compatibilidad con llamadores que
// no distinguen stock cero).
func (p *Producto) EstaDisponible() bool {
	return p.Estado == estado.Disponible
}

// EstaDisponibleEstricto exige además stock positivo.
func (p *Producto) EstaDisponibleEstricto() bool {
	return p.Estado == estado.Disponible && p.Cantidad > 0
}

// EstaDisponiblePara delega en la política de contexto de la máquina de estados.
func (p *Producto) EstaDisponiblePara(ctx estado.Contexto) bool {
	return p.Estado.EsDisponiblePara(ctx)
}

// BajoStock indica si el stock está por debajo del mínimo configurado.
func (p *Producto) BajoStock(minimo int) bool {
	return p.Cantidad < minimo
}

// Eliminado indica si el producto fue dado de baja lógica (soft delete).
func (p *Producto) Eliminado() bool {
	return p.DeletedAt != nil
}

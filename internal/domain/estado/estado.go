// Package estado define la máquina de estados del ciclo de vida de un producto:
// el conjunto finito de estados, la tabla de transiciones permitidas y los
// predicados de negocio derivados (permite movimientos, disponibilidad por contexto).
package estado

import (
	"fmt"

	"github.com/jhoicas/inventario-activos/internal/domain"
)

// Estado representa el estado de ciclo de vida de un producto.
// En el wire se serializa como token snake_case en minúsculas.
type Estado string

const (
	Disponible        Estado = "disponible"
	EnUso             Estado = "en_uso"
	Reservado         Estado = "reservado"
	Mantenimiento     Estado = "mantenimiento"
	PendienteRevision Estado = "pendiente_revision"
	Baja              Estado = "baja" // estado final, sin transiciones de salida
)

// Contexto de disponibilidad para EsDisponiblePara.
type Contexto string

const (
	ContextoVenta         Contexto = "venta"
	ContextoPrestamo      Contexto = "prestamo"
	ContextoMantenimiento Contexto = "mantenimiento"
	ContextoReporte       Contexto = "reporte"
)

// transiciones es la tabla estática de transiciones dirigidas. Un estado ausente
// o con slice vacío no admite ninguna salida (Baja).
var transiciones = map[Estado][]Estado{
	Disponible:        {EnUso, Reservado, Mantenimiento, Baja},
	EnUso:             {Disponible, Mantenimiento, Baja},
	Reservado:         {Disponible, EnUso, Baja},
	Mantenimiento:     {Disponible, Baja},
	PendienteRevision: {Disponible, Mantenimiento, Baja},
	Baja:              {},
}

// Valores devuelve todos los estados válidos en orden estable.
func Valores() []Estado {
	return []Estado{Disponible, EnUso, Reservado, Mantenimiento, PendienteRevision, Baja}
}

// ValoresActivos estados considerados operativos para listados.
func ValoresActivos() []Estado {
	return []Estado{Disponible, EnUso, Reservado, PendienteRevision}
}

// ValoresInactivos estados fuera de operación.
func ValoresInactivos() []Estado {
	return []Estado{Baja, Mantenimiento}
}

// Parse valida un token de estado. Devuelve ErrEstadoInvalido si no es reconocido.
func Parse(s string) (Estado, error) {
	e := Estado(s)
	if _, ok := transiciones[e]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrEstadoInvalido, s)
	}
	return e, nil
}

// EsValido indica si el valor pertenece al conjunto de estados.
func (e Estado) EsValido() bool {
	_, ok := transiciones[e]
	return ok
}

// TransicionesPermitidas devuelve los estados alcanzables desde e. Copia defensiva.
func (e Estado) TransicionesPermitidas() []Estado {
	src := transiciones[e]
	out := make([]Estado, len(src))
	copy(out, src)
	return out
}

// PuedeTransicionarA consulta la tabla de transiciones. Lookup puro, sin efectos.
func (e Estado) PuedeTransicionarA(nuevo Estado) bool {
	for _, t := range transiciones[e] {
		if t == nuevo {
			return true
		}
	}
	return false
}

// PermiteMovimientos indica si el estado admite movimientos de stock.
func (e Estado) PermiteMovimientos() bool {
	switch e {
	case Baja, Mantenimiento, PendienteRevision:
		return false
	}
	return true
}

// PermiteModificaciones indica si el producto puede editarse. Solo Baja lo impide.
func (e Estado) PermiteModificaciones() bool {
	return e != Baja
}

// EsFinal indica si el estado es terminal (sin transiciones de salida).
func (e Estado) EsFinal() bool {
	return e == Baja
}

// EsDisponiblePara aplica la política de disponibilidad por contexto:
// venta admite disponible o reservado; prestamo exige disponible; mantenimiento
// excluye baja y mantenimiento; reporte excluye solo estados finales.
func (e Estado) EsDisponiblePara(ctx Contexto) bool {
	switch ctx {
	case ContextoVenta:
		return e == Disponible || e == Reservado
	case ContextoPrestamo:
		return e == Disponible
	case ContextoMantenimiento:
		return e != Baja && e != Mantenimiento
	case ContextoReporte:
		return !e.EsFinal()
	default:
		return e == Disponible
	}
}

// Label etiqueta legible para UI.
func (e Estado) Label() string {
	switch e {
	case Disponible:
		return "Disponible"
	case EnUso:
		return "En uso"
	case Reservado:
		return "Reservado"
	case Mantenimiento:
		return "En mantenimiento"
	case PendienteRevision:
		return "Pendiente de revisión"
	case Baja:
		return "Dado de baja"
	}
	return string(e)
}

// Color token de color para la capa de presentación.
func (e Estado) Color() string {
	switch e {
	case Disponible:
		return "green"
	case EnUso:
		return "blue"
	case Reservado:
		return "purple"
	case Mantenimiento:
		return "yellow"
	case PendienteRevision:
		return "gray"
	case Baja:
		return "red"
	}
	return "gray"
}

// Icono símbolo corto para la capa de presentación.
func (e Estado) Icono() string {
	switch e {
	case Disponible:
		return "✓"
	case EnUso:
		return "↻"
	case Reservado:
		return "⏳"
	case Mantenimiento:
		return "🛠"
	case PendienteRevision:
		return "?"
	case Baja:
		return "✗"
	}
	return ""
}

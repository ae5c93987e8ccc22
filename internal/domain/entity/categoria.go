package entity

import "time"

// Nombres de respaldo cuando un producto no tiene referencia o esta fue
// eliminada. La capa de presentación los aplica de forma explícita.
const (
	SinCategoria = "Sin categoría"
	SinMarca     = "Sin marca"
)

// Categoria agrupa productos. Referencia débil: al eliminarla, los productos
// quedan sin categoría y el render usa SinCategoria.
type Categoria struct {
	ID        string
	Nombre    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

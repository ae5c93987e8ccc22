package entity

import "time"

// Marca fabricante de productos. Misma política de referencia débil que Categoria.
type Marca struct {
	ID        string
	Nombre    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

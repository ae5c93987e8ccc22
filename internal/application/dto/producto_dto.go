package dto

import "time"

// CreateProductoRequest entrada para crear un producto. Si numero_inventario
// viene vacío se genera automáticamente; estado vacío = disponible.
type CreateProductoRequest struct {
	NumeroSerie      string         `json:"numero_serie" validate:"omitempty,max=100"`
	NumeroInventario string         `json:"numero_inventario" validate:"omitempty,max=50"`
	Nombre           string         `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion      string         `json:"descripcion" validate:"omitempty,max=2000"`
	Cantidad         int            `json:"cantidad" validate:"omitempty,min=0"`
	Modelo           string         `json:"modelo" validate:"omitempty,max=100"`
	Ubicacion        string         `json:"ubicacion" validate:"omitempty,max=200"`
	Estado           string         `json:"estado" validate:"omitempty,max=30"`
	CategoriaID      string         `json:"categoria_id" validate:"omitempty,uuid"`
	MarcaID          string         `json:"marca_id" validate:"omitempty,uuid"`
	Metadata         map[string]any `json:"metadata"`
}

// UpdateProductoRequest entrada para actualizar un producto. Sin cantidad (se
// maneja vía movimientos) ni numero_inventario (inmutable). Un cambio de
// estado debe ser una transición legal.
type UpdateProductoRequest struct {
	NumeroSerie *string        `json:"numero_serie" validate:"omitempty,max=100"`
	Nombre      *string        `json:"nombre" validate:"omitempty,min=1,max=200"`
	Descripcion *string        `json:"descripcion" validate:"omitempty,max=2000"`
	Modelo      *string        `json:"modelo" validate:"omitempty,max=100"`
	Ubicacion   *string        `json:"ubicacion" validate:"omitempty,max=200"`
	Estado      *string        `json:"estado" validate:"omitempty,max=30"`
	CategoriaID *string        `json:"categoria_id" validate:"omitempty"`
	MarcaID     *string        `json:"marca_id" validate:"omitempty"`
	Metadata    map[string]any `json:"metadata"`
}

// CambiarEstadoRequest entrada para la transición de estado, con ajuste de
// stock opcional: solo se registra si viene motivo y cantidad distinta de cero.
type CambiarEstadoRequest struct {
	Estado   string `json:"estado" validate:"required"`
	Motivo   string `json:"motivo" validate:"omitempty,max=255"`
	Cantidad int    `json:"cantidad"`
}

// AsignarCantidadRequest entrada de la vía administrativa: fija el stock sin
// registrar movimiento.
type AsignarCantidadRequest struct {
	Cantidad int  `json:"cantidad" validate:"min=0"`
	Forzar   bool `json:"forzar"`
}

// ProductoFiltroRequest filtros del listado de productos.
type ProductoFiltroRequest struct {
	PageRequest
	Estado      string `query:"estado"`
	Busqueda    string `query:"busqueda"`
	CategoriaID string `query:"categoria_id"`
	MarcaID     string `query:"marca_id"`
}

// ProductoResponse salida de un producto. Categoria y Marca traen el nombre de
// respaldo ("Sin categoría"/"Sin marca") cuando la referencia falta o fue
// eliminada.
type ProductoResponse struct {
	ID               string         `json:"id"`
	NumeroSerie      string         `json:"numero_serie,omitempty"`
	NumeroInventario string         `json:"numero_inventario"`
	Nombre           string         `json:"nombre"`
	Descripcion      string         `json:"descripcion,omitempty"`
	Cantidad         int            `json:"cantidad"`
	Modelo           string         `json:"modelo,omitempty"`
	Ubicacion        string         `json:"ubicacion,omitempty"`
	Estado           string         `json:"estado"`
	EstadoLabel      string         `json:"estado_label"`
	EstadoColor      string         `json:"estado_color"`
	CategoriaID      string         `json:"categoria_id,omitempty"`
	Categoria        string         `json:"categoria"`
	MarcaID          string         `json:"marca_id,omitempty"`
	Marca            string         `json:"marca"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	BajoStock        bool           `json:"bajo_stock"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        *time.Time     `json:"deleted_at,omitempty"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// EstadoResponse entrada del catálogo de estados para la UI.
type EstadoResponse struct {
	Valor        string   `json:"valor"`
	Label        string   `json:"label"`
	Color        string   `json:"color"`
	Icono        string   `json:"icono"`
	Transiciones []string `json:"transiciones"`
	Final        bool     `json:"final"`
}

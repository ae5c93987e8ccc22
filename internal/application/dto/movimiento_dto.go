package dto

import "time"

// RegistrarMovimientoRequest entrada para registrar un movimiento sobre un
// producto. La dirección la da tipo; cantidad siempre positiva.
type RegistrarMovimientoRequest struct {
	Tipo     string `json:"tipo" validate:"required,oneof=entrada salida"`
	Cantidad int    `json:"cantidad" validate:"required,min=1"`
	Motivo   string `json:"motivo" validate:"omitempty,max=255"`
}

// AjustarStockRequest entrada para un ajuste con signo: positivo entra,
// negativo sale.
type AjustarStockRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Motivo string `json:"motivo" validate:"omitempty,max=255"`
}

// MovimientoFiltroRequest filtros del historial de movimientos.
type MovimientoFiltroRequest struct {
	PageRequest
	Tipo       string `query:"tipo"`
	ProductoID string `query:"producto_id"`
}

// MovimientoResponse salida de un movimiento del libro.
type MovimientoResponse struct {
	ID         string     `json:"id"`
	ProductoID string     `json:"producto_id"`
	Tipo       string     `json:"tipo"`
	TipoLabel  string     `json:"tipo_label"`
	Cantidad   int        `json:"cantidad"`
	Motivo     string     `json:"motivo,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// MovimientoRegistradoResponse movimiento creado junto con el stock resultante.
type MovimientoRegistradoResponse struct {
	Movimiento     MovimientoResponse `json:"movimiento"`
	CantidadActual int                `json:"cantidad_actual"`
}

// MovimientoListResponse historial paginado.
type MovimientoListResponse struct {
	Items []MovimientoResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

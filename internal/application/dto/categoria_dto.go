package dto

// CreateCategoriaRequest entrada para crear una categoría.
type CreateCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=100"`
}

// UpdateCategoriaRequest entrada para renombrar una categoría.
type UpdateCategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=100"`
}

// CategoriaResponse salida de una categoría.
type CategoriaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// CreateMarcaRequest entrada para crear una marca.
type CreateMarcaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=100"`
}

// UpdateMarcaRequest entrada para renombrar una marca.
type UpdateMarcaRequest struct {
	Nombre string `json:"nombre" validate:"required,min=1,max=100"`
}

// MarcaResponse salida de una marca.
type MarcaResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

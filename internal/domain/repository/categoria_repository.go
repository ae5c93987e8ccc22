package repository

import "github.com/jhoicas/inventario-activos/internal/domain/entity"

// CategoriaRepository puerto de persistencia para Categoria.
type CategoriaRepository interface {
	Create(categoria *entity.Categoria) error
	GetByID(id string) (*entity.Categoria, error)
	List(busqueda string, limit, offset int) ([]*entity.Categoria, error)
	Update(categoria *entity.Categoria) error
	SoftDelete(id string) error
}

package repository

import "github.com/jhoicas/inventario-activos/internal/domain/entity"

// MarcaRepository puerto de persistencia para Marca.
type MarcaRepository interface {
	Create(marca *entity.Marca) error
	GetByID(id string) (*entity.Marca, error)
	List(busqueda string, limit, offset int) ([]*entity.Marca, error)
	Update(marca *entity.Marca) error
	SoftDelete(id string) error
}

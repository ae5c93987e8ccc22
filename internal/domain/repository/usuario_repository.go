package repository

import "github.com/jhoicas/inventario-activos/internal/domain/entity"

// UsuarioRepository puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
}

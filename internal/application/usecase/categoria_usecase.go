package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-activos/internal/application/dto"
	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
	"github.com/jhoicas/inventario-activos/pkg/texto"
)

// CategoriaUseCase CRUD de categorías. El borrado se bloquea mientras existan
// productos que la referencien.
type CategoriaUseCase struct {
	repo         repository.CategoriaRepository
	productoRepo repository.ProductoRepository
}

// NewCategoriaUseCase construye el caso de uso.
func NewCategoriaUseCase(repo repository.CategoriaRepository, productoRepo repository.ProductoRepository) *CategoriaUseCase {
	return &CategoriaUseCase{repo: repo, productoRepo: productoRepo}
}

// Create crea una categoría.
func (uc *CategoriaUseCase) Create(in dto.CreateCategoriaRequest) (*dto.CategoriaResponse, error) {
	now := time.Now()
	categoria := &entity.Categoria{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(in.Nombre),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if categoria.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoriaUseCase) GetByID(id string) (*dto.CategoriaResponse, error) {
	categoria, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoriaResponse(categoria), nil
}

// List devuelve categorías, con búsqueda por nombre opcional.
func (uc *CategoriaUseCase) List(busqueda string, page dto.PageRequest) ([]dto.CategoriaResponse, error) {
	page.DefaultPage()
	categorias, err := uc.repo.List(texto.Normalizar(busqueda), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for _, c := range categorias {
		out = append(out, *toCategoriaResponse(c))
	}
	return out, nil
}

// Update renombra una categoría.
func (uc *CategoriaUseCase) Update(id string, in dto.UpdateCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.ErrNotFound
	}
	categoria.Nombre = strings.TrimSpace(in.Nombre)
	if categoria.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	categoria.UpdatedAt = time.Now()
	if err := uc.repo.Update(categoria); err != nil {
		return nil, err
	}
	return toCategoriaResponse(categoria), nil
}

// Delete elimina una categoría (soft delete). Falla con ErrConflict si algún
// producto la sigue usando.
func (uc *CategoriaUseCase) Delete(id string) error {
	categoria, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if categoria == nil {
		return domain.ErrNotFound
	}
	enUso, err := uc.productoRepo.ExisteConCategoria(id)
	if err != nil {
		return err
	}
	if enUso {
		return domain.ErrConflict
	}
	return uc.repo.SoftDelete(id)
}

func toCategoriaResponse(c *entity.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{ID: c.ID, Nombre: c.Nombre}
}

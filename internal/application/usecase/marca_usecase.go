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

// MarcaUseCase CRUD de marcas, con la misma política de borrado que categorías.
type MarcaUseCase struct {
	repo         repository.MarcaRepository
	productoRepo repository.ProductoRepository
}

// NewMarcaUseCase construye el caso de uso.
func NewMarcaUseCase(repo repository.MarcaRepository, productoRepo repository.ProductoRepository) *MarcaUseCase {
	return &MarcaUseCase{repo: repo, productoRepo: productoRepo}
}

// Create crea una marca.
func (uc *MarcaUseCase) Create(in dto.CreateMarcaRequest) (*dto.MarcaResponse, error) {
	now := time.Now()
	marca := &entity.Marca{
		ID:        uuid.New().String(),
		Nombre:    strings.TrimSpace(in.Nombre),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if marca.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(marca); err != nil {
		return nil, err
	}
	return toMarcaResponse(marca), nil
}

// GetByID obtiene una marca por ID.
func (uc *MarcaUseCase) GetByID(id string) (*dto.MarcaResponse, error) {
	marca, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if marca == nil {
		return nil, domain.ErrNotFound
	}
	return toMarcaResponse(marca), nil
}

// List devuelve marcas, con búsqueda por nombre opcional.
func (uc *MarcaUseCase) List(busqueda string, page dto.PageRequest) ([]dto.MarcaResponse, error) {
	page.DefaultPage()
	marcas, err := uc.repo.List(texto.Normalizar(busqueda), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MarcaResponse, 0, len(marcas))
	for _, m := range marcas {
		out = append(out, *toMarcaResponse(m))
	}
	return out, nil
}

// Update renombra una marca.
func (uc *MarcaUseCase) Update(id string, in dto.UpdateMarcaRequest) (*dto.MarcaResponse, error) {
	marca, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if marca == nil {
		return nil, domain.ErrNotFound
	}
	marca.Nombre = strings.TrimSpace(in.Nombre)
	if marca.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	marca.UpdatedAt = time.Now()
	if err := uc.repo.Update(marca); err != nil {
		return nil, err
	}
	return toMarcaResponse(marca), nil
}

// Delete elimina una marca (soft delete). Falla con ErrConflict si algún
// producto la sigue usando.
func (uc *MarcaUseCase) Delete(id string) error {
	marca, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if marca == nil {
		return domain.ErrNotFound
	}
	enUso, err := uc.productoRepo.ExisteConMarca(id)
	if err != nil {
		return err
	}
	if enUso {
		return domain.ErrConflict
	}
	return uc.repo.SoftDelete(id)
}

func toMarcaResponse(m *entity.Marca) *dto.MarcaResponse {
	return &dto.MarcaResponse{ID: m.ID, Nombre: m.Nombre}
}

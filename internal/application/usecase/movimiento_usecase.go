package usecase

import (
	"github.com/jhoicas/inventario-activos/internal/application/dto"
	"github.com/jhoicas/inventario-activos/internal/domain"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
	"github.com/jhoicas/inventario-activos/internal/domain/repository"
)

// MovimientoUseCase consultas de solo lectura sobre el libro de movimientos.
// Las escrituras (registrar, revertir) van por el Ledger del servicio de
// inventario, que impone la transaccionalidad.
type MovimientoUseCase struct {
	repo repository.MovimientoRepository
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(repo repository.MovimientoRepository) *MovimientoUseCase {
	return &MovimientoUseCase{repo: repo}
}

// GetByID obtiene un movimiento, revertido o no.
func (uc *MovimientoUseCase) GetByID(id string) (*dto.MovimientoResponse, error) {
	mov, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	res := toMovimientoResponse(mov)
	return &res, nil
}

// List devuelve el historial global filtrado y paginado, más recientes primero.
func (uc *MovimientoUseCase) List(in dto.MovimientoFiltroRequest) (*dto.MovimientoListResponse, error) {
	in.DefaultPage()
	filtro := repository.MovimientoFiltro{ProductoID: in.ProductoID}
	if in.Tipo != "" {
		tipo, err := entity.ParseTipo(in.Tipo)
		if err != nil {
			return nil, err
		}
		filtro.Tipo = tipo
	}

	movs, err := uc.repo.List(filtro, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountFiltro(filtro)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		items = append(items, toMovimientoResponse(m))
	}
	return &dto.MovimientoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

func toMovimientoResponse(m *entity.Movimiento) dto.MovimientoResponse {
	return dto.MovimientoResponse{
		ID:         m.ID,
		ProductoID: m.ProductoID,
		Tipo:       string(m.Tipo),
		TipoLabel:  m.Tipo.Label(),
		Cantidad:   m.Cantidad,
		Motivo:     m.Motivo,
		CreatedAt:  m.CreatedAt,
		DeletedAt:  m.DeletedAt,
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-activos/internal/application/dto"
	"github.com/jhoicas/inventario-activos/internal/application/inventario"
	"github.com/jhoicas/inventario-activos/internal/application/usecase"
	"github.com/jhoicas/inventario-activos/internal/domain/entity"
)

// MovimientoHandler maneja el libro de movimientos: registro, reversión y
// consultas de historial.
type MovimientoHandler struct {
	svc *inventario.Service
	uc  *usecase.MovimientoUseCase
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(svc *inventario.Service, uc *usecase.MovimientoUseCase) *MovimientoHandler {
	return &MovimientoHandler{svc: svc, uc: uc}
}

// Registrar godoc
// @Summary      Registrar movimiento de stock
// @Description  Crea una entrada o salida y ajusta el stock del producto de
// @Description  forma atómica (bloqueo de fila).
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.RegistrarMovimientoRequest  true  "tipo, cantidad y motivo"
// @Success      201   {object}  dto.MovimientoRegistradoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/movimientos [post]
func (h *MovimientoHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarMovimientoRequest
	if handled, err := validarBody(c, &in); handled {
		return err
	}
	tipo, err := entity.ParseTipo(in.Tipo)
	if err != nil {
		return responderError(c, err)
	}
	res, err := h.svc.Ledger().Registrar(c.Context(), c.Params("id"), tipo, in.Cantidad, in.Motivo)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRegistradoResponse(res))
}

// Ajustar godoc
// @Summary      Ajustar stock por delta
// @Description  Delta positivo registra una entrada; negativo, una salida.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AjustarStockRequest  true  "delta con signo y motivo"
// @Success      201   {object}  dto.MovimientoRegistradoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/ajuste [post]
func (h *MovimientoHandler) Ajustar(c *fiber.Ctx) error {
	var in dto.AjustarStockRequest
	if handled, err := validarBody(c, &in); handled {
		return err
	}
	res, err := h.svc.AjustarStock(c.Context(), c.Params("id"), in.Delta, in.Motivo)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRegistradoResponse(res))
}

// Revertir godoc
// @Summary      Revertir un movimiento
// @Description  Aplica el ajuste inverso sobre el producto y marca el
// @Description  movimiento como revertido. Un movimiento solo se revierte una vez.
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id}/revertir [post]
func (h *MovimientoHandler) Revertir(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.svc.Ledger().Revertir(c.Context(), id); err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimientos/{id} [get]
func (h *MovimientoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Historial global de movimientos
// @Tags         movimientos
// @Security     Bearer
// @Produce      json
// @Param        tipo         query  string  false  "entrada o salida"
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.MovimientoListResponse
// @Router       /api/movimientos [get]
func (h *MovimientoHandler) List(c *fiber.Ctx) error {
	var in dto.MovimientoFiltroRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

func toRegistradoResponse(res *inventario.ResultadoMovimiento) dto.MovimientoRegistradoResponse {
	m := res.Movimiento
	return dto.MovimientoRegistradoResponse{
		Movimiento: dto.MovimientoResponse{
			ID:         m.ID,
			ProductoID: m.ProductoID,
			Tipo:       string(m.Tipo),
			TipoLabel:  m.Tipo.Label(),
			Cantidad:   m.Cantidad,
			Motivo:     m.Motivo,
			CreatedAt:  m.CreatedAt,
		},
		CantidadActual: res.CantidadActual,
	}
}

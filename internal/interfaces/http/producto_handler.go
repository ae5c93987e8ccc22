package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-activos/internal/application/dto"
	"github.com/jhoicas/inventario-activos/internal/application/inventario"
	"github.com/jhoicas/inventario-activos/internal/application/usecase"
	"github.com/jhoicas/inventario-activos/internal/domain/estado"
)

// ProductoHandler maneja las peticiones HTTP de productos. El CRUD va por el
// caso de uso; las operaciones sobre stock y estado, por el servicio de
// inventario (transaccionales).
type ProductoHandler struct {
	uc  *usecase.ProductoUseCase
	svc *inventario.Service
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase, svc *inventario.Service) *ProductoHandler {
	return &ProductoHandler{uc: uc, svc: svc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductoRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductoRequest
	if handled, err := validarBody(c, &in); handled {
		return err
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        estado        query  string  false  "Filtrar por estado"
// @Param        busqueda      query  string  false  "Búsqueda por nombre o números (sin distinguir acentos)"
// @Param        categoria_id  query  string  false  "Filtrar por categoría"
// @Param        marca_id      query  string  false  "Filtrar por marca"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ProductoListResponse
// @Router       /api/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	var in dto.ProductoFiltroRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductoRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductoRequest
	if handled, err := validarBody(c, &in); handled {
		return err
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (soft delete)
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *ProductoHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.EliminarProducto(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar producto eliminado
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/restaurar [post]
func (h *ProductoHandler) Restore(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.svc.RestaurarProducto(c.Context(), id); err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// CambiarEstado godoc
// @Summary      Cambiar estado del producto
// @Description  Aplica una transición de la máquina de estados. Si viene motivo,
// @Description  registra el ajuste de stock con la cantidad indicada en la misma
// @Description  transacción; motivo con cantidad cero es inválido.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.CambiarEstadoRequest  true  "estado destino, motivo y cantidad opcionales"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/estado [patch]
func (h *ProductoHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoRequest
	if handled, err := validarBody(c, &in); handled {
		return err
	}
	nuevo, err := estado.Parse(in.Estado)
	if err != nil {
		return responderError(c, err)
	}
	id := c.Params("id")
	if err := h.svc.CambiarEstado(c.Context(), id, nuevo, in.Motivo, in.Cantidad); err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// AsignarCantidad godoc
// @Summary      Asignar stock directamente (vía administrativa)
// @Description  Fija el stock sin registrar movimiento. Con forzar=true se
// @Description  salta la restricción de estado. No deja rastro en el historial.
// @Tags         productos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AsignarCantidadRequest  true  "cantidad y forzar"
// @Success      200   {object}  dto.ProductoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/cantidad [put]
func (h *ProductoHandler) AsignarCantidad(c *fiber.Ctx) error {
	var in dto.AsignarCantidadRequest
	if handled, err := validarBody(c, &in); handled {
		return err
	}
	id := c.Params("id")
	if err := h.svc.AsignarCantidad(c.Context(), id, in.Cantidad, in.Forzar); err != nil {
		return responderError(c, err)
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Historial godoc
// @Summary      Historial de movimientos de un producto
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.MovimientoListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id}/movimientos [get]
func (h *ProductoHandler) Historial(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Historial(c.Params("id"), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Estados godoc
// @Summary      Catálogo de estados y sus transiciones
// @Tags         productos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EstadoResponse
// @Router       /api/productos/estados [get]
func (h *ProductoHandler) Estados(c *fiber.Ctx) error {
	return c.JSON(h.uc.Estados())
}

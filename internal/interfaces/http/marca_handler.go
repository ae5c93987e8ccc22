package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-activos/internal/application/dto"
	"github.com/jhoicas/inventario-activos/internal/application/usecase"
)

// MarcaHandler maneja el CRUD de marcas.
type MarcaHandler struct {
	uc *usecase.MarcaUseCase
}

// NewMarcaHandler construye el handler.
func NewMarcaHandler(uc *usecase.MarcaUseCase) *MarcaHandler {
	return &MarcaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear marca
// @Tags         marcas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMarcaRequest  true  "nombre"
// @Success      201   {object}  dto.MarcaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/marcas [post]
func (h *MarcaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMarcaRequest
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
// @Summary      Obtener marca por ID
// @Tags         marcas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la marca"
// @Success      200  {object}  dto.MarcaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/marcas/{id} [get]
func (h *MarcaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar marcas
// @Tags         marcas
// @Security     Bearer
// @Produce      json
// @Param        busqueda  query  string  false  "Búsqueda por nombre"
// @Param        limit     query  int     false  "Límite"   default(20)
// @Param        offset    query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.MarcaResponse
// @Router       /api/marcas [get]
func (h *MarcaHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Query("busqueda"), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar marca
// @Tags         marcas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la marca"
// @Param        body  body  dto.UpdateMarcaRequest  true  "nombre"
// @Success      200   {object}  dto.MarcaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/marcas/{id} [put]
func (h *MarcaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMarcaRequest
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
// @Summary      Eliminar marca
// @Description  Falla con 409 si algún producto sigue asignado a la marca.
// @Tags         marcas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la marca"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/marcas/{id} [delete]
func (h *MarcaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

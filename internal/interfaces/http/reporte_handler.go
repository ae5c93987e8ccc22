package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-activos/internal/application/inventario"
)

// InformePDFGenerator renderiza el informe de stock como documento PDF.
type InformePDFGenerator interface {
	GenerarInformePDF(informe *inventario.InformeStock) ([]byte, error)
}

// ReporteHandler expone el informe agregado de stock, en JSON y PDF.
type ReporteHandler struct {
	svc *inventario.Service
	pdf InformePDFGenerator
}

// NewReporteHandler construye el handler.
func NewReporteHandler(svc *inventario.Service, pdf InformePDFGenerator) *ReporteHandler {
	return &ReporteHandler{svc: svc, pdf: pdf}
}

// InformeStock godoc
// @Summary      Informe agregado de stock
// @Description  Totales de productos y stock, conteo de bajo stock y desglose
// @Description  por estado. Se sirve de caché mientras el TTL siga vigente.
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  inventario.InformeStock
// @Router       /api/reportes/stock [get]
func (h *ReporteHandler) InformeStock(c *fiber.Ctx) error {
	informe, err := h.svc.GenerarInformeStock(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(informe)
}

// InformeStockPDF godoc
// @Summary      Informe de stock en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reportes/stock/pdf [get]
func (h *ReporteHandler) InformeStockPDF(c *fiber.Ctx) error {
	informe, err := h.svc.GenerarInformeStock(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	doc, err := h.pdf.GenerarInformePDF(informe)
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="informe-stock.pdf"`)
	return c.Send(doc)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/reporte"
)

// ReporteHandler reportes de gestión (protegido).
type ReporteHandler struct {
	uc *reporte.UseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reporte.UseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

func (h *ReporteHandler) query(c *fiber.Ctx) (dto.ReporteRequest, error) {
	var in dto.ReporteRequest
	err := c.QueryParser(&in)
	return in, err
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
}

// ExpedientesPeriodo godoc
// @Summary      Expedientes por periodo
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD (por defecto inicio de mes)"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Param        documento_id  query  int     false  "Tipo de documento"
// @Param        estado        query  string  false  "Estado"
// @Success      200  {object}  dto.ReportePeriodoResponse
// @Router       /api/reportes/expedientes-periodo [get]
func (h *ReporteHandler) ExpedientesPeriodo(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.ExpedientesPeriodo(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// EstadosActuales GET /api/reportes/estados-actuales
func (h *ReporteHandler) EstadosActuales(c *fiber.Ctx) error {
	out, err := h.uc.EstadosActuales(c.Context())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// PorColaborador GET /api/reportes/por-colaborador
func (h *ReporteHandler) PorColaborador(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.PorColaborador(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// TiemposAtencion GET /api/reportes/tiempos-atencion
func (h *ReporteHandler) TiemposAtencion(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.TiemposAtencion(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// ExpedientesObservados GET /api/reportes/expedientes-observados
func (h *ReporteHandler) ExpedientesObservados(c *fiber.Ctx) error {
	out, err := h.uc.ExpedientesObservados(c.Context())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Entregas GET /api/reportes/entregas
func (h *ReporteHandler) Entregas(c *fiber.Ctx) error {
	in, err := h.query(c)
	if err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.Entregas(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// ExportarExcel godoc
// @Summary      Exportar reporte a Excel
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.ExportarExcelRequest  true  "tipo y filas"
// @Success      200
// @Router       /api/reportes/exportar-excel [post]
func (h *ReporteHandler) ExportarExcel(c *fiber.Ctx) error {
	var in dto.ExportarExcelRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	b, nombre, err := h.uc.ExportarExcel(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return sendFile(c, mimeXLSX, nombre, b)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/atencion"
	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/expediente"
)

// ExpedienteHandler maneja recepción, gestión, observados e historial (protegido).
type ExpedienteHandler struct {
	uc         *expediente.UseCase
	documentos *expediente.DocumentosUseCase
	atenciones *atencion.UseCase
}

// NewExpedienteHandler construye el handler.
func NewExpedienteHandler(uc *expediente.UseCase, documentos *expediente.DocumentosUseCase, atenciones *atencion.UseCase) *ExpedienteHandler {
	return &ExpedienteHandler{uc: uc, documentos: documentos, atenciones: atenciones}
}

// Create godoc
// @Summary      Recepcionar expediente
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpedienteRequest  true  "Datos de recepción"
// @Success      201   {object}  dto.CreateExpedienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expedientes [post]
func (h *ExpedienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExpedienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.Receptor = usuarioActual(c, in.Receptor)
	if ok, err := validateInput(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "solicitante o asunto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar expedientes
// @Description  Filtros: estado, estado_excluir, buscar, periodo (Todos | Esta semana | Este mes), documento_id, fecha_inicio, fecha_fin.
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ExpedienteResponse
// @Router       /api/expedientes [get]
func (h *ExpedienteHandler) List(c *fiber.Ctx) error {
	var in dto.ExpedienteListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Observados lista los expedientes observados, el más antiguo primero.
// GET /api/expedientes/observados
func (h *ExpedienteHandler) Observados(c *fiber.Ctx) error {
	out, err := h.uc.Observados(c.Context(), c.Query("buscar"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// ExportarObservados descarga los observados en Excel.
// GET /api/expedientes/exportar-observados
func (h *ExpedienteHandler) ExportarObservados(c *fiber.Ctx) error {
	b, nombre, err := h.documentos.ExportarObservados(c.Context(), c.Query("buscar"))
	if err != nil {
		return respondError(c, err, "")
	}
	return sendFile(c, mimeXLSX, nombre, b)
}

// GetByID godoc
// @Summary      Obtener expediente por ID
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del expediente"
// @Success      200  {object}  dto.ExpedienteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id} [get]
func (h *ExpedienteHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar estado u observaciones
// @Description  Estado RECEPCIONADO sobre un expediente OBSERVADO registra la corrección.
// @Tags         expedientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                          true  "ID del expediente"
// @Param        body  body  dto.UpdateExpedienteRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ExpedienteResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/expedientes/{id} [put]
func (h *ExpedienteHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateExpedienteRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, in, usuarioActual(c, in.Usuario))
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return c.JSON(out)
}

// Corregir registra la subsanación de un observado: vuelve a RECEPCIONADO con fecha de hoy.
// POST /api/expedientes/:id/corregir
func (h *ExpedienteHandler) Corregir(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.CorregirRequest
	if len(c.Body()) > 0 {
		if ok, err := parseAndValidate(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Corregir(c.Context(), id, in, usuarioActual(c, in.Usuario))
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return c.JSON(out)
}

// Delete elimina el expediente con sus movimientos (solo administradores).
// DELETE /api/expedientes/:id
func (h *ExpedienteHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.Context(), id, GetUsuario(c)); err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return c.JSON(dto.MessageResponse{Message: "expediente eliminado"})
}

// Historial godoc
// @Summary      Historial de estados
// @Tags         expedientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del expediente"
// @Success      200  {object}  dto.HistorialResponse
// @Router       /api/expedientes/{id}/historial [get]
func (h *ExpedienteHandler) Historial(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.Historial(c.Context(), id)
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return c.JSON(out)
}

// HistorialPDF descarga el historial en PDF.
// GET /api/expedientes/:id/historial/pdf
func (h *ExpedienteHandler) HistorialPDF(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	b, nombre, err := h.documentos.HistorialPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return sendFile(c, mimePDF, nombre, b)
}

// Cargo descarga el cargo de recepción con la fecha límite y el QR de consulta.
// GET /api/expedientes/:id/cargo
func (h *ExpedienteHandler) Cargo(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	b, nombre, err := h.documentos.CargoPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return sendFile(c, mimePDF, nombre, b)
}

// Atenciones lista las atenciones registradas sobre el expediente.
// GET /api/expedientes/:id/atenciones
func (h *ExpedienteHandler) Atenciones(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.atenciones.ListByExpediente(c.Context(), id)
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return c.JSON(out)
}

// usuarioActual prefiere el usuario del token; el del cuerpo queda para clientes sin sesión.
func usuarioActual(c *fiber.Ctx, delCuerpo string) string {
	if u := GetUsuario(c); u != "" {
		return u
	}
	return delCuerpo
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/usecase"
)

// CatalogoHandler documentos y asuntos.
type CatalogoHandler struct {
	uc *usecase.CatalogoUseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(uc *usecase.CatalogoUseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

// ListDocumentos GET /api/documentos
func (h *CatalogoHandler) ListDocumentos(c *fiber.Ctx) error {
	out, err := h.uc.ListDocumentos(c.Context())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// ListAsuntos godoc
// @Summary      Listar asuntos
// @Tags         asuntos
// @Security     Bearer
// @Produce      json
// @Param        documento_id  query  int     false  "Filtrar por documento"
// @Param        activo        query  string  false  "true | false"
// @Success      200  {array}  dto.AsuntoResponse
// @Router       /api/asuntos [get]
func (h *CatalogoHandler) ListAsuntos(c *fiber.Ctx) error {
	var in dto.AsuntoListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.ListAsuntos(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

func (h *CatalogoHandler) GetAsunto(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetAsunto(c.Context(), id)
	if err != nil {
		return respondError(c, err, "asunto no encontrado")
	}
	return c.JSON(out)
}

// CreateAsunto godoc
// @Summary      Crear asunto
// @Tags         asuntos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AsuntoRequest  true  "Asunto"
// @Success      201   {object}  dto.AsuntoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/asuntos [post]
func (h *CatalogoHandler) CreateAsunto(c *fiber.Ctx) error {
	var in dto.AsuntoRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateAsunto(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateAsunto PUT /api/asuntos/:id (incluye activar/desactivar).
func (h *CatalogoHandler) UpdateAsunto(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.AsuntoRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateAsunto(c.Context(), id, in)
	if err != nil {
		return respondError(c, err, "asunto no encontrado")
	}
	return c.JSON(out)
}

// DeleteAsunto DELETE /api/asuntos/:id; con expedientes asociados responde 409.
func (h *CatalogoHandler) DeleteAsunto(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.DeleteAsunto(c.Context(), id); err != nil {
		return respondError(c, err, "asunto no encontrado")
	}
	return c.JSON(dto.MessageResponse{Message: "asunto eliminado"})
}

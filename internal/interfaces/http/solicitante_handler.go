package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/usecase"
)

// SolicitanteHandler maneja las peticiones HTTP para Solicitante (protegido).
type SolicitanteHandler struct {
	uc *usecase.SolicitanteUseCase
}

// NewSolicitanteHandler construye el handler.
func NewSolicitanteHandler(uc *usecase.SolicitanteUseCase) *SolicitanteHandler {
	return &SolicitanteHandler{uc: uc}
}

// List godoc
// @Summary      Buscar solicitante
// @Description  Búsqueda exacta por dni o codigo_modular; devuelve 0 o 1 elementos.
// @Tags         solicitantes
// @Security     Bearer
// @Produce      json
// @Param        dni             query  string  false  "DNI"
// @Param        codigo_modular  query  string  false  "Código modular"
// @Success      200  {array}  dto.SolicitanteResponse
// @Router       /api/solicitantes [get]
func (h *SolicitanteHandler) List(c *fiber.Ctx) error {
	var in dto.SolicitanteListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Buscar(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar solicitante
// @Tags         solicitantes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSolicitanteRequest  true  "Datos del solicitante"
// @Success      201   {object}  dto.SolicitanteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/solicitantes [post]
func (h *SolicitanteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSolicitanteRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *SolicitanteHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err, "solicitante no encontrado")
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/consulta"
)

// ConsultaHandler consulta pública del ciudadano (sin token, con límite de peticiones).
type ConsultaHandler struct {
	uc *consulta.UseCase
}

// NewConsultaHandler construye el handler.
func NewConsultaHandler(uc *consulta.UseCase) *ConsultaHandler {
	return &ConsultaHandler{uc: uc}
}

// Consultar godoc
// @Summary      Consultar estado de un trámite
// @Tags         consulta
// @Produce      json
// @Param        codigo  path  string  true  "N° de expediente o código de seguimiento"
// @Success      200  {object}  dto.ConsultaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/consulta/{codigo} [get]
func (h *ConsultaHandler) Consultar(c *fiber.Ctx) error {
	out, err := h.uc.Consultar(c.Context(), c.Params("codigo"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

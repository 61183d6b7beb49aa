package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/atencion"
	"github.com/ugelsanta/expedientes-api/internal/application/dto"
)

// AtencionHandler registra atenciones de colaboradores (protegido).
type AtencionHandler struct {
	uc *atencion.UseCase
}

// NewAtencionHandler construye el handler.
func NewAtencionHandler(uc *atencion.UseCase) *AtencionHandler {
	return &AtencionHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar atención
// @Description  Cambia el estado del expediente y deja atención e historial en una sola transacción.
// @Tags         atenciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AtencionRequest  true  "Atención"
// @Success      201   {object}  dto.AtencionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/atenciones [post]
func (h *AtencionHandler) Registrar(c *fiber.Ctx) error {
	var in dto.AtencionRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Registrar(c.Context(), in, usuarioActual(c, in.Usuario))
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

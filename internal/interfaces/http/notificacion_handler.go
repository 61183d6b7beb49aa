package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/notificacion"
)

// NotificacionHandler avisos de vencimiento de observados.
type NotificacionHandler struct {
	uc *notificacion.UseCase
}

// NewNotificacionHandler construye el handler.
func NewNotificacionHandler(uc *notificacion.UseCase) *NotificacionHandler {
	return &NotificacionHandler{uc: uc}
}

// Vencimientos godoc
// @Summary      Notificar observados próximos a vencer
// @Description  La lista del cuerpo es opcional; el servidor recalcula los días y solo avisa desde el día 8.
// @Tags         notificaciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NotificarVencimientosRequest  false  "Candidatos"
// @Success      200   {object}  dto.NotificarVencimientosResponse
// @Router       /api/notificaciones/vencimientos [post]
func (h *NotificacionHandler) Vencimientos(c *fiber.Ctx) error {
	var in dto.NotificarVencimientosRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Vencimientos(c.Context(), in, GetUsuario(c))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

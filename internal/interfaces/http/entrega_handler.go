package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/entrega"
)

const campoAutorizacion = "documento_autorizacion"

// EntregaHandler búsqueda y registro de entregas (protegido).
type EntregaHandler struct {
	uc *entrega.UseCase
}

// NewEntregaHandler construye el handler.
func NewEntregaHandler(uc *entrega.UseCase) *EntregaHandler {
	return &EntregaHandler{uc: uc}
}

// Buscar expediente entregable por número o código de seguimiento.
// GET /api/entregas/buscar/:codigo
func (h *EntregaHandler) Buscar(c *fiber.Ctx) error {
	out, err := h.uc.Buscar(c.Context(), c.Params("codigo"))
	if err != nil {
		return respondError(c, err, "no se encontró ningún expediente con ese código")
	}
	return c.JSON(out)
}

// Registrar godoc
// @Summary      Registrar entrega
// @Description  multipart/form-data. Para terceros admite el PDF de autorización en documento_autorizacion.
// @Tags         entregas
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  dto.DataResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Router       /api/entregas [post]
func (h *EntregaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.EntregaRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}

	var archivo *entrega.Archivo
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "formulario inválido"})
		}
		if files := form.File[campoAutorizacion]; len(files) > 0 {
			fh := files[0]
			f, err := fh.Open()
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: "no se pudo leer el archivo"})
			}
			defer f.Close()
			archivo = &entrega.Archivo{
				Nombre:      fh.Filename,
				ContentType: fh.Header.Get(fiber.HeaderContentType),
				Size:        fh.Size,
				Reader:      f,
			}
		}
	}

	out, err := h.uc.Registrar(c.Context(), in, archivo, usuarioActual(c, in.EntregadoPor))
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{
		Success: true,
		Message: "entrega registrada",
		Data:    out,
	})
}

// GetByExpediente acta de entrega de un expediente.
// GET /api/expedientes/:id/entrega
func (h *EntregaHandler) GetByExpediente(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByExpediente(c.Context(), id)
	if err != nil {
		return respondError(c, err, "expediente no encontrado")
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}

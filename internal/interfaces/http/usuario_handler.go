package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/application/usecase"
)

// UsuarioHandler administración de cuentas (solo administradores).
type UsuarioHandler struct {
	uc *usecase.UsuarioUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "Activo | Inactivo"
// @Param        rol     query  string  false  "Administrador | Colaborador"
// @Param        buscar  query  string  false  "Nombre, usuario, correo o DNI"
// @Success      200  {array}  dto.UsuarioResponse
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	var in dto.UsuarioListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Estadisticas GET /api/usuarios/estadisticas
func (h *UsuarioHandler) Estadisticas(c *fiber.Ctx) error {
	out, err := h.uc.Estadisticas(c.Context())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err, "usuario no encontrado")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUsuarioRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUsuarioRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update PUT /api/usuarios/:id; contraseña vacía conserva la actual.
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateUsuarioRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err, "usuario no encontrado")
	}
	return c.JSON(out)
}

// CambiarEstado PATCH /api/usuarios/:id/estado
func (h *UsuarioHandler) CambiarEstado(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.CambiarEstadoUsuarioRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.CambiarEstado(c.Context(), id, GetUserID(c), in.Estado)
	if err != nil {
		return respondError(c, err, "usuario no encontrado")
	}
	return c.JSON(out)
}

// Delete DELETE /api/usuarios/:id
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.Context(), id, GetUserID(c)); err != nil {
		return respondError(c, err, "usuario no encontrado")
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}

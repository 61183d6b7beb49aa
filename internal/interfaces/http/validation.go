package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ugelsanta/expedientes-api/internal/application/dto"
	"github.com/ugelsanta/expedientes-api/internal/domain/entity"
	"github.com/ugelsanta/expedientes-api/internal/domain/plazo"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores se reportan con el nombre del campo en el JSON (o en el form).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("dni", func(fl validator.FieldLevel) bool {
		return entity.DNIValido(fl.Field().String())
	})
	_ = v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		_, err := plazo.ParseFecha(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("estado", func(fl validator.FieldLevel) bool {
		return entity.EstadoValido(fl.Field().String())
	})
	return v
}

// mensajeCampo texto en castellano para cada regla fallida.
func mensajeCampo(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "es obligatorio"
	case "dni":
		return "debe tener exactamente 8 dígitos"
	case "fecha":
		return "debe ser una fecha válida (YYYY-MM-DD)"
	case "estado":
		return "no es un estado válido"
	case "email":
		return "no es un correo válido"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "min":
		return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("no debe superar %s caracteres", fe.Param())
	case "gt":
		return "debe ser mayor que " + fe.Param()
	}
	return "no es válido"
}

// validationErrors agrupa los errores del validator por campo.
func validationErrors(err error) map[string][]string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	out := make(map[string][]string, len(ves))
	for _, fe := range ves {
		out[fe.Field()] = append(out[fe.Field()], mensajeCampo(fe))
	}
	return out
}

// parseAndValidate lee el cuerpo (JSON o form) y aplica las reglas validate.
// Si falla ya escribió la respuesta 400 y devuelve false.
func parseAndValidate(c *fiber.Ctx, in any) (bool, error) {
	if err := c.BodyParser(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return validateInput(c, in)
}

// validateInput aplica las reglas validate a una entrada ya parseada.
func validateInput(c *fiber.Ctx, in any) (bool, error) {
	if err := validate.Struct(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Errors:  validationErrors(err),
		})
	}
	return true, nil
}

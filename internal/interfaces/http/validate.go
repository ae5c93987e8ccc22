package http

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-activos/internal/application/dto"
)

// validate instancia compartida; es segura para uso concurrente y cachea la
// metadata de los structs.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validarBody parsea el body JSON y valida las etiquetas `validate` del DTO.
// Devuelve una respuesta ya escrita (y true) cuando la entrada es inválida.
func validarBody(c *fiber.Ctx, in any) (handled bool, err error) {
	if err := c.BodyParser(in); err != nil {
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: mensajeValidacion(err)})
	}
	return false, nil
}

// mensajeValidacion resume los campos que fallaron sin exponer la sintaxis
// interna del validador.
func mensajeValidacion(err error) string {
	var verrs validator.ValidationErrors
	ok := false
	if ve, isVE := err.(validator.ValidationErrors); isVE {
		verrs, ok = ve, true
	}
	if !ok {
		return "entrada inválida"
	}
	campos := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		campos = append(campos, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "campos inválidos: " + strings.Join(campos, ", ")
}

package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-tracker/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Las violaciones usan el nombre JSON (o de query) del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validateStruct ejecuta las reglas `validate` del DTO y las convierte en ValidationError.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		ve.Add(fieldPath(fe), violationCode(fe.Tag()), violationMessage(fe))
	}
	return ve
}

// fieldPath ruta del campo sin el nombre del struct raíz (ej. "serials[0]").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func violationCode(tag string) string {
	switch tag {
	case "required":
		return domain.CodeRequired
	case "min", "max", "gte", "lte":
		return domain.CodeOutOfRange
	}
	return domain.CodeInvalid
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "min":
		return "debe ser al menos " + fe.Param()
	case "max":
		return "debe ser como máximo " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "email":
		return "email inválido"
	case "uuid":
		return "debe ser un UUID"
	}
	return "valor inválido (" + fe.Tag() + ")"
}

// bindJSON decodifica el cuerpo JSON y valida el DTO.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
	}
	return validateStruct(dst)
}

// bindQuery decodifica los parámetros de consulta y valida el DTO.
func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "parámetros de consulta inválidos")
	}
	return validateStruct(dst)
}

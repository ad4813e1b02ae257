package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rasiva-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// decimal.Decimal como número para que min/gt funcionen.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	// Los mensajes usan el nombre JSON/query del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validateStruct corre las etiquetas validate y devuelve un error de dominio legible.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.Invalid("%s", err.Error())
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fieldMessage(fe))
	}
	return domain.Invalid("%s", strings.Join(parts, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "uuid":
		return field + " debe ser un UUID"
	case "email":
		return field + " debe ser un email válido"
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s no puede superar %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s debe tener formato %s", field, fe.Param())
	}
	return fmt.Sprintf("%s inválido (%s)", field, fe.Tag())
}

// bindAndValidate parsea el body JSON y valida.
func bindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.Invalid("cuerpo inválido: %v", err)
	}
	return validateStruct(dst)
}

// queryAndValidate parsea la query string y valida.
func queryAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return domain.Invalid("parámetros inválidos: %v", err)
	}
	return validateStruct(dst)
}

// uuidParam devuelve el parámetro de ruta si es un UUID.
func uuidParam(c *fiber.Ctx, name string) (string, error) {
	v := c.Params(name)
	if !isUUID(v) {
		return "", domain.Invalid("%s inválido: %q", name, v)
	}
	return v, nil
}

func isUUID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

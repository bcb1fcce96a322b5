package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"billetera-ia/pkg/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindAndValidate parses the JSON body into dst and checks its validate tags.
// On failure it returns the field error map to send back as 422.
func bindAndValidate(c *fiber.Ctx, dst any) map[string][]string {
	if err := c.BodyParser(dst); err != nil {
		return map[string][]string{"body": {"The request body must be valid JSON."}}
	}
	return validateStruct(dst)
}

func validateStruct(dst any) map[string][]string {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"body": {err.Error()}}
	}

	messages := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		messages[fe.Field()] = append(messages[fe.Field()], fieldMessage(fe))
	}
	return messages
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", fe.Field())
	case "uuid":
		return fmt.Sprintf("The %s field must be a valid UUID.", fe.Field())
	default:
		return fmt.Sprintf("The %s field is invalid.", fe.Field())
	}
}

func validationFailed(c *fiber.Ctx, messages map[string][]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":    "Validation failed",
		"messages": messages,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "No autenticado",
	})
}

// getUserID reads the authenticated user set by the auth middleware.
func getUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	raw, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest validates a request DTO against its `validate` tags and
// returns a fiber 400 error naming the first failing field.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Field '%s' failed validation: %s", first.Field(), first.Tag()))
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	return nil
}

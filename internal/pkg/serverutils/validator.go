package serverutils

import (
	"fmt"
	"strings"

	"voidbitz-chat-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and converts failures into a single
// client-readable validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.Validation("Invalid request payload")
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, describeFieldError(fieldErr))
	}

	return apperror.Validation("%s", strings.Join(messages, "; "))
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", fieldErr.Field())
	case "max":
		return fmt.Sprintf("Field '%s' must be at most %s characters", fieldErr.Field(), fieldErr.Param())
	case "url":
		return fmt.Sprintf("Field '%s' must be a valid URL", fieldErr.Field())
	default:
		return fmt.Sprintf("Field '%s' failed validation '%s'", fieldErr.Field(), fieldErr.Tag())
	}
}

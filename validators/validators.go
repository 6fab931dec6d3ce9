package validators

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used by the per-area validator packages
var Validate = validator.New()

// CollectErrors converts validator.ValidationErrors into the field->message map
// returned in the validation error envelope
func CollectErrors(err error) map[string]string {
	errors := make(map[string]string)

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["request"] = "Invalid request data!"
		return errors
	}

	for _, e := range verrs {
		field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
		errors[field] = messageForTag(e)
	}
	return errors
}

func messageForTag(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", e.Field())
	case "email":
		return "Invalid email address!"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long!", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long!", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s!", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s!", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s!", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid!", e.Field())
	}
}

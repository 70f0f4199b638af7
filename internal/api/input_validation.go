package api

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var errMalformedBody = errors.New("malformed request body")

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Panics only on a malformed tag registration, which would be a
	// programming error caught by any test run.
	if err := validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return validate
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// parseInto decodes the JSON body and runs the schema validation, keeping
// the two failure modes behind one error for the handlers.
func (handler *Handler) parseInto(c *fiber.Ctx, input any) error {
	if err := c.BodyParser(input); err != nil {
		return errMalformedBody
	}
	return handler.validate.Struct(input)
}

// inputErrorDetails flattens a validation failure into per-field messages.
// Unknown error shapes collapse into a single generic entry.
func inputErrorDetails(err error) []fieldError {
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return []fieldError{{Field: "", Message: "invalid request body"}}
	}

	details := make([]fieldError, 0, len(violations))
	for _, violation := range violations {
		field := jsonFieldName(violation.Field())
		details = append(details, fieldError{Field: field, Message: fieldMessage(field, violation)})
	}
	return details
}

func fieldMessage(field string, violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "username":
		return fmt.Sprintf("%s may only contain letters, digits and underscores", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(violation.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, violation.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, violation.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, violation.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, violation.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, violation.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Struct fields are exported Go names; clients see the JSON names.
func jsonFieldName(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

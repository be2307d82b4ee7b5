package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError lists every invalid setting.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Fields, "; ")
}

// Validate checks value ranges and enumerations.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}
	out := &ValidationError{Fields: make([]string, len(verrs))}
	for i, fe := range verrs {
		out.Fields[i] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	name := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Settings."))
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", name, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", name, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", name, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q check", name, fe.Tag())
	}
}

package validator

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var validators = map[string]validator.Func{
	"phone":         ValidatePhone,
	"bloodgroup":    ValidateBloodGroup,
	"role":          ValidateRole,
	"staffusername": ValidateStaffUsername,
}

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("gin binding engine is not go-playground/validator")
	}
	return v, nil
}

// RegisterAll registers the custom tags on gin's validator engine.
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("get validator engine: %w", err)
	}

	// Report fields by their wire names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})

	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}

	slog.Debug("validators registered", "count", len(validators))
	return nil
}

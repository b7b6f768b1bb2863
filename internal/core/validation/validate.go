// Package validation runs struct-tag validation and converts failures to AppError.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"lumbertrace/internal/core/apperror"
)

var (
	once     sync.Once
	validate *validator.Validate
	enums    = map[string][]string{}
	enumsMu  sync.RWMutex
)

// instance returns the shared validator. Field names in errors use the json tag.
func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = validate.RegisterValidation("enum", validateEnum)
	})
	return validate
}

// RegisterEnum declares the allowed values for `validate:"enum=<name>"`.
// The oneof tag cannot be used because several values contain spaces.
func RegisterEnum(name string, values ...string) {
	enumsMu.Lock()
	defer enumsMu.Unlock()
	enums[name] = values
}

func validateEnum(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	enumsMu.RLock()
	allowed, ok := enums[fl.Param()]
	enumsMu.RUnlock()
	if !ok {
		return false
	}
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

// Struct validates v and returns a VALIDATION_ERROR listing every failing field.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewValidation(err.Error())
	}

	fields := make(map[string]string, len(verrs))
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
		names = append(names, fe.Field())
	}

	return apperror.NewValidation("invalid fields: "+strings.Join(names, ", ")).
		WithDetail("fields", fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "max":
		return "is too long (max " + fe.Param() + ")"
	case "enum":
		enumsMu.RLock()
		allowed := enums[fe.Param()]
		enumsMu.RUnlock()
		return "must be one of: " + strings.Join(allowed, ", ")
	default:
		return "failed " + fe.Tag() + " check"
	}
}

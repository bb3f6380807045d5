package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	mosaicerrors "github.com/alexisbeaulieu97/mosaic/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	storeDrivers = map[string]struct{}{DriverFile: {}, DriverSQLite: {}}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(field.Name)
			}
			return name
		})

		_ = v.RegisterValidation("debounce_window", func(fl validator.FieldLevel) bool {
			d := time.Duration(fl.Field().Int())
			return d >= MinDebounce && d <= MaxDebounce
		})

		_ = v.RegisterValidation("store_driver", func(fl validator.FieldLevel) bool {
			_, ok := storeDrivers[fl.Field().String()]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return mosaicerrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// convertValidationError normalizes validator errors into mosaic validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		return mosaicerrors.NewValidationError(field, describe(ve), err)
	}

	return mosaicerrors.NewValidationError("config", err.Error(), err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "debounce_window":
		return fmt.Sprintf("must be between %s and %s", MinDebounce, MaxDebounce)
	case "store_driver":
		return fmt.Sprintf("unknown store driver %q (want %s or %s)", fe.Value(), DriverFile, DriverSQLite)
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}

// yamlishFieldName drops the root struct name: Config.api.per_page -> api.per_page.
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report fields by their json names so clients see the keys they sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			key := fieldPath(e.Namespace())
			switch e.Tag() {
			case "required":
				errors[key] = field + " is required"
			case "email":
				errors[key] = field + " must be a valid email address"
			case "min":
				errors[key] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[key] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[key] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[key] = field + " must be less than or equal to " + e.Param()
			case "oneof":
				errors[key] = field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
			case "datetime":
				errors[key] = field + " must match the format " + humanLayout(e.Param())
			default:
				errors[key] = field + " is invalid"
			}
		}
	}

	return errors
}

// fieldPath drops the struct name from a namespace like "CreateDepartmentRequest.sub_departments[0].name"
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func humanLayout(layout string) string {
	switch layout {
	case "2006-01-02":
		return "YYYY-MM-DD"
	case "15:04":
		return "HH:MM"
	}
	return layout
}

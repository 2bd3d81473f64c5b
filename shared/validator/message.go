package validator

import (
	"errors"
	"fmt"
	"reflect"

	val "github.com/go-playground/validator/v10"
)

type describer func(fe val.FieldError) string

// Only the first failing field is reported; front desk clients fix one field at a time.
var describers = map[string]describer{
	"required": func(fe val.FieldError) string { return fe.Field() + " is required" },
	"uuid":     func(fe val.FieldError) string { return fe.Field() + " must be a valid UUID" },
	"enum":     func(fe val.FieldError) string { return fe.Field() + " has an unsupported value" },
	"oneof":    func(fe val.FieldError) string { return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()) },
	"gtfield":  func(fe val.FieldError) string { return fmt.Sprintf("%s must be after %s", fe.Field(), fe.Param()) },
	"gt":       bound("greater than"),
	"gte":      bound("greater than or equal to"),
	"lte":      bound("less than or equal to"),
	"min":      bound("greater than or equal to"),
	"max":      bound("less than or equal to"),
}

// bound words numeric limits as comparisons and string or slice limits as lengths.
func bound(comparison string) describer {
	return func(fe val.FieldError) string {
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s length must be %s %s characters", fe.Field(), comparison, fe.Param())
		case reflect.Slice, reflect.Map, reflect.Array:
			return fmt.Sprintf("%s must have %s %s items", fe.Field(), comparison, fe.Param())
		default:
			return fmt.Sprintf("%s must be %s %s", fe.Field(), comparison, fe.Param())
		}
	}
}

func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err.Error()
	}

	first := fieldErrors[0]
	if describe, ok := describers[first.Tag()]; ok {
		return describe(first)
	}

	return fmt.Sprintf("%s failed the %s check", first.Field(), first.Tag())
}

package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Fields flattens a request binding error into a field -> messages map
// keyed by the JSON field name. Errors that carry no per-field detail come
// back under "non_field_errors".
func Fields(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{
			"non_field_errors": {"Invalid request body."},
		}
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := jsonName(fe.Field())
		out[field] = append(out[field], message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s items or characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s items or characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed %q validation.", fe.Tag())
	}
}

// jsonName converts a Go struct field name to its snake_case JSON form,
// which is how every request DTO in this API names its fields.
func jsonName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
)

var validate = validator.New()

// validateStruct runs struct-tag validation and reports failures as
// errs.ErrInvalidConfig, naming each offending field.
func validateStruct(what string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.InvalidConfig("%s: %v", what, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errs.InvalidConfig("%s: %s", what, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s: key %v is not a number", field, fe.Value())
	default:
		return fmt.Sprintf("%s fails %s", field, fe.Tag())
	}
}

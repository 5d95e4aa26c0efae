package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"shogun-be/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names so messages match request keys
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs struct tags and converts the first failure into an
// apperr validation error naming the offending field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation(err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return apperr.Validation("Campo requerido: " + fe.Field())
	case "oneof":
		return apperr.Validation(fmt.Sprintf("Valor inválido para %s: %v", fe.Field(), fe.Value()))
	default:
		return apperr.Validation("Valor inválido para " + fe.Field())
	}
}

// RequireMoney fails when a required amount is missing or any amount is negative.
func RequireMoney(field string, d *decimal.Decimal, required bool) error {
	if d == nil {
		if required {
			return apperr.Validation("Campo requerido: " + field)
		}
		return nil
	}
	if d.IsNegative() {
		return apperr.Validation("Valor inválido para " + field)
	}
	return nil
}

// RequireText trims a patch value in place and fails when it is present but
// blank. A nil pointer means the field is not being changed.
func RequireText(field string, s *string) error {
	if s == nil {
		return nil
	}
	*s = strings.TrimSpace(*s)
	if *s == "" {
		return apperr.Validation("Campo requerido: " + field)
	}
	return nil
}

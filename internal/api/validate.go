package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/h-wallet/h_wallet/internal/apierr"
)

// Shared validator instance; validator.Validate is safe for concurrent use.
// Violations are reported under the field's JSON name.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct checks the request payload against its validate tags and
// converts the first violation into a bad-request error with a readable
// message.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apierr.BadRequest("invalid request payload")
	}
	return apierr.BadRequest(fieldMessage(verrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only numbers", field)
	case "eqfield":
		return fmt.Sprintf("%s field does not match %s", field, strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

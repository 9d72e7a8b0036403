package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func Validate[T any](value T) (T, error) {
	if err := validate.Struct(value); err != nil {
		return value, ValidationErrorToString(err)
	}

	return value, nil
}

// ValidationErrorToString lists each failed rule on its own line.
func ValidationErrorToString(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	lines := make([]string, len(verrs))
	for i, fe := range verrs {
		if fe.Param() == "" {
			lines[i] = fmt.Sprintf("field '%s' failed rule '%s'", fe.Field(), fe.Tag())
			continue
		}
		lines[i] = fmt.Sprintf("field '%s' failed rule '%s=%s', got '%v'", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
	return errors.New(strings.Join(lines, "\n"))
}

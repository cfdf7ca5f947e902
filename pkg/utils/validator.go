package utils

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts validator/v10 to echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	instance      *CustomValidator
)

// GetValidator returns the process-wide validator. validator.Validate caches struct
// metadata, so one instance is shared.
func GetValidator() *CustomValidator {
	validatorOnce.Do(func() {
		instance = &CustomValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
	})
	return instance
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return errors.New(describeValidationError(err))
	}
	return nil
}

// describeValidationError turns validator errors into "field: rule" sentences.
func describeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "required_with":
			msgs = append(msgs, fmt.Sprintf("%s is required when %s is set", field, fe.Param()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", field))
		case "min", "gte", "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s (%s)", field, fe.Param(), fe.Tag()))
		case "max", "lte", "lt":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s (%s)", field, fe.Param(), fe.Tag()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return "Validation failed: " + strings.Join(msgs, "; ")
}

package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/careops/hospitalops/pkg/util/errorutil"
)

var validate = validator.New()

// Validate runs struct tag validation and converts failures into the
// service's validation error shape.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	details := map[string]any{}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[strings.ToLower(fe.Field())] = fe.Tag()
		}
	}
	return apperrors.NewValidationError("invalid payload", details)
}

package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type requestValidator struct {
	v *validator.Validate
}

func NewValidator() echo.Validator {
	return &requestValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate reports the first failing field in a readable form.
func (r *requestValidator) Validate(i any) error {
	err := r.v.Struct(i)
	if err == nil {
		return nil
	}

	vErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrors) == 0 {
		return err
	}

	fe := vErrors[0]
	switch fe.Tag() {
	case "required":
		return errors.Errorf("%s is required", fe.Namespace())
	case "email":
		return errors.Errorf("%s must be a valid email", fe.Namespace())
	case "min":
		return errors.Errorf("%s must be at least %s characters", fe.Namespace(), fe.Param())
	case "oneof":
		return errors.Errorf("%s must be one of: %s", fe.Namespace(), fe.Param())
	default:
		return errors.Errorf("%s failed %s validation", fe.Namespace(), fe.Tag())
	}
}

package api

import (
	"github.com/Gaut2812/TECHXAURA-2K26-main/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProcessRequest runs the request decoding steps in order and stops at the first failure.
func ProcessRequest[T any](e echo.Context, req *T, steps ...func(echo.Context, *T) *service.Error) *service.Error {
	for _, step := range steps {
		if err := step(e, req); err != nil {
			return err
		}
	}
	return nil
}

func bindStep[T any](e echo.Context, req *T) *service.Error {
	if err := e.Bind(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, "invalid request body")
	}
	return nil
}

func validateStep[T any](e echo.Context, req *T) *service.Error {
	if err := e.Validate(req); err != nil {
		return service.NewError(service.ErrorCodeInvalidBody, errors.Wrap(err, "request validation failed").Error())
	}
	return nil
}

func decodeRequest[T any](e echo.Context, req *T) *service.Error {
	return ProcessRequest(e, req, bindStep[T], validateStep[T])
}

// Package validator adapts go-playground/validator to echo's Validator
// interface for request payload struct tags.
package validator

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the echo.Validator used for request payloads.
func New() echo.Validator {
	return &echoValidator{validate: validator.New()}
}

// Validate runs struct-tag validation and converts failures into an echo
// HTTP error so the error middleware renders them as a 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

package dto

import (
	"fmt"
	"strings"

	"github.com/jellydator/validation"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestor-tienda/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// wrapValidationError convierte un error de jellydator/validation en domain.ErrInvalidInput.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
}

// positiveDecimal exige un decimal.Decimal estrictamente positivo.
var positiveDecimal = validation.By(func(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		if p, isPtr := value.(*decimal.Decimal); isPtr && p != nil {
			d, ok = *p, true
		}
	}
	if !ok {
		return nil
	}
	if !d.GreaterThan(decimal.Zero) {
		return validation.NewError("validation_positive_decimal", "debe ser mayor que cero")
	}
	return nil
})

// notBlank rechaza cadenas compuestas solo de espacios.
var notBlank = validation.NewStringRuleWithError(
	func(s string) bool { return len(s) == 0 || strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "no puede estar en blanco"),
)

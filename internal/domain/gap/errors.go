package gap

import (
	"errors"
	"fmt"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain"
)

// ValidationError error fatal de configuración o de esquema de entrada.
// No debe reintentarse: el llamador lo muestra como error de configuración.
type ValidationError struct {
	Field  string
	Reason string
	Err    error // sentinela de domain (ErrInvalidPeriodType, ErrNegativeQuantity, ...)
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("validación %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("validación %s: %v: %s", e.Field, e.Err, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is hace que todo ValidationError coincida con domain.ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrInvalidInput
}

// IsValidationError indica si err (o alguno de sus envoltorios) es un ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

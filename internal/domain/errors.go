package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidPeriodType = errors.New("tipo de período no reconocido")
	ErrNegativeQuantity  = errors.New("cantidad negativa")
)

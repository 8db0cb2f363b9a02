package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemandSource origen de una línea de demanda.
type DemandSource string

const (
	DemandSourceOC       DemandSource = "OC"       // orden de confirmación pendiente de entrega
	DemandSourceForecast DemandSource = "Forecast" // pronóstico de cliente
)

// DemandRecord línea cruda de demanda tal como la entrega el cargador de datos.
// Quantity ya viene neta de lo entregado.
type DemandRecord struct {
	ProductID  string
	Date       *time.Time // fecha resoluble (ETA o ETD según configuración); nil = no resoluble
	Quantity   decimal.Decimal
	Attributes ProductAttributes
	Source     DemandSource
	Number     string // número de OC o de forecast, solo informativo
}

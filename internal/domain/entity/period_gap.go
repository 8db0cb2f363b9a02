package entity

import "github.com/shopspring/decimal"

// FulfillmentStatus estado de cumplimiento de un período.
type FulfillmentStatus string

const (
	StatusFulfilled FulfillmentStatus = "Fulfilled"
	StatusShortage  FulfillmentStatus = "Shortage"
)

// PeriodGapRow resultado de la simulación para un (producto, período).
// BacklogQty, EffectiveDemand y BacklogToNext solo tienen sentido con TrackBacklog.
type PeriodGapRow struct {
	ProductID  string
	Attributes ProductAttributes
	Period     string

	BeginInventory decimal.Decimal
	SupplyInPeriod decimal.Decimal
	TotalAvailable decimal.Decimal
	TotalDemandQty decimal.Decimal

	TrackBacklog    bool
	BacklogQty      decimal.Decimal // backlog heredado del período anterior
	EffectiveDemand decimal.Decimal
	BacklogToNext   decimal.Decimal

	CarryForwardToNext decimal.Decimal
	GapQuantity        decimal.Decimal
	FulfillmentRate    decimal.Decimal // porcentaje 0..100
	FulfillmentStatus  FulfillmentStatus
}

// HasBacklog indica si el período deja demanda pendiente para el siguiente.
func (r PeriodGapRow) HasBacklog() bool {
	return r.TrackBacklog && r.BacklogToNext.IsPositive()
}

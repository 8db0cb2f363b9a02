package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplySource origen de una línea de oferta.
type SupplySource string

const (
	SupplySourceInventory  SupplySource = "Inventory"
	SupplySourcePendingCAN SupplySource = "Pending CAN"
	SupplySourcePendingPO  SupplySource = "Pending PO"
	SupplySourceWHTransfer SupplySource = "Pending WH Transfer"
)

// AllSupplySources orden canónico de las fuentes de oferta.
var AllSupplySources = []SupplySource{
	SupplySourceInventory, SupplySourcePendingCAN, SupplySourcePendingPO, SupplySourceWHTransfer,
}

// DateField nombre del campo de fecha que usa cada fuente.
// El inventario disponible se fecha "hoy"; las recepciones pendientes usan su propia fecha.
func (s SupplySource) DateField() string {
	switch s {
	case SupplySourcePendingCAN:
		return "arrival_date"
	case SupplySourcePendingPO:
		return "eta"
	case SupplySourceWHTransfer:
		return "transfer_date"
	default:
		return "date_ref"
	}
}

// SupplyRecord línea cruda de oferta. Date ya es la fecha propia de la fuente.
type SupplyRecord struct {
	ProductID  string
	Date       *time.Time
	Quantity   decimal.Decimal
	Attributes ProductAttributes
	Source     SupplySource
	Number     string // número de PO/CAN/traslado, solo informativo
	ExpiryDate *time.Time
}

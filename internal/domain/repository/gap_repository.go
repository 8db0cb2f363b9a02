package repository

import (
	"context"
	"time"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
)

// OC date fields admitidos para fechar la demanda de órdenes de confirmación.
const (
	OCDateETA = "eta"
	OCDateETD = "etd"
)

// DemandFilter filtros de carga de demanda.
// ProductIDs y Brands vacíos = sin filtro.
type DemandFilter struct {
	Sources                  []entity.DemandSource
	ProductIDs               []string
	Brands                   []string
	OCDateField              string // OCDateETA | OCDateETD
	IncludeConvertedForecast bool
}

// SupplyFilter filtros de carga de oferta.
type SupplyFilter struct {
	Sources        []entity.SupplySource
	ProductIDs     []string
	Brands         []string
	ExcludeExpired bool
	Today          time.Time // fecha asignada al inventario disponible
}

// DemandRepository puerto de lectura de demanda (OC pendientes y forecast).
type DemandRepository interface {
	ListDemand(ctx context.Context, f DemandFilter) ([]entity.DemandRecord, error)
}

// SupplyRepository puerto de lectura de oferta (inventario y recepciones pendientes).
type SupplyRepository interface {
	ListSupply(ctx context.Context, f SupplyFilter) ([]entity.SupplyRecord, error)
}

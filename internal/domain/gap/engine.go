package gap

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
)

const defaultTopN = 10

// Options parámetros de un cálculo.
type Options struct {
	PeriodType   PeriodType
	TrackBacklog bool
	Parallelism  int
	// BalanceTolerance margen para considerar ΣS == ΣD. Cero = igualdad exacta.
	BalanceTolerance decimal.Decimal
	Thresholds       *Thresholds // nil = DefaultThresholds
	TopN             int         // tamaño de las listas de productos/períodos críticos
}

// Input las dos tablas materializadas más las opciones.
type Input struct {
	Demand  []entity.DemandRecord
	Supply  []entity.SupplyRecord
	Options Options
}

// Actions listas de acción derivadas de la categorización.
type Actions struct {
	OrderRequirements []OrderRequirement
	SurplusReviews    []SurplusReview
	CriticalProducts  []CriticalProduct
	CriticalPeriods   []CriticalPeriod
}

// Result salida completa de un cálculo.
type Result struct {
	PeriodType    PeriodType
	TrackBacklog  bool
	Rows          []entity.PeriodGapRow // ordenadas por (producto, período)
	Categories    map[string]entity.ProductCategorization
	Sets          CategorySets
	Summary       Summary
	Actions       Actions
	ProductTypes  map[string]ProductType
	DroppedDemand int
	DroppedSupply int
}

// Empty un resultado vacío es un estado terminal normal, distinto de un error de validación.
func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// Calculate ejecuta Aggregate → Simulate → Categorize → Summarize.
// Devuelve *ValidationError si las opciones o el esquema de entrada son inválidos.
func Calculate(in Input) (*Result, error) {
	opts := in.Options
	if !opts.PeriodType.Valid() {
		return nil, &ValidationError{Field: "period_type", Reason: fmt.Sprintf("%q", opts.PeriodType), Err: domain.ErrInvalidPeriodType}
	}
	if err := validateDemand(in.Demand); err != nil {
		return nil, err
	}
	if err := validateSupply(in.Supply); err != nil {
		return nil, err
	}

	agg := Aggregate(in.Demand, in.Supply, opts.PeriodType)
	rows := Simulate(agg.Buckets, SimulationOptions{
		TrackBacklog: opts.TrackBacklog,
		Parallelism:  opts.Parallelism,
	})

	cats := NewCategorizer(opts.BalanceTolerance).Categorize(rows)

	th := DefaultThresholds()
	if opts.Thresholds != nil {
		th = *opts.Thresholds
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = defaultTopN
	}

	return &Result{
		PeriodType:   opts.PeriodType,
		TrackBacklog: opts.TrackBacklog,
		Rows:         rows,
		Categories:   cats,
		Sets:         Sets(cats),
		Summary: Summarize(rows, cats, SummaryOptions{
			StatusRules:      StatusRules(th, opts.BalanceTolerance),
			BalanceTolerance: opts.BalanceTolerance,
		}),
		Actions: Actions{
			OrderRequirements: OrderRequirements(rows, cats),
			SurplusReviews:    SurplusReviews(rows, cats),
			CriticalProducts:  CriticalProducts(rows, topN),
			CriticalPeriods:   CriticalPeriods(rows, topN),
		},
		ProductTypes:  agg.ProductTypes,
		DroppedDemand: agg.DroppedDemand,
		DroppedSupply: agg.DroppedSupply,
	}, nil
}

func validateDemand(rows []entity.DemandRecord) error {
	for i, r := range rows {
		if r.Quantity.IsNegative() {
			return &ValidationError{Field: "demand.demand_quantity", Reason: fmt.Sprintf("fila %d: %s", i, r.Quantity), Err: domain.ErrNegativeQuantity}
		}
	}
	return nil
}

func validateSupply(rows []entity.SupplyRecord) error {
	for i, r := range rows {
		if r.Quantity.IsNegative() {
			return &ValidationError{Field: "supply.supply_quantity", Reason: fmt.Sprintf("fila %d: %s", i, r.Quantity), Err: domain.ErrNegativeQuantity}
		}
	}
	return nil
}

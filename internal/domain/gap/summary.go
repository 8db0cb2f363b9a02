package gap

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
)

// Priority prioridad de acción sugerida (1 = más urgente).
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	}
	return "Low"
}

// ProductSummary métricas por producto.
type ProductSummary struct {
	ProductID      string
	Attributes     entity.ProductAttributes
	Category       entity.MainCategory
	TimingShortage bool
	TimingSurplus  bool
	CoverageStatus CoverageStatus

	TotalDemand decimal.Decimal
	TotalSupply decimal.Decimal
	NetPosition decimal.Decimal

	TotalPeriods     int
	FulfilledPeriods int
	ShortagePeriods  int
	SurplusPeriods   int

	MaxShortage   decimal.Decimal // mayor faltante de un solo período, en valor absoluto
	MaxSurplus    decimal.Decimal
	FinalBacklog  decimal.Decimal
	PeakBacklog   decimal.Decimal // mayor backlog heredado por un período
	AvgFillRate   decimal.Decimal
	FirstShortage string // primer período con faltante, vacío si no hay

	RecommendedAction string
	Priority          Priority
}

// OverallSummary métricas del conjunto completo.
type OverallSummary struct {
	TotalProducts int
	TotalPeriods  int // períodos distintos

	NetShortageProducts    int
	NetSurplusProducts     int
	BalancedProducts       int
	TimingShortageProducts int
	TimingSurplusProducts  int

	TotalDemand         decimal.Decimal
	TotalSupply         decimal.Decimal
	TotalShortageQty    decimal.Decimal // Σ |gap| de los períodos con faltante
	TotalSurplusQty     decimal.Decimal // Σ gap de los períodos con excedente
	OverallFillRate     decimal.Decimal
	AvgFillRate         decimal.Decimal
	TotalBacklog        decimal.Decimal // Σ backlog final por producto
	PeakBacklog         decimal.Decimal // Σ backlog máximo por producto
	ProductsWithBacklog int

	FullyCoveredProducts int
	CoverageRate         decimal.Decimal
}

// Summary resultado completo del agregador de resumen.
type Summary struct {
	Products []ProductSummary
	Overall  OverallSummary
}

// SummaryOptions reglas de clasificación que usa el resumen.
type SummaryOptions struct {
	StatusRules      []StatusRule    // nil = umbrales por defecto con BalanceTolerance
	BalanceTolerance decimal.Decimal // para productos sin categorización previa
}

// Summarize reduce las filas a métricas por producto y globales. Es pura e idempotente.
func Summarize(rows []entity.PeriodGapRow, cats map[string]entity.ProductCategorization, opts SummaryOptions) Summary {
	rules := opts.StatusRules
	if rules == nil {
		rules = StatusRules(DefaultThresholds(), opts.BalanceTolerance)
	}
	fallback := NewCategorizer(opts.BalanceTolerance)

	groups := GroupByProduct(rows)
	products := make([]ProductSummary, 0, len(groups))
	overall := OverallSummary{TotalProducts: len(groups)}
	periods := make(map[string]struct{})
	fillSum := decimal.Zero

	for _, g := range groups {
		ps := summarizeProduct(g, cats[g.ProductID], rules, fallback)
		products = append(products, ps)

		switch ps.Category {
		case entity.CategoryNetShortage:
			overall.NetShortageProducts++
		case entity.CategoryNetSurplus:
			overall.NetSurplusProducts++
		default:
			overall.BalancedProducts++
		}
		if ps.TimingShortage {
			overall.TimingShortageProducts++
		} else {
			overall.FullyCoveredProducts++
		}
		if ps.TimingSurplus {
			overall.TimingSurplusProducts++
		}
		if ps.FinalBacklog.IsPositive() {
			overall.ProductsWithBacklog++
		}
		overall.TotalDemand = overall.TotalDemand.Add(ps.TotalDemand)
		overall.TotalSupply = overall.TotalSupply.Add(ps.TotalSupply)
		overall.TotalBacklog = overall.TotalBacklog.Add(ps.FinalBacklog)
		overall.PeakBacklog = overall.PeakBacklog.Add(ps.PeakBacklog)

		for _, r := range g.Rows {
			periods[r.Period] = struct{}{}
			fillSum = fillSum.Add(r.FulfillmentRate)
			switch {
			case r.GapQuantity.IsNegative():
				overall.TotalShortageQty = overall.TotalShortageQty.Add(r.GapQuantity.Abs())
			case r.GapQuantity.IsPositive():
				overall.TotalSurplusQty = overall.TotalSurplusQty.Add(r.GapQuantity)
			}
		}
	}

	overall.TotalPeriods = len(periods)
	overall.OverallFillRate = fulfillmentRate(overall.TotalSupply, overall.TotalDemand)
	if len(rows) > 0 {
		overall.AvgFillRate = fillSum.Div(decimal.NewFromInt(int64(len(rows))))
	}
	if overall.TotalProducts > 0 {
		overall.CoverageRate = decimal.NewFromInt(int64(overall.FullyCoveredProducts)).
			Mul(hundred).Div(decimal.NewFromInt(int64(overall.TotalProducts)))
	}

	sortProductSummaries(products)
	return Summary{Products: products, Overall: overall}
}

func summarizeProduct(g ProductTotals, cat entity.ProductCategorization, rules []StatusRule, fallback *Categorizer) ProductSummary {
	ps := ProductSummary{
		ProductID:      g.ProductID,
		Attributes:     g.Attributes,
		Category:       cat.Main,
		TimingShortage: cat.TimingShortage,
		TimingSurplus:  cat.TimingSurplus,
		TotalDemand:    g.TotalDemand,
		TotalSupply:    g.TotalSupply,
		NetPosition:    g.NetPosition(),
		TotalPeriods:   len(g.Rows),
		CoverageStatus: ClassifyCoverage(rules, g.TotalSupply, g.TotalDemand),
	}
	if ps.Category == "" {
		ps.Category = fallback.MainCategory(g.TotalSupply, g.TotalDemand)
	}

	fillSum := decimal.Zero
	for _, r := range g.Rows {
		fillSum = fillSum.Add(r.FulfillmentRate)
		if r.FulfillmentStatus == entity.StatusFulfilled {
			ps.FulfilledPeriods++
		}
		switch {
		case r.GapQuantity.IsNegative():
			ps.ShortagePeriods++
			ps.MaxShortage = decimal.Max(ps.MaxShortage, r.GapQuantity.Abs())
			if ps.FirstShortage == "" {
				ps.FirstShortage = r.Period
			}
		case r.GapQuantity.IsPositive():
			ps.SurplusPeriods++
			ps.MaxSurplus = decimal.Max(ps.MaxSurplus, r.GapQuantity)
		}
		if r.TrackBacklog {
			ps.PeakBacklog = decimal.Max(ps.PeakBacklog, r.BacklogQty)
		}
	}
	if n := len(g.Rows); n > 0 {
		ps.AvgFillRate = fillSum.Div(decimal.NewFromInt(int64(n)))
		if last := g.Rows[n-1]; last.TrackBacklog {
			ps.FinalBacklog = last.BacklogToNext
		}
	}
	ps.RecommendedAction, ps.Priority = recommend(ps.Category, ps.TimingShortage)
	return ps
}

// recommend acción sugerida por categoría.
func recommend(cat entity.MainCategory, timingShortage bool) (string, Priority) {
	switch cat {
	case entity.CategoryNetShortage:
		return "Place New Order", PriorityHigh
	case entity.CategoryNetSurplus:
		return "Review Excess Stock", PriorityLow
	}
	if timingShortage {
		return "Expedite/Reschedule", PriorityMedium
	}
	return "Monitor", PriorityLow
}

// sortProductSummaries prioridad ascendente, luego posición neta ascendente (peor primero).
func sortProductSummaries(ps []ProductSummary) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Priority != ps[j].Priority {
			return ps[i].Priority < ps[j].Priority
		}
		if c := ps[i].NetPosition.Cmp(ps[j].NetPosition); c != 0 {
			return c < 0
		}
		return ps[i].ProductID < ps[j].ProductID
	})
}

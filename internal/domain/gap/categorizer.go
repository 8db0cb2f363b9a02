package gap

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
)

// MainCategoryRule par (predicado, categoría) evaluado en orden sobre la posición neta (ΣS − ΣD).
type MainCategoryRule struct {
	Category entity.MainCategory
	Match    func(net, tolerance decimal.Decimal) bool
}

// DefaultMainCategoryRules cubre toda posición neta: exactamente una regla aplica.
var DefaultMainCategoryRules = []MainCategoryRule{
	{Category: entity.CategoryBalanced, Match: func(net, tol decimal.Decimal) bool { return net.Abs().LessThanOrEqual(tol) }},
	{Category: entity.CategoryNetShortage, Match: func(net, _ decimal.Decimal) bool { return net.IsNegative() }},
	{Category: entity.CategoryNetSurplus, Match: func(net, _ decimal.Decimal) bool { return net.IsPositive() }},
}

// ProductTotals totales agregados de un producto sobre todos sus períodos.
type ProductTotals struct {
	ProductID   string
	Attributes  entity.ProductAttributes
	TotalSupply decimal.Decimal
	TotalDemand decimal.Decimal
	Rows        []entity.PeriodGapRow // filas del producto en el orden de entrada
}

// NetPosition ΣS − ΣD.
func (t ProductTotals) NetPosition() decimal.Decimal {
	return t.TotalSupply.Sub(t.TotalDemand)
}

// GroupByProduct agrupa filas por producto preservando el orden de aparición de los productos.
func GroupByProduct(rows []entity.PeriodGapRow) []ProductTotals {
	index := make(map[string]int)
	var out []ProductTotals
	for _, r := range rows {
		i, ok := index[r.ProductID]
		if !ok {
			i = len(out)
			index[r.ProductID] = i
			out = append(out, ProductTotals{ProductID: r.ProductID, Attributes: r.Attributes})
		}
		t := &out[i]
		t.TotalSupply = t.TotalSupply.Add(r.SupplyInPeriod)
		t.TotalDemand = t.TotalDemand.Add(r.TotalDemandQty)
		t.Rows = append(t.Rows, r)
	}
	return out
}

// Categorizer calcula la categoría principal y las banderas de timing.
// Las dos pasadas son independientes: las banderas nunca se derivan de la categoría ni al revés.
type Categorizer struct {
	Tolerance decimal.Decimal
	Rules     []MainCategoryRule
}

// NewCategorizer construye el categorizador con las reglas por defecto.
// tolerance cero exige igualdad exacta para "balanced".
func NewCategorizer(tolerance decimal.Decimal) *Categorizer {
	return &Categorizer{Tolerance: tolerance.Abs(), Rules: DefaultMainCategoryRules}
}

// MainCategory primera regla que coincide con la posición neta.
func (c *Categorizer) MainCategory(totalSupply, totalDemand decimal.Decimal) entity.MainCategory {
	net := totalSupply.Sub(totalDemand)
	for _, rule := range c.Rules {
		if rule.Match(net, c.Tolerance) {
			return rule.Category
		}
	}
	return entity.CategoryBalanced
}

// Categorize devuelve la categorización de cada producto presente en rows.
func (c *Categorizer) Categorize(rows []entity.PeriodGapRow) map[string]entity.ProductCategorization {
	groups := GroupByProduct(rows)
	out := make(map[string]entity.ProductCategorization, len(groups))

	// Pasada 1: categoría principal desde los totales agregados.
	for _, g := range groups {
		out[g.ProductID] = entity.ProductCategorization{
			ProductID: g.ProductID,
			Main:      c.MainCategory(g.TotalSupply, g.TotalDemand),
		}
	}

	// Pasada 2: banderas de timing desde el signo de cada período.
	for _, r := range rows {
		pc := out[r.ProductID]
		if r.GapQuantity.IsNegative() {
			pc.TimingShortage = true
		}
		if r.GapQuantity.IsPositive() {
			pc.TimingSurplus = true
		}
		out[r.ProductID] = pc
	}
	return out
}

// CategorySets los cinco conjuntos de productos, con los IDs ordenados.
type CategorySets struct {
	NetShortage    []string `json:"net_shortage"`
	NetSurplus     []string `json:"net_surplus"`
	Balanced       []string `json:"balanced"`
	TimingShortage []string `json:"timing_shortage"`
	TimingSurplus  []string `json:"timing_surplus"`
}

// Sets agrupa la categorización por categoría y bandera.
func Sets(cats map[string]entity.ProductCategorization) CategorySets {
	s := CategorySets{
		NetShortage:    []string{},
		NetSurplus:     []string{},
		Balanced:       []string{},
		TimingShortage: []string{},
		TimingSurplus:  []string{},
	}
	for id, c := range cats {
		switch c.Main {
		case entity.CategoryNetShortage:
			s.NetShortage = append(s.NetShortage, id)
		case entity.CategoryNetSurplus:
			s.NetSurplus = append(s.NetSurplus, id)
		default:
			s.Balanced = append(s.Balanced, id)
		}
		if c.TimingShortage {
			s.TimingShortage = append(s.TimingShortage, id)
		}
		if c.TimingSurplus {
			s.TimingSurplus = append(s.TimingSurplus, id)
		}
	}
	for _, ids := range [][]string{s.NetShortage, s.NetSurplus, s.Balanced, s.TimingShortage, s.TimingSurplus} {
		sort.Strings(ids)
	}
	return s
}

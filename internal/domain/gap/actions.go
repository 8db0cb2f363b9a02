package gap

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
)

var surplusReviewLimit = decimal.NewFromInt(50)

// OrderRequirement pedido nuevo sugerido para un producto con faltante neto.
type OrderRequirement struct {
	ProductID       string
	Attributes      entity.ProductAttributes
	OrderQuantity   decimal.Decimal // max(ΣD − ΣS, backlog final)
	FirstShortage   string
	TotalDemand     decimal.Decimal
	TotalSupply     decimal.Decimal
	CoveragePeriods int
	Urgency         string // Immediate | Plan
}

// SurplusReview revisión de excedente para un producto con excedente neto.
type SurplusReview struct {
	ProductID           string
	Attributes          entity.ProductAttributes
	SurplusQuantity     decimal.Decimal
	TotalDemand         decimal.Decimal
	TotalSupply         decimal.Decimal
	SurplusPercentage   decimal.Decimal
	SurplusPeriods      int
	TotalPeriods        int
	AvgSurplusPerPeriod decimal.Decimal
	Recommendation      string
}

// CriticalProduct producto con faltante acumulado en sus períodos.
type CriticalProduct struct {
	ProductID       string
	Attributes      entity.ProductAttributes
	TotalShortage   decimal.Decimal
	AvgFillRate     decimal.Decimal
	PeriodsAnalyzed int
}

// CriticalPeriod período con faltante acumulado entre productos.
type CriticalPeriod struct {
	Period           string
	TotalShortage    decimal.Decimal
	ProductsAffected int // productos con fila en el período, con o sin faltante
	AvgFillRate      decimal.Decimal
}

// OrderRequirements pedidos sugeridos, mayor cantidad primero.
func OrderRequirements(rows []entity.PeriodGapRow, cats map[string]entity.ProductCategorization) []OrderRequirement {
	out := []OrderRequirement{}
	for _, g := range GroupByProduct(rows) {
		if cats[g.ProductID].Main != entity.CategoryNetShortage {
			continue
		}
		req := OrderRequirement{
			ProductID:       g.ProductID,
			Attributes:      g.Attributes,
			OrderQuantity:   g.TotalDemand.Sub(g.TotalSupply),
			TotalDemand:     g.TotalDemand,
			TotalSupply:     g.TotalSupply,
			CoveragePeriods: len(g.Rows),
			Urgency:         "Plan",
		}
		for _, r := range g.Rows {
			if r.GapQuantity.IsNegative() {
				req.FirstShortage = r.Period
				req.Urgency = "Immediate"
				break
			}
		}
		if n := len(g.Rows); n > 0 && g.Rows[n-1].TrackBacklog {
			req.OrderQuantity = decimal.Max(req.OrderQuantity, g.Rows[n-1].BacklogToNext)
		}
		out = append(out, req)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].OrderQuantity.Cmp(out[j].OrderQuantity); c != 0 {
			return c > 0
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// SurplusReviews excedentes a revisar, mayor excedente primero.
func SurplusReviews(rows []entity.PeriodGapRow, cats map[string]entity.ProductCategorization) []SurplusReview {
	out := []SurplusReview{}
	for _, g := range GroupByProduct(rows) {
		if cats[g.ProductID].Main != entity.CategoryNetSurplus {
			continue
		}
		rev := SurplusReview{
			ProductID:       g.ProductID,
			Attributes:      g.Attributes,
			SurplusQuantity: g.NetPosition(),
			TotalDemand:     g.TotalDemand,
			TotalSupply:     g.TotalSupply,
			TotalPeriods:    len(g.Rows),
			Recommendation:  "Monitor",
		}
		surplusSum := decimal.Zero
		for _, r := range g.Rows {
			if r.GapQuantity.IsPositive() {
				rev.SurplusPeriods++
				surplusSum = surplusSum.Add(r.GapQuantity)
			}
		}
		if rev.SurplusPeriods > 0 {
			rev.AvgSurplusPerPeriod = surplusSum.Div(decimal.NewFromInt(int64(rev.SurplusPeriods)))
		}
		if g.TotalDemand.IsPositive() {
			rev.SurplusPercentage = rev.SurplusQuantity.Mul(hundred).Div(g.TotalDemand)
		}
		if rev.SurplusPercentage.GreaterThan(surplusReviewLimit) {
			rev.Recommendation = "Review excess stock"
		}
		out = append(out, rev)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].SurplusQuantity.Cmp(out[j].SurplusQuantity); c != 0 {
			return c > 0
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// CriticalProducts los topN productos con mayor faltante acumulado por período.
func CriticalProducts(rows []entity.PeriodGapRow, topN int) []CriticalProduct {
	out := []CriticalProduct{}
	for _, g := range GroupByProduct(rows) {
		cp := CriticalProduct{ProductID: g.ProductID, Attributes: g.Attributes, PeriodsAnalyzed: len(g.Rows)}
		fillSum := decimal.Zero
		for _, r := range g.Rows {
			fillSum = fillSum.Add(r.FulfillmentRate)
			if r.GapQuantity.IsNegative() {
				cp.TotalShortage = cp.TotalShortage.Add(r.GapQuantity.Abs())
			}
		}
		if !cp.TotalShortage.IsPositive() {
			continue
		}
		cp.AvgFillRate = fillSum.Div(decimal.NewFromInt(int64(len(g.Rows))))
		out = append(out, cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].TotalShortage.Cmp(out[j].TotalShortage); c != 0 {
			return c > 0
		}
		return out[i].ProductID < out[j].ProductID
	})
	return limit(out, topN)
}

// CriticalPeriods los topN períodos con mayor faltante sumado entre productos.
func CriticalPeriods(rows []entity.PeriodGapRow, topN int) []CriticalPeriod {
	type acc struct {
		shortage decimal.Decimal
		fillSum  decimal.Decimal
		rows     int
		products map[string]struct{}
	}
	index := make(map[string]*acc)
	var order []string
	for _, r := range rows {
		a, ok := index[r.Period]
		if !ok {
			a = &acc{products: make(map[string]struct{})}
			index[r.Period] = a
			order = append(order, r.Period)
		}
		a.rows++
		a.fillSum = a.fillSum.Add(r.FulfillmentRate)
		a.products[r.ProductID] = struct{}{}
		if r.GapQuantity.IsNegative() {
			a.shortage = a.shortage.Add(r.GapQuantity.Abs())
		}
	}

	out := []CriticalPeriod{}
	for _, p := range order {
		a := index[p]
		if !a.shortage.IsPositive() {
			continue
		}
		out = append(out, CriticalPeriod{
			Period:           p,
			TotalShortage:    a.shortage,
			ProductsAffected: len(a.products),
			AvgFillRate:      a.fillSum.Div(decimal.NewFromInt(int64(a.rows))),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalShortage.GreaterThan(out[j].TotalShortage)
	})
	return limit(out, topN)
}

func limit[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

package gap_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/gap"
)

func summaryFixture() ([]entity.PeriodGapRow, map[string]entity.ProductCategorization) {
	rows := gap.Simulate([]gap.PeriodBucket{
		// SHORT: faltante neto con backlog final.
		weekBucket("SHORT", 1, "100", "60"),
		weekBucket("SHORT", 2, "50", "30"),
		// SURP: excedente neto.
		weekBucket("SURP", 1, "10", "50"),
		weekBucket("SURP", 2, "10", "0"),
		// TIME: balanceado con faltante de timing.
		weekBucket("TIME", 1, "20", "0"),
		weekBucket("TIME", 2, "0", "20"),
	}, gap.SimulationOptions{TrackBacklog: true})
	return rows, gap.NewCategorizer(decimal.Zero).Categorize(rows)
}

func findProduct(t *testing.T, s gap.Summary, id string) gap.ProductSummary {
	t.Helper()
	for _, p := range s.Products {
		if p.ProductID == id {
			return p
		}
	}
	require.FailNow(t, "producto no encontrado", id)
	return gap.ProductSummary{}
}

func TestSummarize_MetricasPorProducto(t *testing.T) {
	rows, cats := summaryFixture()
	s := gap.Summarize(rows, cats, gap.SummaryOptions{})

	short := findProduct(t, s, "SHORT")
	assert.Equal(t, entity.CategoryNetShortage, short.Category)
	assert.Equal(t, gap.StatusHighShortage, short.CoverageStatus, "cobertura 90/150 = 0.6")
	assertDec(t, "-60", short.NetPosition)
	assert.Equal(t, 2, short.ShortagePeriods)
	assert.Equal(t, 0, short.FulfilledPeriods)
	assertDec(t, "60", short.MaxShortage)
	assertDec(t, "60", short.FinalBacklog)
	assertDec(t, "40", short.PeakBacklog)
	assert.Equal(t, "Week 1 - 2025", short.FirstShortage)
	assert.Equal(t, "Place New Order", short.RecommendedAction)
	assert.Equal(t, gap.PriorityHigh, short.Priority)

	surp := findProduct(t, s, "SURP")
	assert.Equal(t, entity.CategoryNetSurplus, surp.Category)
	assert.Equal(t, gap.StatusHighSurplus, surp.CoverageStatus, "cobertura 50/20 = 2.5")
	assert.Equal(t, 2, surp.SurplusPeriods)
	assertDec(t, "40", surp.MaxSurplus)
	assert.Equal(t, "Review Excess Stock", surp.RecommendedAction)
	assert.Equal(t, gap.PriorityLow, surp.Priority)

	timing := findProduct(t, s, "TIME")
	assert.Equal(t, entity.CategoryBalanced, timing.Category)
	assert.True(t, timing.TimingShortage)
	assert.Equal(t, gap.StatusBalanced, timing.CoverageStatus)
	assertDec(t, "0", timing.FinalBacklog, "el backlog de la semana 1 se cubre en la semana 2")
	assert.Equal(t, "Expedite/Reschedule", timing.RecommendedAction)
	assert.Equal(t, gap.PriorityMedium, timing.Priority)
	assertDec(t, "50", timing.AvgFillRate)
}

func TestSummarize_OrdenPorPrioridad(t *testing.T) {
	rows, cats := summaryFixture()
	s := gap.Summarize(rows, cats, gap.SummaryOptions{})
	require.Len(t, s.Products, 3)
	assert.Equal(t, "SHORT", s.Products[0].ProductID)
	assert.Equal(t, "TIME", s.Products[1].ProductID)
	assert.Equal(t, "SURP", s.Products[2].ProductID)
}

func TestSummarize_Global(t *testing.T) {
	rows, cats := summaryFixture()
	o := gap.Summarize(rows, cats, gap.SummaryOptions{}).Overall

	assert.Equal(t, 3, o.TotalProducts)
	assert.Equal(t, 2, o.TotalPeriods)
	assert.Equal(t, 1, o.NetShortageProducts)
	assert.Equal(t, 1, o.NetSurplusProducts)
	assert.Equal(t, 1, o.BalancedProducts)
	assert.Equal(t, 2, o.TimingShortageProducts)
	assert.Equal(t, 1, o.TimingSurplusProducts)
	assert.Equal(t, 1, o.FullyCoveredProducts)
	assert.Equal(t, 1, o.ProductsWithBacklog)

	assertDec(t, "190", o.TotalDemand)
	assertDec(t, "160", o.TotalSupply)
	assertDec(t, "60", o.TotalBacklog)
	// Picos: SHORT 40 (heredado en semana 2) + TIME 20.
	assertDec(t, "60", o.PeakBacklog)
	// Faltantes: SHORT 40 + 60, TIME 20.
	assertDec(t, "120", o.TotalShortageQty)
	// Excedentes: SURP 40 + 30.
	assertDec(t, "70", o.TotalSurplusQty)
	assert.True(t, o.CoverageRate.Sub(dec("33.33")).Abs().LessThan(dec("0.01")))
}

func TestSummarize_SinFilas(t *testing.T) {
	s := gap.Summarize(nil, nil, gap.SummaryOptions{})
	assert.Empty(t, s.Products)
	assert.Equal(t, 0, s.Overall.TotalProducts)
	assertDec(t, "0", s.Overall.AvgFillRate)
	assertDec(t, "0", s.Overall.CoverageRate)
}

// Sin categorización previa el resumen deriva la categoría de los totales.
func TestSummarize_SinCategorias(t *testing.T) {
	rows, _ := summaryFixture()
	s := gap.Summarize(rows, nil, gap.SummaryOptions{})
	assert.Equal(t, entity.CategoryNetShortage, findProduct(t, s, "SHORT").Category)
}

// La tolerancia de balance aplica tanto a la categoría derivada como al estado de cobertura.
func TestSummarize_ToleranciaDeBalance(t *testing.T) {
	rows := gap.Simulate([]gap.PeriodBucket{weekBucket("NEAR", 1, "9.5", "10")}, gap.SimulationOptions{})

	exact := findProduct(t, gap.Summarize(rows, nil, gap.SummaryOptions{}), "NEAR")
	assert.Equal(t, entity.CategoryNetSurplus, exact.Category)
	assert.Equal(t, gap.StatusLightSurplus, exact.CoverageStatus)

	tolerant := findProduct(t, gap.Summarize(rows, nil, gap.SummaryOptions{BalanceTolerance: dec("1")}), "NEAR")
	assert.Equal(t, entity.CategoryBalanced, tolerant.Category)
	assert.Equal(t, gap.StatusBalanced, tolerant.CoverageStatus)
}

func TestSummarize_Idempotente(t *testing.T) {
	rows, cats := summaryFixture()
	assert.Equal(t, gap.Summarize(rows, cats, gap.SummaryOptions{}), gap.Summarize(rows, cats, gap.SummaryOptions{}))
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "High", gap.PriorityHigh.String())
	assert.Equal(t, "Medium", gap.PriorityMedium.String())
	assert.Equal(t, "Low", gap.PriorityLow.String())
}

package gap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/gap"
)

func TestOrderRequirements(t *testing.T) {
	rows, cats := summaryFixture()
	reqs := gap.OrderRequirements(rows, cats)
	require.Len(t, reqs, 1)

	r := reqs[0]
	assert.Equal(t, "SHORT", r.ProductID)
	assertDec(t, "60", r.OrderQuantity)
	assert.Equal(t, "Week 1 - 2025", r.FirstShortage)
	assert.Equal(t, "Immediate", r.Urgency)
	assert.Equal(t, 2, r.CoveragePeriods)
}

// En modo independiente la cantidad es ΣD − ΣS; en modo backlog coincide con el backlog final.
func TestOrderRequirements_Modos(t *testing.T) {
	rows := gap.Simulate([]gap.PeriodBucket{
		weekBucket("P1", 1, "0", "100"),
		weekBucket("P1", 2, "0", "0"),
		weekBucket("P1", 3, "150", "0"),
	}, gap.SimulationOptions{TrackBacklog: false})
	reqs := gap.OrderRequirements(rows, gap.NewCategorizer(dec("0")).Categorize(rows))
	require.Len(t, reqs, 1)
	assertDec(t, "50", reqs[0].OrderQuantity)
	assert.Equal(t, "Week 3 - 2025", reqs[0].FirstShortage)

	rows = gap.Simulate([]gap.PeriodBucket{
		weekBucket("P1", 1, "100", "0"),
		weekBucket("P1", 2, "0", "100"),
		weekBucket("P1", 3, "100", "90"),
		weekBucket("P1", 4, "50", "0"),
	}, gap.SimulationOptions{TrackBacklog: true})
	reqs = gap.OrderRequirements(rows, gap.NewCategorizer(dec("0")).Categorize(rows))
	require.Len(t, reqs, 1)
	assertDec(t, "60", reqs[0].OrderQuantity)
	assertDec(t, "60", rows[len(rows)-1].BacklogToNext)
}

func TestSurplusReviews(t *testing.T) {
	rows, cats := summaryFixture()
	revs := gap.SurplusReviews(rows, cats)
	require.Len(t, revs, 1)

	r := revs[0]
	assert.Equal(t, "SURP", r.ProductID)
	assertDec(t, "30", r.SurplusQuantity)
	assertDec(t, "150", r.SurplusPercentage)
	assert.Equal(t, 2, r.SurplusPeriods)
	assertDec(t, "35", r.AvgSurplusPerPeriod)
	assert.Equal(t, "Review excess stock", r.Recommendation)
}

func TestSurplusReviews_ExcedenteMenorAlLimite(t *testing.T) {
	rows := gap.Simulate([]gap.PeriodBucket{
		weekBucket("P1", 1, "100", "120"),
	}, gap.SimulationOptions{TrackBacklog: true})
	revs := gap.SurplusReviews(rows, gap.NewCategorizer(dec("0")).Categorize(rows))
	require.Len(t, revs, 1)
	assertDec(t, "20", revs[0].SurplusPercentage)
	assert.Equal(t, "Monitor", revs[0].Recommendation)
}

func TestCriticalProducts(t *testing.T) {
	rows, _ := summaryFixture()
	crit := gap.CriticalProducts(rows, 10)
	require.Len(t, crit, 2)
	assert.Equal(t, "SHORT", crit[0].ProductID)
	assertDec(t, "100", crit[0].TotalShortage)
	assert.Equal(t, "TIME", crit[1].ProductID)
	assertDec(t, "20", crit[1].TotalShortage)

	assert.Len(t, gap.CriticalProducts(rows, 1), 1)
}

func TestCriticalPeriods(t *testing.T) {
	rows, _ := summaryFixture()
	crit := gap.CriticalPeriods(rows, 10)
	require.Len(t, crit, 2)
	// Empate en 60: se conserva el orden cronológico.
	assert.Equal(t, "Week 1 - 2025", crit[0].Period)
	assertDec(t, "60", crit[0].TotalShortage)
	// ProductsAffected cuenta todos los productos con fila en el período, no solo los faltantes.
	assert.Equal(t, 3, crit[0].ProductsAffected)
	assert.Equal(t, "Week 2 - 2025", crit[1].Period)
	assert.Equal(t, 3, crit[1].ProductsAffected)
}

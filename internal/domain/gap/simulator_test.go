package gap_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/gap"
)

// ──────────────────────────────────────────────────────────────────────────────
// Modo backlog
// ──────────────────────────────────────────────────────────────────────────────

// Semana 1: demanda 100, oferta 60 → gap −40, backlog 40, cumplimiento 60 %.
// Semana 2: demanda 50, oferta 100 → demanda efectiva 90, gap +10, arrastre 10, cumplimiento 100 %.
func TestSimulate_BacklogEjemplo(t *testing.T) {
	rows := gap.Simulate([]gap.PeriodBucket{
		weekBucket("P1", 1, "100", "60"),
		weekBucket("P1", 2, "50", "100"),
	}, gap.SimulationOptions{TrackBacklog: true})
	require.Len(t, rows, 2)

	w1 := rows[0]
	assert.Equal(t, "Week 1 - 2025", w1.Period)
	assertDec(t, "0", w1.BeginInventory)
	assertDec(t, "60", w1.TotalAvailable)
	assertDec(t, "100", w1.EffectiveDemand)
	assertDec(t, "-40", w1.GapQuantity)
	assertDec(t, "40", w1.BacklogToNext)
	assertDec(t, "0", w1.CarryForwardToNext)
	assertDec(t, "60", w1.FulfillmentRate)
	assert.Equal(t, entity.StatusShortage, w1.FulfillmentStatus)

	w2 := rows[1]
	assertDec(t, "0", w2.BeginInventory)
	assertDec(t, "40", w2.BacklogQty)
	assertDec(t, "90", w2.EffectiveDemand)
	assertDec(t, "100", w2.TotalAvailable)
	assertDec(t, "10", w2.GapQuantity)
	assertDec(t, "10", w2.CarryForwardToNext)
	assertDec(t, "0", w2.BacklogToNext)
	assertDec(t, "100", w2.FulfillmentRate, "111 % se limita a 100")
	assert.Equal(t, entity.StatusFulfilled, w2.FulfillmentStatus)
}

// Con track_backlog=false la semana 2 no hereda el faltante de la semana 1.
func TestSimulate_ModoIndependiente(t *testing.T) {
	rows := gap.Simulate([]gap.PeriodBucket{
		weekBucket("P1", 1, "100", "60"),
		weekBucket("P1", 2, "50", "100"),
	}, gap.SimulationOptions{TrackBacklog: false})
	require.Len(t, rows, 2)

	assertDec(t, "-40", rows[0].GapQuantity)
	assertDec(t, "0", rows[0].CarryForwardToNext)
	assertDec(t, "60", rows[0].FulfillmentRate)

	assertDec(t, "50", rows[1].GapQuantity)
	assertDec(t, "50", rows[1].EffectiveDemand)
	assertDec(t, "0", rows[1].BacklogQty)
	assertDec(t, "0", rows[1].BacklogToNext)
	assertDec(t, "50", rows[1].CarryForwardToNext)
	assert.False(t, rows[1].TrackBacklog)
}

func TestSimulate_ArrastrePositivo(t *testing.T) {
	rows := gap.Simulate([]gap.PeriodBucket{
		weekBucket("P1", 1, "20", "50"),
		weekBucket("P1", 2, "40", "0"),
		weekBucket("P1", 3, "5", "0"),
	}, gap.SimulationOptions{TrackBacklog: true})
	require.Len(t, rows, 3)

	assertDec(t, "30", rows[0].GapQuantity)
	assertDec(t, "30", rows[1].BeginInventory)
	assertDec(t, "-10", rows[1].GapQuantity)
	assertDec(t, "75", rows[1].FulfillmentRate)
	assertDec(t, "10", rows[2].BacklogQty)
	assertDec(t, "15", rows[2].EffectiveDemand)
	assertDec(t, "-15", rows[2].GapQuantity)
	assertDec(t, "0", rows[2].FulfillmentRate, "sin disponible ni arrastre")
}

func TestSimulate_CumplimientoSinDemanda(t *testing.T) {
	rows := gap.Simulate([]gap.PeriodBucket{
		weekBucket("P1", 1, "0", "0"),
		weekBucket("P1", 2, "0", "5"),
	}, gap.SimulationOptions{TrackBacklog: true})
	require.Len(t, rows, 2)
	assertDec(t, "0", rows[0].FulfillmentRate, "sin demanda ni oferta")
	assert.Equal(t, entity.StatusFulfilled, rows[0].FulfillmentStatus, "gap cero cuenta como cumplido")
	assertDec(t, "100", rows[1].FulfillmentRate, "sin demanda con oferta")
}

// Los períodos llegan desordenados: la simulación los procesa en orden cronológico.
func TestSimulate_OrdenaPeriodosAntesDelFold(t *testing.T) {
	rows := gap.Simulate([]gap.PeriodBucket{
		weekBucket("P2", 2, "0", "10"),
		weekBucket("P1", 3, "10", "0"),
		weekBucket("P1", 1, "0", "10"),
		weekBucket("P2", 1, "10", "0"),
	}, gap.SimulationOptions{TrackBacklog: true})
	require.Len(t, rows, 4)

	got := make([]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, r.ProductID+"|"+r.Period)
	}
	assert.Equal(t, []string{
		"P1|Week 1 - 2025", "P1|Week 3 - 2025",
		"P2|Week 1 - 2025", "P2|Week 2 - 2025",
	}, got)

	assertDec(t, "10", rows[1].BeginInventory, "P1 semana 3 hereda el arrastre de la semana 1")
	assertDec(t, "10", rows[3].BacklogQty, "P2 semana 2 hereda el backlog de la semana 1")
	assertDec(t, "0", rows[3].GapQuantity)
}

func buildScenario(products, weeks int) []gap.PeriodBucket {
	var buckets []gap.PeriodBucket
	for p := 0; p < products; p++ {
		for w := 1; w <= weeks; w++ {
			demand := fmt.Sprintf("%d", (p*7+w*13)%50)
			supply := fmt.Sprintf("%d", (p*11+w*5)%45)
			buckets = append(buckets, weekBucket(fmt.Sprintf("P%03d", p), w, demand, supply))
		}
	}
	return buckets
}

// Nunca salen de un período arrastre y backlog positivos a la vez.
func TestSimulate_ExclusividadDeEstado(t *testing.T) {
	rows := gap.Simulate(buildScenario(20, 12), gap.SimulationOptions{TrackBacklog: true})
	require.Len(t, rows, 240)
	for _, r := range rows {
		both := r.CarryForwardToNext.IsPositive() && r.BacklogToNext.IsPositive()
		assert.False(t, both, "%s %s: arrastre %s y backlog %s", r.ProductID, r.Period, r.CarryForwardToNext, r.BacklogToNext)
		assert.False(t, r.FulfillmentRate.GreaterThan(dec("100")))
		assert.False(t, r.FulfillmentRate.IsNegative())
	}
}

func TestSimulate_Determinismo(t *testing.T) {
	buckets := buildScenario(10, 8)
	a := gap.Simulate(buckets, gap.SimulationOptions{TrackBacklog: true})
	b := gap.Simulate(buckets, gap.SimulationOptions{TrackBacklog: true})
	assert.Equal(t, a, b)
}

// La simulación en paralelo por producto produce exactamente las mismas filas.
func TestSimulate_ParaleloIgualASecuencial(t *testing.T) {
	buckets := buildScenario(40, 10)
	for _, backlog := range []bool{true, false} {
		seq := gap.Simulate(buckets, gap.SimulationOptions{TrackBacklog: backlog})
		par := gap.Simulate(buckets, gap.SimulationOptions{TrackBacklog: backlog, Parallelism: 8})
		assert.Equal(t, seq, par, "track_backlog=%v", backlog)
	}
}

func TestSimulate_SinBuckets(t *testing.T) {
	rows := gap.Simulate(nil, gap.SimulationOptions{TrackBacklog: true, Parallelism: 4})
	assert.Empty(t, rows)
}

func TestSortRows(t *testing.T) {
	rows := []entity.PeriodGapRow{
		{ProductID: "B", Period: "Feb 2025"},
		{ProductID: "A", Period: "Mar 2025"},
		{ProductID: "A", Period: "Dec 2024"},
	}
	gap.SortRows(rows, gap.PeriodMonthly)
	assert.Equal(t, "Dec 2024", rows[0].Period)
	assert.Equal(t, "Mar 2025", rows[1].Period)
	assert.Equal(t, "B", rows[2].ProductID)
}

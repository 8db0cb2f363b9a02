package gap_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/gap"
)

func TestAggregate_UnionDeClaves(t *testing.T) {
	demand := []entity.DemandRecord{
		demandRow("P1", day(2025, time.January, 6), "10"),
		demandRow("P1", day(2025, time.January, 8), "5"),
		demandRow("P2", day(2025, time.January, 13), "7"),
	}
	supply := []entity.SupplyRecord{
		supplyRow("P1", day(2025, time.January, 14), "20"),
		supplyRow("P3", day(2025, time.January, 6), "3"),
	}
	res := gap.Aggregate(demand, supply, gap.PeriodWeekly)
	require.Len(t, res.Buckets, 4)

	got := make(map[string][2]string)
	for _, b := range res.Buckets {
		got[b.ProductID+"|"+b.Period] = [2]string{b.DemandQty.String(), b.SupplyQty.String()}
	}
	assert.Equal(t, map[string][2]string{
		"P1|Week 2 - 2025": {"15", "0"},
		"P1|Week 3 - 2025": {"0", "20"},
		"P2|Week 3 - 2025": {"7", "0"},
		"P3|Week 2 - 2025": {"0", "3"},
	}, got)

	assert.Equal(t, gap.ProductMatched, res.ProductTypes["P1"])
	assert.Equal(t, gap.ProductDemandOnly, res.ProductTypes["P2"])
	assert.Equal(t, gap.ProductSupplyOnly, res.ProductTypes["P3"])
}

// Cantidades de fechas distintas que caen en el mismo período se suman.
func TestAggregate_ConservaCantidades(t *testing.T) {
	demand := []entity.DemandRecord{
		demandRow("P1", day(2025, time.March, 1), "1.5"),
		demandRow("P1", day(2025, time.March, 31), "2.25"),
		demandRow("P1", day(2025, time.April, 1), "4"),
	}
	res := gap.Aggregate(demand, nil, gap.PeriodMonthly)
	require.Len(t, res.Buckets, 2)
	assert.Equal(t, "Mar 2025", res.Buckets[0].Period)
	assertDec(t, "3.75", res.Buckets[0].DemandQty)
	assert.True(t, res.Buckets[0].HasDemand)
	assert.False(t, res.Buckets[0].HasSupply)
	assert.Equal(t, "Apr 2025", res.Buckets[1].Period)
}

func TestAggregate_DescartaFechasNoResolubles(t *testing.T) {
	demand := []entity.DemandRecord{
		demandRow("P1", nil, "10"),
		demandRow("P1", &time.Time{}, "10"),
		demandRow("P1", day(2025, time.May, 2), "1"),
	}
	supply := []entity.SupplyRecord{supplyRow("P1", nil, "4")}

	res := gap.Aggregate(demand, supply, gap.PeriodDaily)
	assert.Equal(t, 2, res.DroppedDemand)
	assert.Equal(t, 1, res.DroppedSupply)
	require.Len(t, res.Buckets, 1)
	assert.Equal(t, "2025-05-02", res.Buckets[0].Period)
	assert.Equal(t, gap.ProductDemandOnly, res.ProductTypes["P1"], "la oferta descartada no cuenta")
}

// Los atributos prefieren la demanda y completan con la oferta campo por campo.
func TestAggregate_AtributosConRespaldo(t *testing.T) {
	d := demandRow("P1", day(2025, time.June, 2), "1")
	d.Attributes = entity.ProductAttributes{ProductName: "Vitamina C"}
	s := supplyRow("P1", day(2025, time.June, 9), "1")
	s.Attributes = entity.ProductAttributes{ProductName: "Otro nombre", Brand: "Acme", StandardUOM: "PCS"}
	so := supplyRow("P9", day(2025, time.June, 9), "1")
	so.Attributes = entity.ProductAttributes{Brand: "Solo", PackageSize: "10x"}

	res := gap.Aggregate([]entity.DemandRecord{d}, []entity.SupplyRecord{s, so}, gap.PeriodWeekly)
	require.Len(t, res.Buckets, 3)
	for _, b := range res.Buckets {
		switch b.ProductID {
		case "P1":
			assert.Equal(t, "Vitamina C", b.Attributes.ProductName)
			assert.Equal(t, "Acme", b.Attributes.Brand)
			assert.Equal(t, "PCS", b.Attributes.StandardUOM)
		case "P9":
			assert.Equal(t, "Solo", b.Attributes.Brand)
			assert.Equal(t, "10x", b.Attributes.PackageSize)
		}
	}
}

func TestAggregate_Orden(t *testing.T) {
	demand := []entity.DemandRecord{
		demandRow("B", day(2025, time.February, 1), "1"),
		demandRow("A", day(2025, time.March, 1), "1"),
		demandRow("A", day(2024, time.December, 1), "1"),
	}
	res := gap.Aggregate(demand, nil, gap.PeriodMonthly)
	require.Len(t, res.Buckets, 3)
	assert.Equal(t, "A", res.Buckets[0].ProductID)
	assert.Equal(t, "Dec 2024", res.Buckets[0].Period)
	assert.Equal(t, "Mar 2025", res.Buckets[1].Period)
	assert.Equal(t, "B", res.Buckets[2].ProductID)
}

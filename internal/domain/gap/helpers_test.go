package gap_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/gap"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDec compara decimales por valor (no por representación).
func assertDec(t *testing.T, want string, got decimal.Decimal, context ...string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), context)
}

func weekBucket(product string, week int, demand, supply string) gap.PeriodBucket {
	key := "Week " + strconv.Itoa(week) + " - 2025"
	return gap.PeriodBucket{
		ProductID: product,
		Period:    key,
		SortKey:   gap.PeriodSortKey(key, gap.PeriodWeekly),
		DemandQty: dec(demand),
		SupplyQty: dec(supply),
	}
}

func demandRow(product string, date *time.Time, qty string) entity.DemandRecord {
	return entity.DemandRecord{ProductID: product, Date: date, Quantity: dec(qty)}
}

func supplyRow(product string, date *time.Time, qty string) entity.SupplyRecord {
	return entity.SupplyRecord{ProductID: product, Date: date, Quantity: dec(qty), Source: entity.SupplySourcePendingPO}
}

// gapRow fila mínima para probar categorización y resumen.
func gapRow(product, period, supply, demand, gapQty string) entity.PeriodGapRow {
	g := dec(gapQty)
	status := entity.StatusFulfilled
	if g.IsNegative() {
		status = entity.StatusShortage
	}
	return entity.PeriodGapRow{
		ProductID:         product,
		Period:            period,
		SupplyInPeriod:    dec(supply),
		TotalDemandQty:    dec(demand),
		GapQuantity:       g,
		FulfillmentStatus: status,
		FulfillmentRate:   dec("100"),
	}
}

package gap

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// SimulationOptions parámetros de la simulación.
type SimulationOptions struct {
	TrackBacklog bool
	// Parallelism > 1 simula productos en paralelo. El resultado es idéntico al secuencial.
	Parallelism int
}

// rollover estado que pasa de un período al siguiente.
// Nunca quedan ambos positivos a la vez.
type rollover struct {
	carryForward decimal.Decimal
	backlog      decimal.Decimal
}

// Simulate ejecuta el arrastre período a período para cada producto.
// Dentro de un producto es un fold estrictamente secuencial en orden cronológico;
// los productos son independientes entre sí.
func Simulate(buckets []PeriodBucket, opts SimulationOptions) []entity.PeriodGapRow {
	products := splitByProduct(buckets)
	results := make([][]entity.PeriodGapRow, len(products))

	if opts.Parallelism > 1 && len(products) > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Parallelism)
		for i := range products {
			g.Go(func() error {
				results[i] = simulateProduct(products[i], opts.TrackBacklog)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range products {
			results[i] = simulateProduct(products[i], opts.TrackBacklog)
		}
	}

	rows := make([]entity.PeriodGapRow, 0, len(buckets))
	for _, r := range results {
		rows = append(rows, r...)
	}
	return rows
}

// splitByProduct agrupa por producto (ordenado) y ordena cada grupo cronológicamente.
func splitByProduct(buckets []PeriodBucket) [][]PeriodBucket {
	sorted := make([]PeriodBucket, len(buckets))
	copy(sorted, buckets)
	sortBuckets(sorted)

	var out [][]PeriodBucket
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].ProductID == sorted[i].ProductID {
			j++
		}
		out = append(out, sorted[i:j])
		i = j
	}
	return out
}

func simulateProduct(buckets []PeriodBucket, trackBacklog bool) []entity.PeriodGapRow {
	rows := make([]entity.PeriodGapRow, 0, len(buckets))
	state := rollover{carryForward: decimal.Zero, backlog: decimal.Zero}
	for _, b := range buckets {
		var row entity.PeriodGapRow
		row, state = step(b, state, trackBacklog)
		rows = append(rows, row)
	}
	return rows
}

// step procesa un período y devuelve la fila emitida y el estado para el siguiente.
func step(b PeriodBucket, st rollover, trackBacklog bool) (entity.PeriodGapRow, rollover) {
	row := entity.PeriodGapRow{
		ProductID:      b.ProductID,
		Attributes:     b.Attributes,
		Period:         b.Period,
		BeginInventory: st.carryForward,
		SupplyInPeriod: b.SupplyQty,
		TotalDemandQty: b.DemandQty,
		TrackBacklog:   trackBacklog,
		BacklogQty:     decimal.Zero,
		BacklogToNext:  decimal.Zero,
	}

	available := b.SupplyQty.Add(st.carryForward)
	var next rollover

	if trackBacklog {
		row.BacklogQty = st.backlog
		effective := b.DemandQty.Add(st.backlog)
		gap := available.Sub(effective)
		if gap.GreaterThanOrEqual(decimal.Zero) {
			next = rollover{carryForward: gap, backlog: decimal.Zero}
		} else {
			next = rollover{carryForward: decimal.Zero, backlog: gap.Abs()}
		}
		row.EffectiveDemand = effective
		row.GapQuantity = gap
		row.FulfillmentRate = fulfillmentRate(available, effective)
		row.BacklogToNext = next.backlog
	} else {
		gap := available.Sub(b.DemandQty)
		next = rollover{carryForward: decimal.Max(decimal.Zero, gap), backlog: decimal.Zero}
		row.EffectiveDemand = b.DemandQty
		row.GapQuantity = gap
		row.FulfillmentRate = fulfillmentRate(available, b.DemandQty)
	}

	row.TotalAvailable = available
	row.CarryForwardToNext = next.carryForward
	if row.GapQuantity.GreaterThanOrEqual(decimal.Zero) {
		row.FulfillmentStatus = entity.StatusFulfilled
	} else {
		row.FulfillmentStatus = entity.StatusShortage
	}
	return row, next
}

// fulfillmentRate min(100, disponible/requerido·100); sin requerimiento: 100 si hay oferta, 0 si no.
// En modo backlog el denominador es la demanda efectiva (incluye backlog heredado).
func fulfillmentRate(available, required decimal.Decimal) decimal.Decimal {
	if required.IsPositive() {
		return decimal.Min(hundred, available.Mul(hundred).Div(required))
	}
	if available.IsPositive() {
		return hundred
	}
	return decimal.Zero
}

// SortRows ordena filas por (producto, período cronológico).
func SortRows(rows []entity.PeriodGapRow, pt PeriodType) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ProductID != rows[j].ProductID {
			return rows[i].ProductID < rows[j].ProductID
		}
		ki, kj := PeriodSortKey(rows[i].Period, pt), PeriodSortKey(rows[j].Period, pt)
		if ki != kj {
			return ki < kj
		}
		return rows[i].Period < rows[j].Period
	})
}

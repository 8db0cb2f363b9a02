package gap

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
)

// ProductType clasifica de qué lado proviene la actividad de un producto.
type ProductType string

const (
	ProductMatched    ProductType = "Matched"
	ProductDemandOnly ProductType = "Demand Only"
	ProductSupplyOnly ProductType = "Supply Only"
)

// PeriodBucket una fila del universo (producto, período) con demanda y oferta sumadas.
type PeriodBucket struct {
	ProductID  string
	Period     string
	SortKey    int64
	Attributes entity.ProductAttributes
	DemandQty  decimal.Decimal
	SupplyQty  decimal.Decimal
	HasDemand  bool
	HasSupply  bool
}

// AggregationResult buckets ordenados por (producto, período) más el conteo de filas descartadas.
type AggregationResult struct {
	Buckets       []PeriodBucket
	DroppedDemand int // filas de demanda sin PT code o sin fecha resoluble
	DroppedSupply int // filas de oferta sin PT code o sin fecha resoluble
	ProductTypes  map[string]ProductType
}

type bucketKey struct {
	product string
	period  string
}

type sideGroup struct {
	qty   decimal.Decimal
	attrs entity.ProductAttributes
}

// sideAggregate agrupa un lado (demanda u oferta) por (producto, período).
// Los atributos se quedan con el primer valor no vacío de cada campo, en orden de entrada.
type sideAggregate struct {
	groups   map[bucketKey]*sideGroup
	products map[string]entity.ProductAttributes
	dropped  int
}

func newSideAggregate() *sideAggregate {
	return &sideAggregate{
		groups:   make(map[bucketKey]*sideGroup),
		products: make(map[string]entity.ProductAttributes),
	}
}

func (s *sideAggregate) add(productID, period string, ok bool, qty decimal.Decimal, attrs entity.ProductAttributes) {
	productID = strings.TrimSpace(productID)
	if !ok || productID == "" {
		s.dropped++
		return
	}
	k := bucketKey{product: productID, period: period}
	g, exists := s.groups[k]
	if !exists {
		g = &sideGroup{}
		s.groups[k] = g
	}
	g.qty = g.qty.Add(qty)
	g.attrs = g.attrs.Merge(attrs)
	s.products[productID] = s.products[productID].Merge(attrs)
}

// Aggregate reduce las líneas crudas a una fila por (producto, período).
// Las filas sin PT code o sin fecha resoluble se descartan y se cuentan.
// El universo es la unión de claves de ambos lados; las celdas faltantes quedan en cero.
// Los atributos descriptivos prefieren la demanda y caen a la oferta para productos solo-oferta.
func Aggregate(demand []entity.DemandRecord, supply []entity.SupplyRecord, pt PeriodType) AggregationResult {
	d := newSideAggregate()
	for _, r := range demand {
		period, ok := ConvertToPeriod(r.Date, pt)
		d.add(r.ProductID, period, ok, r.Quantity, r.Attributes)
	}
	s := newSideAggregate()
	for _, r := range supply {
		period, ok := ConvertToPeriod(r.Date, pt)
		s.add(r.ProductID, period, ok, r.Quantity, r.Attributes)
	}

	universe := make(map[bucketKey]struct{}, len(d.groups)+len(s.groups))
	for k := range d.groups {
		universe[k] = struct{}{}
	}
	for k := range s.groups {
		universe[k] = struct{}{}
	}

	buckets := make([]PeriodBucket, 0, len(universe))
	for k := range universe {
		b := PeriodBucket{
			ProductID:  k.product,
			Period:     k.period,
			SortKey:    PeriodSortKey(k.period, pt),
			DemandQty:  decimal.Zero,
			SupplyQty:  decimal.Zero,
			Attributes: d.products[k.product].Merge(s.products[k.product]),
		}
		if g, ok := d.groups[k]; ok {
			b.DemandQty = g.qty
			b.HasDemand = true
		}
		if g, ok := s.groups[k]; ok {
			b.SupplyQty = g.qty
			b.HasSupply = true
		}
		buckets = append(buckets, b)
	}
	sortBuckets(buckets)

	return AggregationResult{
		Buckets:       buckets,
		DroppedDemand: d.dropped,
		DroppedSupply: s.dropped,
		ProductTypes:  productTypes(d.products, s.products),
	}
}

func productTypes(demand, supply map[string]entity.ProductAttributes) map[string]ProductType {
	out := make(map[string]ProductType, len(demand)+len(supply))
	for id := range demand {
		if _, ok := supply[id]; ok {
			out[id] = ProductMatched
		} else {
			out[id] = ProductDemandOnly
		}
	}
	for id := range supply {
		if _, ok := demand[id]; !ok {
			out[id] = ProductSupplyOnly
		}
	}
	return out
}

// sortBuckets ordena por (producto, período cronológico); el texto del período desempata.
func sortBuckets(b []PeriodBucket) {
	sort.SliceStable(b, func(i, j int) bool {
		if b[i].ProductID != b[j].ProductID {
			return b[i].ProductID < b[j].ProductID
		}
		if b[i].SortKey != b[j].SortKey {
			return b[i].SortKey < b[j].SortKey
		}
		return b[i].Period < b[j].Period
	})
}

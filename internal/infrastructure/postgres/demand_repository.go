package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/repository"
)

var _ repository.DemandRepository = (*DemandRepo)(nil)

// Valores de is_converted_to_oc que marcan un forecast ya convertido en OC.
var convertedForecastValues = []string{"yes", "y", "1", "true"}

// DemandRepo lee la demanda pendiente desde las vistas de OC y forecast.
type DemandRepo struct {
	q Querier
}

// NewDemandRepository construye el adaptador de demanda.
func NewDemandRepository(q Querier) *DemandRepo {
	return &DemandRepo{q: q}
}

// ListDemand devuelve las líneas de demanda de las fuentes pedidas (todas si f.Sources está vacío).
func (r *DemandRepo) ListDemand(ctx context.Context, f repository.DemandFilter) ([]entity.DemandRecord, error) {
	sources := f.Sources
	if len(sources) == 0 {
		sources = []entity.DemandSource{entity.DemandSourceOC, entity.DemandSourceForecast}
	}

	var out []entity.DemandRecord
	for _, src := range sources {
		query, args := demandQuery(src, f)
		if query == "" {
			continue
		}
		rows, err := r.scanDemand(ctx, src, query, args)
		if err != nil {
			return nil, fmt.Errorf("demand.ListDemand %s: %w", src, err)
		}
		out = append(out, rows...)
	}
	return out, nil
}

// demandQuery SQL de una fuente de demanda. Las vistas ya aplican COALESCE(adjust_*, *) a las fechas.
func demandQuery(src entity.DemandSource, f repository.DemandFilter) (string, []any) {
	var w whereBuilder
	var query string

	switch src {
	case entity.DemandSourceOC:
		dateCol := "eta"
		if f.OCDateField == repository.OCDateETD {
			dateCol = "etd"
		}
		query = `
	SELECT
	    COALESCE(pt_code, '')                              AS pt_code,
	    ` + dateCol + `                                    AS demand_date,
	    COALESCE(pending_standard_delivery_quantity, 0)    AS demand_quantity,
	    COALESCE(brand, '')                                AS brand,
	    COALESCE(product_name, '')                         AS product_name,
	    COALESCE(package_size, '')                         AS package_size,
	    COALESCE(standard_uom, '')                         AS standard_uom,
	    COALESCE(oc_number, '')                            AS demand_number
	FROM outbound_oc_pending_delivery_view`

	case entity.DemandSourceForecast:
		query = `
	SELECT
	    COALESCE(pt_code, '')                              AS pt_code,
	    etd                                                AS demand_date,
	    COALESCE(standard_quantity, 0)                     AS demand_quantity,
	    COALESCE(brand, '')                                AS brand,
	    COALESCE(product_name, '')                         AS product_name,
	    COALESCE(package_size, '')                         AS package_size,
	    COALESCE(standard_uom, '')                         AS standard_uom,
	    COALESCE(forecast_number, '')                      AS demand_number
	FROM customer_demand_forecast_full_view`
		if !f.IncludeConvertedForecast {
			w.add("LOWER(TRIM(COALESCE(is_converted_to_oc::TEXT, ''))) <> ALL(?)", convertedForecastValues)
		}

	default:
		return "", nil
	}

	w.products("pt_code", f.ProductIDs)
	w.brands("brand", f.Brands)
	return query + w.sql(), w.args
}

func (r *DemandRepo) scanDemand(ctx context.Context, src entity.DemandSource, query string, args []any) ([]entity.DemandRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.DemandRecord
	for rows.Next() {
		var (
			rec  entity.DemandRecord
			date *time.Time
			qty  decimal.Decimal
		)
		if err := rows.Scan(
			&rec.ProductID,
			&date,
			&qty,
			&rec.Attributes.Brand,
			&rec.Attributes.ProductName,
			&rec.Attributes.PackageSize,
			&rec.Attributes.StandardUOM,
			&rec.Number,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec.Date = date
		rec.Quantity = qty
		rec.Source = src
		rec.Attributes = rec.Attributes.Normalize()
		out = append(out, rec)
	}
	return out, rows.Err()
}

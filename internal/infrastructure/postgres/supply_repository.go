package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo lee inventario disponible y recepciones pendientes.
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador de oferta.
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// ListSupply devuelve las líneas de oferta de las fuentes pedidas (todas si f.Sources está vacío).
// El inventario disponible se fecha en f.Today; cada recepción pendiente usa su propia fecha.
func (r *SupplyRepo) ListSupply(ctx context.Context, f repository.SupplyFilter) ([]entity.SupplyRecord, error) {
	sources := f.Sources
	if len(sources) == 0 {
		sources = entity.AllSupplySources
	}
	today := f.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	var out []entity.SupplyRecord
	for _, src := range sources {
		query, args := supplyQuery(src, f, today)
		if query == "" {
			continue
		}
		rows, err := r.scanSupply(ctx, src, query, args, today)
		if err != nil {
			return nil, fmt.Errorf("supply.ListSupply %s: %w", src, err)
		}
		out = append(out, rows...)
	}
	return out, nil
}

// supplyQuery SQL de una fuente de oferta. supply_date es NULL para inventario: se completa con today.
func supplyQuery(src entity.SupplySource, f repository.SupplyFilter, today time.Time) (string, []any) {
	var w whereBuilder
	var query string

	const attrs = `
	    COALESCE(brand, '')                                AS brand,
	    COALESCE(product_name, '')                         AS product_name,
	    COALESCE(package_size, '')                         AS package_size,
	    COALESCE(standard_uom, '')                         AS standard_uom,`

	switch src {
	case entity.SupplySourceInventory:
		query = `
	SELECT
	    COALESCE(pt_code, '')                              AS pt_code,
	    NULL::DATE                                         AS supply_date,
	    COALESCE(remaining_quantity, 0)                    AS quantity,` + attrs + `
	    COALESCE(inventory_history_id::TEXT, '')           AS supply_number,
	    expiry_date
	FROM inventory_detailed_view`
		w.add("COALESCE(remaining_quantity, 0) > 0")
		if f.ExcludeExpired {
			w.add("(expiry_date IS NULL OR expiry_date >= ?)", today)
		}

	case entity.SupplySourcePendingCAN:
		query = `
	SELECT
	    COALESCE(pt_code, '')                              AS pt_code,
	    arrival_date                                       AS supply_date,
	    COALESCE(pending_quantity, 0)                      AS quantity,` + attrs + `
	    COALESCE(arrival_note_number, '')                  AS supply_number,
	    NULL::DATE                                         AS expiry_date
	FROM can_pending_stockin_view`

	case entity.SupplySourcePendingPO:
		query = `
	SELECT
	    COALESCE(pt_code, '')                              AS pt_code,
	    eta                                                AS supply_date,
	    COALESCE(pending_standard_arrival_quantity, 0)     AS quantity,` + attrs + `
	    COALESCE(po_number, '') || COALESCE('_L' || po_line_id::TEXT, '') AS supply_number,
	    NULL::DATE                                         AS expiry_date
	FROM purchase_order_full_view`
		w.add("pending_standard_arrival_quantity > 0")

	case entity.SupplySourceWHTransfer:
		query = `
	SELECT
	    COALESCE(pt_code, '')                              AS pt_code,
	    transfer_date                                      AS supply_date,
	    COALESCE(transfer_quantity, 0)                     AS quantity,` + attrs + `
	    COALESCE(warehouse_transfer_line_id::TEXT, '')     AS supply_number,
	    expiry_date
	FROM warehouse_transfer_details_view`
		w.add("is_completed = 0")
		if f.ExcludeExpired {
			w.add("(expiry_date IS NULL OR expiry_date >= ?)", today)
		}

	default:
		return "", nil
	}

	w.products("pt_code", f.ProductIDs)
	w.brands("brand", f.Brands)
	return query + w.sql(), w.args
}

func (r *SupplyRepo) scanSupply(ctx context.Context, src entity.SupplySource, query string, args []any, today time.Time) ([]entity.SupplyRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.SupplyRecord
	for rows.Next() {
		var (
			rec    entity.SupplyRecord
			date   *time.Time
			expiry *time.Time
			qty    decimal.Decimal
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
			&expiry,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if src == entity.SupplySourceInventory {
			d := today
			date = &d
		}
		rec.Date = date
		rec.ExpiryDate = expiry
		rec.Quantity = qty
		rec.Source = src
		rec.Attributes = rec.Attributes.Normalize()
		out = append(out, rec)
	}
	return out, rows.Err()
}

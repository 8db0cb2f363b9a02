package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// Querier lo que los repositorios necesitan de *pgxpool.Pool o pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// whereBuilder arma cláusulas WHERE con placeholders posicionales ($1, $2, ...).
// Cada condición usa "?" donde va su argumento.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// products filtra por PT code sin distinguir mayúsculas; vacío = sin filtro.
func (w *whereBuilder) products(column string, ids []string) {
	if len(ids) == 0 {
		return
	}
	upper := make([]string, len(ids))
	for i, id := range ids {
		upper[i] = strings.ToUpper(strings.TrimSpace(id))
	}
	w.add("UPPER(TRIM("+column+")) = ANY(?)", upper)
}

// brands filtra por marca sin distinguir mayúsculas; vacío = sin filtro.
func (w *whereBuilder) brands(column string, brands []string) {
	if len(brands) == 0 {
		return
	}
	lower := make([]string, len(brands))
	for i, b := range brands {
		lower[i] = strings.ToLower(strings.TrimSpace(b))
	}
	w.add("LOWER(TRIM("+column+")) = ANY(?)", lower)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "\nWHERE " + strings.Join(w.conds, "\n  AND ")
}

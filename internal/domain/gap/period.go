// Package gap contiene el motor de cálculo de Period GAP: resolución de períodos,
// agregación por (producto, período), simulación con arrastre de inventario y backlog,
// categorización de productos y métricas de resumen.
//
// El paquete es puro: no hace I/O, no registra logs y no guarda estado entre llamadas.
package gap

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hongquyngo/vti-gap-analysis/internal/domain"
)

// PeriodType granularidad de los buckets de tiempo.
type PeriodType string

const (
	PeriodDaily   PeriodType = "Daily"
	PeriodWeekly  PeriodType = "Weekly"
	PeriodMonthly PeriodType = "Monthly"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "Jan 2006"

	// invalidSortKey hace que las claves mal formadas queden al final de cualquier orden.
	invalidSortKey = math.MaxInt64

	sentinelWeekYear = 9999
	sentinelWeek     = 99
)

// maxPeriodTime centinela para meses no parseables.
var maxPeriodTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// ParsePeriodType valida el tipo de período. Acepta mayúsculas/minúsculas indistintamente.
func ParsePeriodType(s string) (PeriodType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return PeriodDaily, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	}
	return "", &ValidationError{Field: "period_type", Reason: fmt.Sprintf("%q", s), Err: domain.ErrInvalidPeriodType}
}

// Valid indica si pt es uno de los tipos reconocidos.
func (pt PeriodType) Valid() bool {
	return pt == PeriodDaily || pt == PeriodWeekly || pt == PeriodMonthly
}

// ConvertToPeriod devuelve la clave de período de la fecha.
// Weekly usa el calendario ISO (año ISO + semana ISO): el 31/12/2024 cae en "Week 1 - 2025".
func ConvertToPeriod(t *time.Time, pt PeriodType) (string, bool) {
	if t == nil || t.IsZero() {
		return "", false
	}
	switch pt {
	case PeriodDaily:
		return t.Format(dayLayout), true
	case PeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("Week %d - %d", week, year), true
	case PeriodMonthly:
		return t.Format(monthLayout), true
	}
	return "", false
}

var dateLayouts = []string{
	dayLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000000",
}

// ParseDateValue interpreta fechas que llegan como texto desde fuentes poco tipadas.
func ParseDateValue(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseWeekPeriod extrae (año, semana) de "Week N - YYYY".
// Una clave inválida devuelve (9999, 99) para ordenarse al final.
func ParseWeekPeriod(key string) (year, week int) {
	key = strings.TrimSpace(key)
	parts := strings.Split(key, " - ")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "Week ") {
		return sentinelWeekYear, sentinelWeek
	}
	w, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(parts[0], "Week ")))
	if err != nil {
		return sentinelWeekYear, sentinelWeek
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return sentinelWeekYear, sentinelWeek
	}
	if w < 1 || w > 53 {
		return sentinelWeekYear, sentinelWeek
	}
	return y, w
}

// ParseMonthPeriod devuelve el primer día del mes de "Jan 2006".
// Una clave inválida devuelve un instante máximo.
func ParseMonthPeriod(key string) time.Time {
	t, err := time.Parse(monthLayout, strings.TrimSpace(key))
	if err != nil {
		return maxPeriodTime
	}
	return t
}

func parseDayPeriod(key string) (time.Time, bool) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PeriodSortKey clave numérica de orden cronológico. Las claves inválidas van al final.
func PeriodSortKey(key string, pt PeriodType) int64 {
	switch pt {
	case PeriodDaily:
		if t, ok := parseDayPeriod(key); ok {
			return t.Unix() / 86400
		}
	case PeriodWeekly:
		if y, w := ParseWeekPeriod(key); y != sentinelWeekYear {
			return int64(y)*100 + int64(w)
		}
	case PeriodMonthly:
		if t := ParseMonthPeriod(key); !t.Equal(maxPeriodTime) {
			return int64(t.Year())*12 + int64(t.Month()) - 1
		}
	}
	return invalidSortKey
}

// isoWeekStart lunes de la semana ISO indicada.
func isoWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	firstMonday := jan4.AddDate(0, 0, -(weekday - 1))
	return firstMonday.AddDate(0, 0, 7*(week-1))
}

// PeriodBounds primer y último día (inclusive) del período.
func PeriodBounds(key string, pt PeriodType) (start, end time.Time, ok bool) {
	switch pt {
	case PeriodDaily:
		if t, ok := parseDayPeriod(key); ok {
			return t, t, true
		}
	case PeriodWeekly:
		if y, w := ParseWeekPeriod(key); y != sentinelWeekYear {
			start = isoWeekStart(y, w)
			return start, start.AddDate(0, 0, 6), true
		}
	case PeriodMonthly:
		if t := ParseMonthPeriod(key); !t.Equal(maxPeriodTime) {
			return t, t.AddDate(0, 1, -1), true
		}
	}
	return time.Time{}, time.Time{}, false
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsPastPeriod indica si el período terminó antes de la fecha de referencia.
// Claves mal formadas nunca se consideran pasadas.
func IsPastPeriod(key string, pt PeriodType, ref time.Time) bool {
	_, end, ok := PeriodBounds(key, pt)
	if !ok {
		return false
	}
	return end.Before(civilDate(ref))
}

// FormatPeriodWithDates agrega el rango de fechas a la clave:
// "Week 41 - 2025" → "Week 41 (Oct 06 - Oct 12, 2025)".
func FormatPeriodWithDates(key string, pt PeriodType) string {
	clean := strings.TrimSpace(key)
	start, end, ok := PeriodBounds(clean, pt)
	if !ok {
		return clean
	}
	switch pt {
	case PeriodWeekly:
		_, week := ParseWeekPeriod(clean)
		return fmt.Sprintf("Week %d (%s - %s)", week, start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	case PeriodMonthly:
		return fmt.Sprintf("%s (%s - %s)", clean, start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	case PeriodDaily:
		return start.Format("2006-01-02 (Mon)")
	}
	return clean
}

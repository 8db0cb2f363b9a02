package gap

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domaingap "github.com/hongquyngo/vti-gap-analysis/internal/domain/gap"
	"github.com/hongquyngo/vti-gap-analysis/pkg/config"
)

var hundred = decimal.NewFromInt(100)

// SettingsFromConfig traduce la sección GAP de la configuración (y los umbrales opcionales,
// expresados en porcentaje) a los ajustes del caso de uso.
func SettingsFromConfig(c config.GAPConfig, th *config.CoverageThresholds) (Settings, error) {
	if _, err := domaingap.ParsePeriodType(c.DefaultPeriodType); err != nil {
		return Settings{}, fmt.Errorf("config GAP: %w", err)
	}
	tol := decimal.Zero
	if s := strings.TrimSpace(c.BalanceTolerance); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() {
			return Settings{}, fmt.Errorf("config GAP: tolerancia %q inválida", c.BalanceTolerance)
		}
		tol = d
	}
	demand, err := ParseDemandSources(c.DemandSources)
	if err != nil {
		return Settings{}, fmt.Errorf("config GAP: %w", err)
	}
	supply, err := ParseSupplySources(c.SupplySources)
	if err != nil {
		return Settings{}, fmt.Errorf("config GAP: %w", err)
	}

	return Settings{
		DefaultPeriodType:   c.DefaultPeriodType,
		DefaultTrackBacklog: c.DefaultTrackBacklog,
		Parallelism:         c.Parallelism,
		BalanceTolerance:    tol,
		Thresholds:          thresholdsFromPercent(th),
		DemandSources:       demand,
		SupplySources:       supply,
		ExcludeExpired:      c.ExcludeExpired,
		OCDateField:         c.OCDateField,
		TopN:                c.TopN,
	}, nil
}

// thresholdsFromPercent aplica los umbrales configurados sobre los de por defecto; nil si no hay ninguno.
func thresholdsFromPercent(th *config.CoverageThresholds) *domaingap.Thresholds {
	if th == nil {
		return nil
	}
	out := domaingap.DefaultThresholds()
	set := func(dst *decimal.Decimal, pct *decimal.Decimal) {
		if pct != nil {
			*dst = pct.Div(hundred)
		}
	}
	set(&out.ShortageCritical, th.ShortageCritical)
	set(&out.ShortageSevere, th.ShortageSevere)
	set(&out.ShortageHigh, th.ShortageHigh)
	set(&out.ShortageModerate, th.ShortageModerate)
	set(&out.SurplusLight, th.SurplusLight)
	set(&out.SurplusModerate, th.SurplusModerate)
	set(&out.SurplusHigh, th.SurplusHigh)
	return &out
}

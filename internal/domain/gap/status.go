package gap

import "github.com/shopspring/decimal"

// CoverageStatus severidad de la posición neta según la cobertura ΣS/ΣD.
type CoverageStatus string

const (
	StatusCriticalShortage CoverageStatus = "CRITICAL_SHORTAGE"
	StatusSevereShortage   CoverageStatus = "SEVERE_SHORTAGE"
	StatusHighShortage     CoverageStatus = "HIGH_SHORTAGE"
	StatusModerateShortage CoverageStatus = "MODERATE_SHORTAGE"
	StatusLightShortage    CoverageStatus = "LIGHT_SHORTAGE"
	StatusBalanced         CoverageStatus = "BALANCED"
	StatusLightSurplus     CoverageStatus = "LIGHT_SURPLUS"
	StatusModerateSurplus  CoverageStatus = "MODERATE_SURPLUS"
	StatusHighSurplus      CoverageStatus = "HIGH_SURPLUS"
	StatusSevereSurplus    CoverageStatus = "SEVERE_SURPLUS"
	StatusNoDemand         CoverageStatus = "NO_DEMAND"
	StatusNoActivity       CoverageStatus = "NO_ACTIVITY"
)

// Thresholds umbrales de cobertura expresados como razón (0.25 = 25 %).
// Faltante: cobertura < umbral. Excedente: cobertura ≤ umbral.
type Thresholds struct {
	ShortageCritical decimal.Decimal
	ShortageSevere   decimal.Decimal
	ShortageHigh     decimal.Decimal
	ShortageModerate decimal.Decimal
	SurplusLight     decimal.Decimal
	SurplusModerate  decimal.Decimal
	SurplusHigh      decimal.Decimal
}

// DefaultThresholds 25/50/75/90 % para faltantes y 125/175/250 % para excedentes.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ShortageCritical: decimal.RequireFromString("0.25"),
		ShortageSevere:   decimal.RequireFromString("0.50"),
		ShortageHigh:     decimal.RequireFromString("0.75"),
		ShortageModerate: decimal.RequireFromString("0.90"),
		SurplusLight:     decimal.RequireFromString("1.25"),
		SurplusModerate:  decimal.RequireFromString("1.75"),
		SurplusHigh:      decimal.RequireFromString("2.50"),
	}
}

// CoverageInput datos que evalúan las reglas.
type CoverageInput struct {
	Demand   decimal.Decimal
	Supply   decimal.Decimal
	Net      decimal.Decimal // Supply − Demand
	Coverage decimal.Decimal // Supply / Demand; cero si Demand es cero
}

// StatusRule par (predicado, estado). Las reglas se evalúan de arriba hacia abajo.
type StatusRule struct {
	Status CoverageStatus
	Match  func(in CoverageInput) bool
}

// StatusRules construye la tabla ordenada para los umbrales dados.
// El signo de la posición neta decide el grupo; la cobertura decide la severidad.
// |neto| ≤ tolerance cuenta como BALANCED, igual que en el categorizador.
func StatusRules(th Thresholds, tolerance decimal.Decimal) []StatusRule {
	tol := tolerance.Abs()
	isShort := func(in CoverageInput) bool { return in.Net.LessThan(tol.Neg()) }
	isSurplus := func(in CoverageInput) bool { return in.Net.GreaterThan(tol) }
	noDemand := func(in CoverageInput) bool { return in.Demand.IsZero() }
	short := func(limit decimal.Decimal) func(CoverageInput) bool {
		return func(in CoverageInput) bool { return isShort(in) && in.Coverage.LessThan(limit) }
	}
	surplus := func(limit decimal.Decimal) func(CoverageInput) bool {
		return func(in CoverageInput) bool { return isSurplus(in) && in.Coverage.LessThanOrEqual(limit) }
	}
	return []StatusRule{
		{StatusNoDemand, func(in CoverageInput) bool { return noDemand(in) && in.Supply.IsPositive() }},
		{StatusNoActivity, noDemand},
		{StatusCriticalShortage, short(th.ShortageCritical)},
		{StatusSevereShortage, short(th.ShortageSevere)},
		{StatusHighShortage, short(th.ShortageHigh)},
		{StatusModerateShortage, short(th.ShortageModerate)},
		{StatusLightShortage, isShort},
		{StatusBalanced, func(in CoverageInput) bool { return in.Net.Abs().LessThanOrEqual(tol) }},
		{StatusLightSurplus, surplus(th.SurplusLight)},
		{StatusModerateSurplus, surplus(th.SurplusModerate)},
		{StatusHighSurplus, surplus(th.SurplusHigh)},
		{StatusSevereSurplus, isSurplus},
	}
}

// ClassifyCoverage devuelve el estado de la primera regla que coincide.
func ClassifyCoverage(rules []StatusRule, supply, demand decimal.Decimal) CoverageStatus {
	in := CoverageInput{Demand: demand, Supply: supply, Net: supply.Sub(demand)}
	if demand.IsPositive() {
		in.Coverage = supply.Div(demand)
	}
	for _, r := range rules {
		if r.Match(in) {
			return r.Status
		}
	}
	return StatusNoActivity
}

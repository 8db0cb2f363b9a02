package dto

import "github.com/shopspring/decimal"

// PeriodGapRequest parámetros de GET (query) y POST (JSON) /api/period-gap.
// Los campos vacíos toman el valor por defecto de la configuración GAP.
type PeriodGapRequest struct {
	PeriodType               string   `query:"period_type" json:"period_type"`                               // Daily | Weekly | Monthly
	TrackBacklog             *bool    `query:"track_backlog" json:"track_backlog"`                           // nil = default de config
	DemandSources            []string `query:"demand_sources" json:"demand_sources"`                         // OC, Forecast
	SupplySources            []string `query:"supply_sources" json:"supply_sources"`                         // Inventory, Pending CAN, ...
	ProductCodes             string   `query:"product_codes" json:"product_codes"`                           // texto libre pegado por el usuario
	Brands                   []string `query:"brands" json:"brands"`                                         // vacío = todas
	ExcludeExpired           *bool    `query:"exclude_expired" json:"exclude_expired"`                       // inventario vencido
	IncludeConvertedForecast bool     `query:"include_converted_forecast" json:"include_converted_forecast"` // forecast ya convertido a OC
	OCDateField              string   `query:"oc_date_field" json:"oc_date_field"`                           // eta | etd
	ReferenceDate            string   `query:"reference_date" json:"reference_date"`                         // YYYY-MM-DD, default hoy
}

// ProductAttributesDTO atributos descriptivos en la salida.
type ProductAttributesDTO struct {
	Brand       string `json:"brand"`
	ProductName string `json:"product_name"`
	PackageSize string `json:"package_size"`
	StandardUOM string `json:"standard_uom"`
}

// PeriodGapRowDTO una fila (producto, período) de la simulación.
type PeriodGapRowDTO struct {
	PTCode string `json:"pt_code"`
	ProductAttributesDTO
	Period        string `json:"period"`
	PeriodDisplay string `json:"period_display"` // ej: "Week 41 (Oct 06 - Oct 12, 2025)"
	IsPast        bool   `json:"is_past"`

	BeginInventory decimal.Decimal `json:"begin_inventory"`
	SupplyInPeriod decimal.Decimal `json:"supply_in_period"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	TotalDemandQty decimal.Decimal `json:"total_demand_qty"`

	BacklogQty      *decimal.Decimal `json:"backlog_qty,omitempty"` // solo con track_backlog
	EffectiveDemand *decimal.Decimal `json:"effective_demand,omitempty"`
	BacklogToNext   *decimal.Decimal `json:"backlog_to_next,omitempty"`

	GapQuantity       decimal.Decimal `json:"gap_quantity"`
	FulfillmentRate   decimal.Decimal `json:"fulfillment_rate_percent"`
	FulfillmentStatus string          `json:"fulfillment_status"`
}

// ProductCategoryDTO categoría principal y banderas de timing de un producto.
type ProductCategoryDTO struct {
	PTCode         string `json:"pt_code"`
	MainCategory   string `json:"main_category"`
	CategoryLabel  string `json:"category_label"`
	TimingShortage bool   `json:"timing_shortage"`
	TimingSurplus  bool   `json:"timing_surplus"`
	ProductType    string `json:"product_type"` // Matched | Demand Only | Supply Only
}

// CategorySetsDTO los cinco conjuntos de productos.
type CategorySetsDTO struct {
	NetShortage    []string `json:"net_shortage"`
	NetSurplus     []string `json:"net_surplus"`
	Balanced       []string `json:"balanced"`
	TimingShortage []string `json:"timing_shortage"`
	TimingSurplus  []string `json:"timing_surplus"`
}

// ProductSummaryDTO métricas por producto.
type ProductSummaryDTO struct {
	PTCode string `json:"pt_code"`
	ProductAttributesDTO
	MainCategory   string `json:"main_category"`
	TimingShortage bool   `json:"timing_shortage"`
	TimingSurplus  bool   `json:"timing_surplus"`
	CoverageStatus string `json:"coverage_status"`

	TotalDemand decimal.Decimal `json:"total_demand"`
	TotalSupply decimal.Decimal `json:"total_supply"`
	NetPosition decimal.Decimal `json:"net_position"`

	TotalPeriods     int `json:"total_periods"`
	FulfilledPeriods int `json:"fulfilled_periods"`
	ShortagePeriods  int `json:"shortage_periods"`
	SurplusPeriods   int `json:"surplus_periods"`

	MaxShortage   decimal.Decimal `json:"max_shortage"`
	MaxSurplus    decimal.Decimal `json:"max_surplus"`
	FinalBacklog  decimal.Decimal `json:"final_backlog"`
	PeakBacklog   decimal.Decimal `json:"peak_backlog"`
	AvgFillRate   decimal.Decimal `json:"avg_fill_rate"`
	FirstShortage string          `json:"first_shortage_period,omitempty"`

	RecommendedAction string `json:"recommended_action"`
	Priority          int    `json:"priority"`
	PriorityLabel     string `json:"priority_label"`
}

// OverallSummaryDTO métricas globales.
type OverallSummaryDTO struct {
	TotalProducts int `json:"total_products"`
	TotalPeriods  int `json:"total_periods"`

	NetShortageProducts    int `json:"net_shortage_products"`
	NetSurplusProducts     int `json:"net_surplus_products"`
	BalancedProducts       int `json:"balanced_products"`
	TimingShortageProducts int `json:"timing_shortage_products"`
	TimingSurplusProducts  int `json:"timing_surplus_products"`

	TotalDemand         decimal.Decimal `json:"total_demand"`
	TotalSupply         decimal.Decimal `json:"total_supply"`
	TotalShortageQty    decimal.Decimal `json:"total_shortage_qty"`
	TotalSurplusQty     decimal.Decimal `json:"total_surplus_qty"`
	OverallFillRate     decimal.Decimal `json:"overall_fill_rate"`
	AvgFillRate         decimal.Decimal `json:"avg_fill_rate"`
	TotalBacklog        decimal.Decimal `json:"total_backlog"`
	PeakBacklog         decimal.Decimal `json:"peak_backlog"`
	ProductsWithBacklog int             `json:"products_with_backlog"`

	FullyCoveredProducts int             `json:"fully_covered_products"`
	CoverageRate         decimal.Decimal `json:"coverage_rate"`
}

// OrderRequirementDTO pedido sugerido.
type OrderRequirementDTO struct {
	PTCode string `json:"pt_code"`
	ProductAttributesDTO
	OrderQuantity   decimal.Decimal `json:"order_quantity"`
	FirstShortage   string          `json:"first_shortage_period,omitempty"`
	TotalDemand     decimal.Decimal `json:"total_demand"`
	TotalSupply     decimal.Decimal `json:"total_supply"`
	CoveragePeriods int             `json:"coverage_periods"`
	Urgency         string          `json:"urgency"`
}

// SurplusReviewDTO excedente a revisar.
type SurplusReviewDTO struct {
	PTCode string `json:"pt_code"`
	ProductAttributesDTO
	SurplusQuantity     decimal.Decimal `json:"surplus_quantity"`
	SurplusPercentage   decimal.Decimal `json:"surplus_percentage"`
	SurplusPeriods      int             `json:"surplus_periods"`
	TotalPeriods        int             `json:"total_periods"`
	AvgSurplusPerPeriod decimal.Decimal `json:"avg_surplus_per_period"`
	Recommendation      string          `json:"recommendation"`
}

// CriticalProductDTO producto con mayor faltante acumulado.
type CriticalProductDTO struct {
	PTCode string `json:"pt_code"`
	ProductAttributesDTO
	TotalShortage   decimal.Decimal `json:"total_shortage"`
	AvgFillRate     decimal.Decimal `json:"avg_fill_rate"`
	PeriodsAnalyzed int             `json:"periods_analyzed"`
}

// CriticalPeriodDTO período con mayor faltante acumulado.
type CriticalPeriodDTO struct {
	Period           string          `json:"period"`
	PeriodDisplay    string          `json:"period_display"`
	TotalShortage    decimal.Decimal `json:"total_shortage"`
	ProductsAffected int             `json:"products_affected"`
	AvgFillRate      decimal.Decimal `json:"avg_fill_rate"`
}

// GapActionsDTO listas de acción.
type GapActionsDTO struct {
	OrderRequirements []OrderRequirementDTO `json:"order_requirements"`
	SurplusReviews    []SurplusReviewDTO    `json:"surplus_reviews"`
	CriticalProducts  []CriticalProductDTO  `json:"critical_products"`
	CriticalPeriods   []CriticalPeriodDTO   `json:"critical_periods"`
}

// GapSummaryDTO resumen por producto y global.
type GapSummaryDTO struct {
	Products []ProductSummaryDTO `json:"products"`
	Overall  OverallSummaryDTO   `json:"overall"`
}

// PeriodGapResponseDTO respuesta completa de /api/period-gap.
type PeriodGapResponseDTO struct {
	CalculationID string               `json:"calculation_id"`
	PeriodType    string               `json:"period_type"`
	TrackBacklog  bool                 `json:"track_backlog"`
	ReferenceDate string               `json:"reference_date"`
	Empty         bool                 `json:"empty"`
	Rows          []PeriodGapRowDTO    `json:"rows"`
	Categories    []ProductCategoryDTO `json:"categories"`
	Sets          CategorySetsDTO      `json:"sets"`
	Summary       GapSummaryDTO        `json:"summary"`
	Actions       GapActionsDTO        `json:"actions"`
	DroppedDemand int                  `json:"dropped_demand_rows"`
	DroppedSupply int                  `json:"dropped_supply_rows"`
}

// PeriodGapSummaryResponseDTO respuesta de /api/period-gap/summary (sin filas).
type PeriodGapSummaryResponseDTO struct {
	CalculationID string          `json:"calculation_id"`
	PeriodType    string          `json:"period_type"`
	TrackBacklog  bool            `json:"track_backlog"`
	Empty         bool            `json:"empty"`
	Sets          CategorySetsDTO `json:"sets"`
	Summary       GapSummaryDTO   `json:"summary"`
}

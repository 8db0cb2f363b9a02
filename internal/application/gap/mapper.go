package gap

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hongquyngo/vti-gap-analysis/internal/application/dto"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
	domaingap "github.com/hongquyngo/vti-gap-analysis/internal/domain/gap"
)

const referenceLayout = "2006-01-02"

func toResponseDTO(c *calculation) *dto.PeriodGapResponseDTO {
	res := c.result
	pt := res.PeriodType

	rows := make([]dto.PeriodGapRowDTO, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, toRowDTO(r, pt, c.params))
	}

	return &dto.PeriodGapResponseDTO{
		CalculationID: c.id,
		PeriodType:    string(pt),
		TrackBacklog:  res.TrackBacklog,
		ReferenceDate: c.params.referenceDate.Format(referenceLayout),
		Empty:         res.Empty(),
		Rows:          rows,
		Categories:    toCategoryDTOs(res),
		Sets:          toSetsDTO(res.Sets),
		Summary:       toSummaryDTO(res.Summary),
		Actions:       toActionsDTO(res.Actions, pt),
		DroppedDemand: res.DroppedDemand,
		DroppedSupply: res.DroppedSupply,
	}
}

func toSummaryResponseDTO(c *calculation) *dto.PeriodGapSummaryResponseDTO {
	res := c.result
	return &dto.PeriodGapSummaryResponseDTO{
		CalculationID: c.id,
		PeriodType:    string(res.PeriodType),
		TrackBacklog:  res.TrackBacklog,
		Empty:         res.Empty(),
		Sets:          toSetsDTO(res.Sets),
		Summary:       toSummaryDTO(res.Summary),
	}
}

func toAttributesDTO(a entity.ProductAttributes) dto.ProductAttributesDTO {
	return dto.ProductAttributesDTO{
		Brand:       a.Brand,
		ProductName: a.ProductName,
		PackageSize: a.PackageSize,
		StandardUOM: a.StandardUOM,
	}
}

func toRowDTO(r entity.PeriodGapRow, pt domaingap.PeriodType, p params) dto.PeriodGapRowDTO {
	out := dto.PeriodGapRowDTO{
		PTCode:               r.ProductID,
		ProductAttributesDTO: toAttributesDTO(r.Attributes),
		Period:               r.Period,
		PeriodDisplay:        domaingap.FormatPeriodWithDates(r.Period, pt),
		IsPast:               domaingap.IsPastPeriod(r.Period, pt, p.referenceDate),
		BeginInventory:       r.BeginInventory,
		SupplyInPeriod:       r.SupplyInPeriod,
		TotalAvailable:       r.TotalAvailable,
		TotalDemandQty:       r.TotalDemandQty,
		GapQuantity:          r.GapQuantity,
		FulfillmentRate:      r.FulfillmentRate.Round(2),
		FulfillmentStatus:    string(r.FulfillmentStatus),
	}
	if r.TrackBacklog {
		out.BacklogQty = decimalPtr(r.BacklogQty)
		out.EffectiveDemand = decimalPtr(r.EffectiveDemand)
		out.BacklogToNext = decimalPtr(r.BacklogToNext)
	}
	return out
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

// toCategoryDTOs una entrada por producto, ordenada por PT code.
func toCategoryDTOs(res *domaingap.Result) []dto.ProductCategoryDTO {
	out := make([]dto.ProductCategoryDTO, 0, len(res.Categories))
	for id, c := range res.Categories {
		out = append(out, dto.ProductCategoryDTO{
			PTCode:         id,
			MainCategory:   string(c.Main),
			CategoryLabel:  c.Main.Label(),
			TimingShortage: c.TimingShortage,
			TimingSurplus:  c.TimingSurplus,
			ProductType:    string(res.ProductTypes[id]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PTCode < out[j].PTCode })
	return out
}

func toSetsDTO(s domaingap.CategorySets) dto.CategorySetsDTO {
	return dto.CategorySetsDTO{
		NetShortage:    s.NetShortage,
		NetSurplus:     s.NetSurplus,
		Balanced:       s.Balanced,
		TimingShortage: s.TimingShortage,
		TimingSurplus:  s.TimingSurplus,
	}
}

func toSummaryDTO(s domaingap.Summary) dto.GapSummaryDTO {
	products := make([]dto.ProductSummaryDTO, 0, len(s.Products))
	for _, p := range s.Products {
		products = append(products, dto.ProductSummaryDTO{
			PTCode:               p.ProductID,
			ProductAttributesDTO: toAttributesDTO(p.Attributes),
			MainCategory:         string(p.Category),
			TimingShortage:       p.TimingShortage,
			TimingSurplus:        p.TimingSurplus,
			CoverageStatus:       string(p.CoverageStatus),
			TotalDemand:          p.TotalDemand,
			TotalSupply:          p.TotalSupply,
			NetPosition:          p.NetPosition,
			TotalPeriods:         p.TotalPeriods,
			FulfilledPeriods:     p.FulfilledPeriods,
			ShortagePeriods:      p.ShortagePeriods,
			SurplusPeriods:       p.SurplusPeriods,
			MaxShortage:          p.MaxShortage,
			MaxSurplus:           p.MaxSurplus,
			FinalBacklog:         p.FinalBacklog,
			PeakBacklog:          p.PeakBacklog,
			AvgFillRate:          p.AvgFillRate.Round(2),
			FirstShortage:        p.FirstShortage,
			RecommendedAction:    p.RecommendedAction,
			Priority:             int(p.Priority),
			PriorityLabel:        p.Priority.String(),
		})
	}
	o := s.Overall
	return dto.GapSummaryDTO{
		Products: products,
		Overall: dto.OverallSummaryDTO{
			TotalProducts:          o.TotalProducts,
			TotalPeriods:           o.TotalPeriods,
			NetShortageProducts:    o.NetShortageProducts,
			NetSurplusProducts:     o.NetSurplusProducts,
			BalancedProducts:       o.BalancedProducts,
			TimingShortageProducts: o.TimingShortageProducts,
			TimingSurplusProducts:  o.TimingSurplusProducts,
			TotalDemand:            o.TotalDemand,
			TotalSupply:            o.TotalSupply,
			TotalShortageQty:       o.TotalShortageQty,
			TotalSurplusQty:        o.TotalSurplusQty,
			OverallFillRate:        o.OverallFillRate.Round(2),
			AvgFillRate:            o.AvgFillRate.Round(2),
			TotalBacklog:           o.TotalBacklog,
			PeakBacklog:            o.PeakBacklog,
			ProductsWithBacklog:    o.ProductsWithBacklog,
			FullyCoveredProducts:   o.FullyCoveredProducts,
			CoverageRate:           o.CoverageRate.Round(2),
		},
	}
}

func toActionsDTO(a domaingap.Actions, pt domaingap.PeriodType) dto.GapActionsDTO {
	out := dto.GapActionsDTO{
		OrderRequirements: make([]dto.OrderRequirementDTO, 0, len(a.OrderRequirements)),
		SurplusReviews:    make([]dto.SurplusReviewDTO, 0, len(a.SurplusReviews)),
		CriticalProducts:  make([]dto.CriticalProductDTO, 0, len(a.CriticalProducts)),
		CriticalPeriods:   make([]dto.CriticalPeriodDTO, 0, len(a.CriticalPeriods)),
	}
	for _, r := range a.OrderRequirements {
		out.OrderRequirements = append(out.OrderRequirements, dto.OrderRequirementDTO{
			PTCode:               r.ProductID,
			ProductAttributesDTO: toAttributesDTO(r.Attributes),
			OrderQuantity:        r.OrderQuantity,
			FirstShortage:        r.FirstShortage,
			TotalDemand:          r.TotalDemand,
			TotalSupply:          r.TotalSupply,
			CoveragePeriods:      r.CoveragePeriods,
			Urgency:              r.Urgency,
		})
	}
	for _, r := range a.SurplusReviews {
		out.SurplusReviews = append(out.SurplusReviews, dto.SurplusReviewDTO{
			PTCode:               r.ProductID,
			ProductAttributesDTO: toAttributesDTO(r.Attributes),
			SurplusQuantity:      r.SurplusQuantity,
			SurplusPercentage:    r.SurplusPercentage.Round(2),
			SurplusPeriods:       r.SurplusPeriods,
			TotalPeriods:         r.TotalPeriods,
			AvgSurplusPerPeriod:  r.AvgSurplusPerPeriod.Round(2),
			Recommendation:       r.Recommendation,
		})
	}
	for _, r := range a.CriticalProducts {
		out.CriticalProducts = append(out.CriticalProducts, dto.CriticalProductDTO{
			PTCode:               r.ProductID,
			ProductAttributesDTO: toAttributesDTO(r.Attributes),
			TotalShortage:        r.TotalShortage,
			AvgFillRate:          r.AvgFillRate.Round(2),
			PeriodsAnalyzed:      r.PeriodsAnalyzed,
		})
	}
	for _, r := range a.CriticalPeriods {
		out.CriticalPeriods = append(out.CriticalPeriods, dto.CriticalPeriodDTO{
			Period:           r.Period,
			PeriodDisplay:    domaingap.FormatPeriodWithDates(r.Period, pt),
			TotalShortage:    r.TotalShortage,
			ProductsAffected: r.ProductsAffected,
			AvgFillRate:      r.AvgFillRate.Round(2),
		})
	}
	return out
}

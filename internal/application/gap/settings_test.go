package gap_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appgap "github.com/hongquyngo/vti-gap-analysis/internal/application/gap"
	"github.com/hongquyngo/vti-gap-analysis/internal/domain/entity"
	domaingap "github.com/hongquyngo/vti-gap-analysis/internal/domain/gap"
	"github.com/hongquyngo/vti-gap-analysis/pkg/config"
)

func gapConfig() config.GAPConfig {
	return config.GAPConfig{
		DefaultPeriodType:   "Weekly",
		DefaultTrackBacklog: true,
		Parallelism:         4,
		BalanceTolerance:    "0.5",
		DemandSources:       []string{"oc"},
		SupplySources:       []string{"Inventory", "pending_po"},
		ExcludeExpired:      true,
		OCDateField:         "etd",
		TopN:                5,
	}
}

func TestSettingsFromConfig(t *testing.T) {
	s, err := appgap.SettingsFromConfig(gapConfig(), nil)
	require.NoError(t, err)

	assert.True(t, s.BalanceTolerance.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, []entity.DemandSource{entity.DemandSourceOC}, s.DemandSources)
	assert.Equal(t, []entity.SupplySource{entity.SupplySourceInventory, entity.SupplySourcePendingPO}, s.SupplySources)
	assert.Nil(t, s.Thresholds, "sin archivo de umbrales se usan los del motor")
	assert.Equal(t, "etd", s.OCDateField)
	assert.Equal(t, 5, s.TopN)
}

func TestSettingsFromConfig_Umbrales(t *testing.T) {
	twenty := decimal.NewFromInt(20)
	s, err := appgap.SettingsFromConfig(gapConfig(), &config.CoverageThresholds{ShortageCritical: &twenty})
	require.NoError(t, err)
	require.NotNil(t, s.Thresholds)

	def := domaingap.DefaultThresholds()
	assert.True(t, s.Thresholds.ShortageCritical.Equal(decimal.RequireFromString("0.2")))
	assert.True(t, s.Thresholds.ShortageSevere.Equal(def.ShortageSevere))
	assert.True(t, s.Thresholds.SurplusHigh.Equal(def.SurplusHigh))
}

func TestSettingsFromConfig_Invalida(t *testing.T) {
	// Caso 1: tipo de período desconocido
	c := gapConfig()
	c.DefaultPeriodType = "Quarterly"
	_, err := appgap.SettingsFromConfig(c, nil)
	assert.Error(t, err)

	// Caso 2: tolerancia negativa
	c = gapConfig()
	c.BalanceTolerance = "-1"
	_, err = appgap.SettingsFromConfig(c, nil)
	assert.Error(t, err)

	// Caso 3: fuente de oferta desconocida
	c = gapConfig()
	c.SupplySources = []string{"Consignment"}
	_, err = appgap.SettingsFromConfig(c, nil)
	assert.Error(t, err)
}

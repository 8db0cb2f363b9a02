package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// CoverageThresholds umbrales de cobertura en porcentaje (25 = 25 %).
// Un campo nil conserva el valor por defecto del motor.
type CoverageThresholds struct {
	ShortageCritical *decimal.Decimal
	ShortageSevere   *decimal.Decimal
	ShortageHigh     *decimal.Decimal
	ShortageModerate *decimal.Decimal
	SurplusLight     *decimal.Decimal
	SurplusModerate  *decimal.Decimal
	SurplusHigh      *decimal.Decimal
}

type thresholdsFile struct {
	Shortage struct {
		Critical string `yaml:"critical"`
		Severe   string `yaml:"severe"`
		High     string `yaml:"high"`
		Moderate string `yaml:"moderate"`
	} `yaml:"shortage"`
	Surplus struct {
		Light    string `yaml:"light"`
		Moderate string `yaml:"moderate"`
		High     string `yaml:"high"`
	} `yaml:"surplus"`
}

// LoadThresholds lee un YAML de umbrales:
//
//	shortage: {critical: 25, severe: 50, high: 75, moderate: 90}
//	surplus:  {light: 125, moderate: 175, high: 250}
func LoadThresholds(path string) (*CoverageThresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer umbrales %s: %w", path, err)
	}
	return ParseThresholds(data)
}

// ParseThresholds interpreta el contenido YAML y valida que los umbrales sean crecientes.
func ParseThresholds(data []byte) (*CoverageThresholds, error) {
	var f thresholdsFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("umbrales: %w", err)
	}

	var out CoverageThresholds
	fields := []struct {
		key string
		raw string
		dst **decimal.Decimal
	}{
		{"shortage.critical", f.Shortage.Critical, &out.ShortageCritical},
		{"shortage.severe", f.Shortage.Severe, &out.ShortageSevere},
		{"shortage.high", f.Shortage.High, &out.ShortageHigh},
		{"shortage.moderate", f.Shortage.Moderate, &out.ShortageModerate},
		{"surplus.light", f.Surplus.Light, &out.SurplusLight},
		{"surplus.moderate", f.Surplus.Moderate, &out.SurplusModerate},
		{"surplus.high", f.Surplus.High, &out.SurplusHigh},
	}
	var last *decimal.Decimal
	for _, fl := range fields {
		raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(fl.raw), "%"))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("umbrales: %s: %q no es numérico", fl.key, fl.raw)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("umbrales: %s no puede ser negativo", fl.key)
		}
		if last != nil && !d.GreaterThan(*last) {
			return nil, fmt.Errorf("umbrales: %s debe ser mayor que el umbral anterior", fl.key)
		}
		*fl.dst = &d
		last = &d
	}
	return &out, nil
}
